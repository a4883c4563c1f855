// Command panel-button debounces a single mechanical push button and
// drives two LED indicators: a steady lamp mirroring the debounced
// pressed/released state, and a mode lamp cycling
// Off -> On -> SlowFlash -> FastFlash on each press. Debounced events
// and indicator transitions are published to MQTT.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sweeney/panel-button/internal/config"
	"github.com/sweeney/panel-button/internal/gpio"
	"github.com/sweeney/panel-button/internal/logic"
	"github.com/sweeney/panel-button/internal/mqtt"
	"github.com/sweeney/panel-button/internal/status"
	"github.com/sweeney/panel-button/internal/web"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

func run(cfg *config.Config) error {
	start := time.Now()
	capture := logic.NewEdgeCapture(start)

	// The edge callback runs on the gpiocdev event goroutine; it only
	// touches the capture's atomics.
	button, err := gpio.NewRealButton(cfg.Chip, cfg.ButtonPin, func(rising bool, now time.Time) {
		if rising {
			capture.RisingEdge(now)
		} else {
			capture.FallingEdge(now)
		}
	})
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer button.Close()

	pressedLED, err := gpio.NewRealLED(cfg.Chip, cfg.PressedPin)
	if err != nil {
		return fmt.Errorf("init pressed led: %w", err)
	}
	defer pressedLED.Close()

	indicatorLED, err := gpio.NewRealLED(cfg.Chip, cfg.IndicatorPin)
	if err != nil {
		return fmt.Errorf("init indicator led: %w", err)
	}
	defer indicatorLED.Close()

	publisher, err := mqtt.NewRealPublisher(cfg.Broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	tracker := status.NewTracker(start, status.Config{
		PollMs:       cfg.Poll.Milliseconds(),
		DebounceMs:   cfg.Debounce.Milliseconds(),
		SlowMs:       cfg.Slow.Milliseconds(),
		FastMs:       cfg.Fast.Milliseconds(),
		ButtonPin:    cfg.ButtonPin,
		PressedPin:   cfg.PressedPin,
		IndicatorPin: cfg.IndicatorPin,
		Broker:       cfg.Broker,
		HTTPAddr:     cfg.HTTPAddr,
	})

	snap := tracker.Snapshot()
	startup := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startup); err != nil {
		log.Warn().Err(err).Msg("publish startup event")
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("http server")
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http status server listening")
	}

	log.Info().
		Dur("poll", cfg.Poll).
		Dur("debounce", cfg.Debounce).
		Dur("slow", cfg.Slow).
		Dur("fast", cfg.Fast).
		Str("broker", cfg.Broker).
		Msg("started")

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(cfg, capture, button, pressedLED, indicatorLED, publisher, publisher, tracker, time.Now, ticker.C, sigCh)
}

// runLoop is the poll loop: every tick it debounces captured edges,
// mirrors debounced state onto the pressed LED, advances the mode
// indicator on presses, and ticks the flash timer. It returns when a
// signal arrives.
func runLoop(cfg *config.Config, capture *logic.EdgeCapture, button gpio.Button,
	pressedLED, indicatorLED gpio.LED, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus,
	tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {

	debouncer := logic.NewDebouncer(capture, cfg.Debounce)
	indicator := logic.NewIndicator(cfg.Slow, cfg.Fast)

	var counts logic.EventCounts
	var pressed, known bool
	var lastBeat time.Time

	for {
		select {
		case s := <-sig:
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			log.Info().Str("signal", signalName).Msg("shutting down")

			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Warn().Err(err).Msg("publish shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			level, err := button.Level()
			if err != nil {
				log.Error().Err(err).Msg("button read")
				continue
			}

			if ev := debouncer.Poll(t, level); ev != nil {
				pressed = ev.Type == logic.EventPressed
				known = true
				counts.BounceEdges += ev.Edges
				if pressed {
					counts.Presses++
				} else {
					counts.Releases++
				}

				log.Info().
					Str("event", string(ev.Type)).
					Int("edges", ev.Edges).
					Msg("switch settled")

				if err := pressedLED.Set(pressed); err != nil {
					log.Error().Err(err).Msg("pressed led")
				}
				if err := publisher.Publish(*ev); err != nil {
					log.Warn().Err(err).Msg("publish event")
					// Don't crash on publish failure
				}

				if pressed {
					tr := indicator.OnPressed(t)
					log.Info().
						Str("from", string(tr.From)).
						Str("to", string(tr.To)).
						Msg("indicator transition")
					if err := publisher.PublishTransition(tr); err != nil {
						log.Warn().Err(err).Msg("publish transition")
					}
					if err := indicatorLED.Set(indicator.Output()); err != nil {
						log.Error().Err(err).Msg("indicator led")
					}
				}
			}

			if indicator.TickFlash(t) {
				if err := indicatorLED.Set(indicator.Output()); err != nil {
					log.Error().Err(err).Msg("indicator led")
				}
			}

			if tracker != nil {
				tracker.Update(pressed, known, indicator.State(), indicator.Flash(), counts)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if cfg.Heartbeat > 0 {
				if lastBeat.IsZero() {
					lastBeat = t
				} else if t.Sub(lastBeat) >= cfg.Heartbeat {
					lastBeat = t
					beat := mqtt.SystemEvent{Timestamp: t, Event: "HEARTBEAT"}
					if tracker != nil {
						beat.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", "")
					}
					if err := publisher.PublishSystem(beat); err != nil {
						log.Warn().Err(err).Msg("publish heartbeat")
					}
					log.Debug().
						Int("presses", counts.Presses).
						Int("releases", counts.Releases).
						Msg("heartbeat")
				}
			}
		}
	}
}
