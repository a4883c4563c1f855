package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
	"github.com/sweeney/panel-button/internal/logic"
)

// backlogCapacity bounds how many messages are held while disconnected.
const backlogCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Messages published
// while the broker is unreachable are queued in a bounded backlog and
// replayed in order on reconnect.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	pending *backlog
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{pending: newBacklog(backlogCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("panel-button").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) {
			p.replay()
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// Publish sends a debounced switch event. QoS 0, not retained.
func (p *RealPublisher) Publish(event logic.SwitchEvent) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.publish(TopicEvents, 0, false, payload)
}

// PublishTransition sends an indicator state transition. QoS 0, not retained.
func (p *RealPublisher) PublishTransition(tr logic.Transition) error {
	payload, err := FormatIndicatorPayload(tr)
	if err != nil {
		return fmt.Errorf("format indicator payload: %w", err)
	}
	return p.publish(TopicIndicator, 0, false, payload)
}

// PublishSystem sends a system lifecycle event. QoS 1 (at-least-once)
// so startup and shutdown events survive flaky links.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

// IsConnected reports whether the client currently holds a broker connection.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnectionOpen() {
		p.queue(queuedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *RealPublisher) queue(msg queuedMsg) {
	p.mu.Lock()
	p.pending.add(msg)
	n := p.pending.len()
	p.mu.Unlock()
	log.Debug().Str("topic", msg.topic).Int("queued", n).Msg("broker unreachable, message queued")
}

// replay flushes the backlog after a (re)connect. Runs on paho's
// connection goroutine.
func (p *RealPublisher) replay() {
	p.mu.Lock()
	msgs, dropped := p.pending.drain()
	p.mu.Unlock()

	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("backlog overflowed while disconnected")
	}
	if len(msgs) == 0 {
		return
	}

	log.Info().Int("messages", len(msgs)).Msg("replaying queued messages")
	for _, m := range msgs {
		token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Warn().Str("topic", m.topic).Msg("replay timeout")
			continue
		}
		if err := token.Error(); err != nil {
			log.Warn().Str("topic", m.topic).Err(err).Msg("replay failed")
		}
	}
}
