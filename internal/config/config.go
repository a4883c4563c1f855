// Package config loads daemon settings from /etc/panel-button.conf (TOML)
// with command-line flag overrides. All settings are fixed at startup;
// there is no runtime reconfiguration.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/sweeney/panel-button/internal/gpio"
)

// Default settings. The debounce threshold trades bounce rejection
// against input latency; slow and fast set the flash cadence of the two
// flashing indicator states.
const (
	DefaultDebounce  = 50 * time.Millisecond
	DefaultSlow      = 500 * time.Millisecond
	DefaultFast      = 125 * time.Millisecond
	DefaultPoll      = 5 * time.Millisecond
	DefaultHeartbeat = 60 * time.Second
	DefaultBroker    = "tcp://192.168.1.200:1883"
	DefaultHTTPAddr  = ":8080"
)

// EnvConfigFile overrides the config file location when set.
const EnvConfigFile = "PANEL_BUTTON_CONFIG"

// Config holds all daemon settings.
type Config struct {
	Debounce  time.Duration `mapstructure:"debounce"`
	Slow      time.Duration `mapstructure:"slow"`
	Fast      time.Duration `mapstructure:"fast"`
	Poll      time.Duration `mapstructure:"poll"`
	Heartbeat time.Duration `mapstructure:"heartbeat"`

	Chip         string `mapstructure:"chip"`
	ButtonPin    int    `mapstructure:"button-pin"`
	PressedPin   int    `mapstructure:"pressed-pin"`
	IndicatorPin int    `mapstructure:"indicator-pin"`

	Broker   string `mapstructure:"broker"`
	HTTPAddr string `mapstructure:"http"`

	Debug bool `mapstructure:"debug"`
}

// Load parses args (typically os.Args[1:]), merges them over the config
// file and the defaults, and validates the result. Flags win over the
// file, the file wins over defaults.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("panel-button", flag.ContinueOnError)
	fs.Duration("debounce", DefaultDebounce, "settle time after the last edge before an event is emitted")
	fs.Duration("slow", DefaultSlow, "flash interval in the SLOW_FLASH state")
	fs.Duration("fast", DefaultFast, "flash interval in the FAST_FLASH state")
	fs.Duration("poll", DefaultPoll, "poll loop interval")
	fs.Duration("heartbeat", DefaultHeartbeat, "interval between heartbeat system events (0 to disable)")
	fs.String("chip", gpio.DefaultChip, "GPIO character device")
	fs.Int("button-pin", gpio.DefaultPinButton, "BCM pin number for the push button")
	fs.Int("pressed-pin", gpio.DefaultPinPressed, "BCM pin number for the steady pressed/released LED")
	fs.Int("indicator-pin", gpio.DefaultPinIndicator, "BCM pin number for the mode indicator LED")
	fs.String("broker", DefaultBroker, "MQTT broker address")
	fs.String("http", DefaultHTTPAddr, "HTTP status address (empty to disable)")
	fs.Bool("debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	fs.VisitAll(func(f *flag.Flag) {
		v.SetDefault(f.Name, f.DefValue)
	})

	v.SetConfigName("panel-button.conf")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	if path := os.Getenv(EnvConfigFile); path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// Flags set on the command line override file values.
	fs.Visit(func(f *flag.Flag) {
		v.Set(f.Name, f.Value.String())
	})

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %v", c.Debounce)
	}
	if c.Poll <= 0 {
		return fmt.Errorf("poll must be positive, got %v", c.Poll)
	}
	if c.Heartbeat < 0 {
		return fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat)
	}
	if c.Slow <= 0 || c.Fast <= 0 {
		return fmt.Errorf("flash intervals must be positive, got slow=%v fast=%v", c.Slow, c.Fast)
	}
	if c.Fast > c.Slow {
		return fmt.Errorf("fast interval %v must not exceed slow interval %v", c.Fast, c.Slow)
	}
	return nil
}
