package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the host-tunable surface of the engine. Everything has a
// working default; an absent config file is not an error.
type Config struct {
	Theme    string        `yaml:"theme"`
	LogLevel string        `yaml:"log_level"`
	Session  SessionTuning `yaml:"session"`
	Page     PageTuning    `yaml:"page"`
	Web      WebConfig     `yaml:"web"`

	// TickRate is host ticks per second.
	TickRate int `yaml:"tick_rate"`
}

// SessionTuning holds per-session watchdog and interaction values.
type SessionTuning struct {
	MaxDistance   float64 `yaml:"max_distance"`
	TimeoutTicks  int64   `yaml:"timeout_ticks"`
	CooldownTicks int64   `yaml:"cooldown_ticks"`
}

// PageTuning holds page tree geometry values.
type PageTuning struct {
	Gap            float64 `yaml:"gap"`
	TabStripHeight float64 `yaml:"tab_strip_height"`
	MinPageSize    float64 `yaml:"min_page_size"`
	DefaultWidth   float64 `yaml:"default_width"`
	DefaultHeight  float64 `yaml:"default_height"`
}

// WebConfig holds the input bridge listener settings.
type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
	Port    int    `yaml:"port"`
}

func DefaultConfig() Config {
	return Config{
		Theme:    "mocha",
		LogLevel: "info",
		Session: SessionTuning{
			MaxDistance:   10,
			TimeoutTicks:  12000,
			CooldownTicks: 4,
		},
		Page: PageTuning{
			Gap:            0.1,
			TabStripHeight: 0.3,
			MinPageSize:    0.5,
			DefaultWidth:   3.0,
			DefaultHeight:  2.0,
		},
		Web: WebConfig{
			Enabled: true,
			Bind:    "127.0.0.1",
			Port:    0,
		},
		TickRate: 20,
	}
}

func Load() (Config, error) {
	return LoadFrom(Path())
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	return cfg.normalized(), nil
}

// normalized fills blanks so a sparse config file still yields a runnable
// setup.
func (c Config) normalized() Config {
	if c.Theme == "" {
		c.Theme = "mocha"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.TickRate <= 0 {
		c.TickRate = 20
	}
	if c.Session.MaxDistance <= 0 {
		c.Session.MaxDistance = 10
	}
	if c.Page.MinPageSize <= 0 {
		c.Page.MinPageSize = 0.5
	}
	if c.Page.DefaultWidth <= 0 {
		c.Page.DefaultWidth = 3.0
	}
	if c.Page.DefaultHeight <= 0 {
		c.Page.DefaultHeight = 2.0
	}
	return c
}

// Validate reports config values that would misbehave at runtime.
func (c Config) Validate() error {
	if c.Session.CooldownTicks < 0 {
		return fmt.Errorf("session.cooldown_ticks must not be negative")
	}
	if c.Session.TimeoutTicks < 0 {
		return fmt.Errorf("session.timeout_ticks must not be negative")
	}
	if c.Page.Gap < 0 {
		return fmt.Errorf("page.gap must not be negative")
	}
	if c.Page.TabStripHeight < 0 {
		return fmt.Errorf("page.tab_strip_height must not be negative")
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port %d out of range", c.Web.Port)
	}
	return nil
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "planeui", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "planeui", "config.yaml")
	}

	return filepath.Join(home, ".config", "planeui", "config.yaml")
}
