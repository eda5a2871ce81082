package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the statusboard configuration file.
type Config struct {
	BackendURL string `yaml:"backend_url"`

	PollInterval        Duration `yaml:"poll_interval"`
	RequestTimeout      Duration `yaml:"request_timeout"`
	RestartRefreshDelay Duration `yaml:"restart_refresh_delay"`
	ResetReloadDelay    Duration `yaml:"reset_reload_delay"`
	ResetPrompt         string   `yaml:"reset_prompt"`

	// Designated component keys.
	SystemStatusKey string `yaml:"system_status_key"`
	TunnelKey       string `yaml:"tunnel_key"`

	// ComponentNames replaces the builtin key → display name table.
	ComponentNames map[string]string `yaml:"component_names"`

	Services []ServiceConfig `yaml:"services"`

	// DataSources is passed through to front ends untouched. A null value
	// means "no dedicated source".
	DataSources map[string]*string `yaml:"data_sources"`

	Listen   string    `yaml:"listen"`
	Terminal *bool     `yaml:"terminal"`
	Log      LogConfig `yaml:"log"`
}

// ServiceConfig is one restartable backend service.
type ServiceConfig struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Buffer int    `yaml:"buffer"`
}

// Duration is a time.Duration written as "5s", "250ms", ...
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("config: duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TerminalEnabled reports whether the terminal sink should run.
func (c *Config) TerminalEnabled() bool {
	return c.Terminal == nil || *c.Terminal
}

// ServiceNames lists the configured services in file order.
func (c *Config) ServiceNames() []string {
	out := make([]string, 0, len(c.Services))
	for _, s := range c.Services {
		out = append(out, s.Name)
	}
	return out
}

// ServiceLabels maps service name to its restart button label.
func (c *Config) ServiceLabels() map[string]string {
	out := make(map[string]string, len(c.Services))
	for _, s := range c.Services {
		if s.Label != "" {
			out[s.Name] = s.Label
		}
	}
	return out
}

// Load reads path (if non-empty), applies environment overrides and
// defaults, then validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	ApplyEnv(cfg, os.Getenv)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays STATUSBOARD_* variables.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("STATUSBOARD_BACKEND"); v != "" {
		cfg.BackendURL = v
	}
	if v := getenv("STATUSBOARD_LISTEN"); v != "" {
		cfg.Listen = v
	}
}
