package config

import (
	"fmt"
	"net"
	"net/url"

	"status-dashboard/internal/logs"
)

// Validate checks configuration correctness.
// It performs declarative validation only and never mutates cfg.
func Validate(cfg *Config) error {
	u, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return fmt.Errorf("backend_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend_url %q: scheme must be http or https", cfg.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend_url %q: missing host", cfg.BackendURL)
	}

	durations := []struct {
		name string
		val  Duration
	}{
		{"poll_interval", cfg.PollInterval},
		{"request_timeout", cfg.RequestTimeout},
		{"restart_refresh_delay", cfg.RestartRefreshDelay},
		{"reset_reload_delay", cfg.ResetReloadDelay},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("%s must be > 0, got %s", d.name, d.val.Std())
		}
	}

	if cfg.SystemStatusKey == "" || cfg.TunnelKey == "" {
		return fmt.Errorf("system_status_key and tunnel_key must not be empty")
	}

	seen := make(map[string]bool, len(cfg.Services))
	for i, s := range cfg.Services {
		if s.Name == "" {
			return fmt.Errorf("services[%d]: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("services[%d]: duplicate service %q", i, s.Name)
		}
		seen[s.Name] = true
	}

	for name, src := range cfg.DataSources {
		if src == nil {
			continue
		}
		if _, err := url.ParseRequestURI(*src); err != nil {
			return fmt.Errorf("data_sources.%s: %w", name, err)
		}
	}

	if cfg.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
			return fmt.Errorf("listen %q: %w", cfg.Listen, err)
		}
	}

	if _, err := logs.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Log.Buffer <= 0 {
		return fmt.Errorf("log.buffer must be > 0, got %d", cfg.Log.Buffer)
	}

	return nil
}
