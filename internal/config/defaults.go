package config

import (
	"time"

	"status-dashboard/internal/actions"
	"status-dashboard/internal/health"
	"status-dashboard/internal/poller"
	"status-dashboard/internal/view"
)

// Default returns the configuration of the stock deployment.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero field. A component_names table given in
// the file replaces the builtin one entirely.
func ApplyDefaults(cfg *Config) {
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://127.0.0.1:8766"
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(poller.DefaultInterval)
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = Duration(10 * time.Second)
	}
	if cfg.RestartRefreshDelay == 0 {
		cfg.RestartRefreshDelay = Duration(actions.DefaultRestartRefreshDelay)
	}
	if cfg.ResetReloadDelay == 0 {
		cfg.ResetReloadDelay = Duration(actions.DefaultResetReloadDelay)
	}
	if cfg.ResetPrompt == "" {
		cfg.ResetPrompt = actions.DefaultResetPrompt
	}
	if cfg.SystemStatusKey == "" {
		cfg.SystemStatusKey = health.DefaultSystemKey
	}
	if cfg.TunnelKey == "" {
		cfg.TunnelKey = view.DefaultTunnelKey
	}
	if cfg.ComponentNames == nil {
		cfg.ComponentNames = view.DefaultNames()
	}
	if cfg.Services == nil {
		cfg.Services = []ServiceConfig{
			{Name: "NavixyApi", Label: "🔄 Restart Api"},
			{Name: "NavixyQuickTunnel", Label: "🔄 Restart QuickTunnel"},
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	if cfg.Log.Buffer == 0 {
		cfg.Log.Buffer = 500
	}
}
