package actions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"status-dashboard/internal/logs"
	"status-dashboard/internal/metrics"
	"status-dashboard/internal/view"
)

const (
	DefaultRestartRefreshDelay = 2 * time.Second
	DefaultResetReloadDelay    = 8 * time.Second

	DefaultResetPrompt = "This will restart ALL 4 services (API, Tunnel, Dashboard, URL Sync).\n\n" +
		"The dashboard will reload after reset.\n\nContinue?"

	resetIdleLabel    = "🔄 System Reset"
	resetBusyLabel    = "⏳ Resetting..."
	resetPendingLabel = "✅ Restarting..."
	restartBusyLabel  = "Restarting..."
)

// Config tunes the dispatcher.
type Config struct {
	RestartRefreshDelay time.Duration
	ResetReloadDelay    time.Duration
	ResetPrompt         string
	// RestartLabels holds the idle label of each service's restart control.
	RestartLabels map[string]string
}

// Dispatcher fires restart and reset commands.
type Dispatcher struct {
	cfg       Config
	backend   Backend
	confirmer Confirmer
	notifier  Notifier
	controls  Controls
	refresher Refresher
	reload    func()
	logger    *logs.Logger
	metrics   *metrics.Registry

	mu   sync.Mutex
	busy map[string]bool
}

// NewDispatcher wires a dispatcher. reload runs once, ResetReloadDelay after
// a successful system reset.
func NewDispatcher(
	cfg Config,
	b Backend,
	confirmer Confirmer,
	notifier Notifier,
	controls Controls,
	refresher Refresher,
	reload func(),
	logger *logs.Logger,
	reg *metrics.Registry,
) *Dispatcher {
	if cfg.RestartRefreshDelay <= 0 {
		cfg.RestartRefreshDelay = DefaultRestartRefreshDelay
	}
	if cfg.ResetReloadDelay <= 0 {
		cfg.ResetReloadDelay = DefaultResetReloadDelay
	}
	if cfg.ResetPrompt == "" {
		cfg.ResetPrompt = DefaultResetPrompt
	}
	if reload == nil {
		reload = func() {}
	}
	return &Dispatcher{
		cfg:       cfg,
		backend:   b,
		confirmer: confirmer,
		notifier:  notifier,
		controls:  controls,
		refresher: refresher,
		reload:    reload,
		logger:    logger,
		metrics:   reg,
		busy:      make(map[string]bool),
	}
}

// InitialControls lists the initial control set for the configured services plus
// the system reset control.
func InitialControls(cfg Config, services []string) []view.Control {
	out := make([]view.Control, 0, len(services)+1)
	for _, svc := range services {
		out = append(out, view.Control{ID: RestartControlID(svc), Label: restartIdleLabel(cfg, svc)})
	}
	return append(out, view.Control{ID: ResetControlID, Label: resetIdleLabel})
}

func restartIdleLabel(cfg Config, service string) string {
	if l, ok := cfg.RestartLabels[service]; ok && l != "" {
		return l
	}
	return "🔄 Restart " + service
}

// Dispatch asks for confirmation and, when given, sends the action. It
// blocks until the request settles. Declining sends nothing and changes
// nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, a Action) Result {
	res := Result{Action: a}
	id := a.ControlID()

	if !d.claim(id) {
		res.Err = ErrControlBusy
		return res
	}

	prompt := d.cfg.ResetPrompt
	if a.Kind == KindRestart {
		prompt = fmt.Sprintf("Are you sure you want to restart %s?", a.Service)
	}
	if !d.confirmer.Confirm(ctx, prompt) {
		d.release(id)
		d.metrics.Inc(metrics.ActionsDeclinedTotal)
		return res
	}
	res.Confirmed = true
	d.metrics.Inc(metrics.ActionsDispatchedTotal)

	switch a.Kind {
	case KindRestart:
		d.restart(ctx, &res)
	case KindSystemReset:
		d.systemReset(ctx, &res)
	default:
		d.release(id)
		res.Err = fmt.Errorf("actions: unknown kind %q", a.Kind)
	}

	if res.Success {
		d.metrics.Inc(metrics.ActionsSucceededTotal)
	} else {
		d.metrics.Inc(metrics.ActionsFailedTotal)
	}
	return res
}

func (d *Dispatcher) restart(ctx context.Context, res *Result) {
	svc := res.Action.Service
	id := res.Action.ControlID()

	d.controls.SetControl(id, restartBusyLabel, true)
	defer func() {
		d.controls.SetControl(id, restartIdleLabel(d.cfg, svc), false)
		d.release(id)
	}()

	resp, err := d.backend.Restart(ctx, svc)
	switch {
	case err != nil:
		res.Err = err
		res.Message = fmt.Sprintf("Error restarting service: %v", err)
		d.logger.Errorf("restart %s failed: %v", svc, err)
	case !resp.Success:
		res.Message = "Error: " + resp.Message
		d.logger.Warnf("restart %s refused: %s", svc, resp.Message)
	default:
		res.Success = true
		res.Message = fmt.Sprintf("%s restarted successfully", svc)
		d.logger.Infof("restart %s ok", svc)
		d.refresher.RefreshAfter(d.cfg.RestartRefreshDelay)
	}
	d.notifier.Alert(res.Message)
}

func (d *Dispatcher) systemReset(ctx context.Context, res *Result) {
	d.controls.SetControl(ResetControlID, resetBusyLabel, true)

	resp, err := d.backend.SystemReset(ctx)
	if err == nil && resp.Success {
		res.Success = true
		res.Message = resp.Message
		d.controls.SetControl(ResetControlID, resetPendingLabel, true)
		d.logger.Infof("system reset accepted, reloading in %s", d.cfg.ResetReloadDelay)
		// Blind delay: backend readiness is never checked.
		time.AfterFunc(d.cfg.ResetReloadDelay, d.reloadNow)
		return
	}

	if err != nil {
		res.Err = err
		res.Message = fmt.Sprintf("Error: %v", err)
		d.logger.Errorf("system reset failed: %v", err)
	} else {
		res.Message = "Error: " + resp.Message
		d.logger.Warnf("system reset refused: %s", resp.Message)
	}
	d.notifier.Alert(res.Message)
	d.controls.SetControl(ResetControlID, resetIdleLabel, false)
	d.release(ResetControlID)
}

// reloadNow runs the reload hook and restores the reset control, the way a
// fresh page would show it.
func (d *Dispatcher) reloadNow() {
	d.metrics.Inc(metrics.ResetReloadsTotal)
	d.logger.Info("reloading after system reset")
	d.reload()
	d.controls.SetControl(ResetControlID, resetIdleLabel, false)
	d.release(ResetControlID)
}

func (d *Dispatcher) claim(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.busy[id] {
		return false
	}
	if c, ok := d.controls.Control(id); ok && c.Disabled {
		return false
	}
	d.busy[id] = true
	return true
}

func (d *Dispatcher) release(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.busy, id)
}
