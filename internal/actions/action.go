package actions

import (
	"context"
	"errors"
	"strings"
	"time"

	"status-dashboard/internal/backend"
	"status-dashboard/internal/view"
)

// ErrControlBusy is returned when the originating control is still disabled.
var ErrControlBusy = errors.New("actions: control is busy")

// Kind identifies an action.
type Kind string

const (
	KindRestart     Kind = "restart"
	KindSystemReset Kind = "system-reset"
)

// ResetControlID is the id of the system reset control.
const ResetControlID = "reset"

// Action is a user intent to dispatch.
type Action struct {
	Kind    Kind
	Service string
}

// Restart targets a single backend service.
func Restart(service string) Action {
	return Action{Kind: KindRestart, Service: service}
}

// SystemReset targets every backend service at once.
func SystemReset() Action {
	return Action{Kind: KindSystemReset}
}

// ControlID is the id of the control that triggers the action.
func (a Action) ControlID() string {
	if a.Kind == KindSystemReset {
		return ResetControlID
	}
	return RestartControlID(a.Service)
}

// RestartControlID is the control id for a service's restart button.
func RestartControlID(service string) string {
	return "restart:" + service
}

// FromControlID maps a control id back to its action.
func FromControlID(id string) (Action, bool) {
	if id == ResetControlID {
		return SystemReset(), true
	}
	if svc, ok := strings.CutPrefix(id, "restart:"); ok && svc != "" {
		return Restart(svc), true
	}
	return Action{}, false
}

// Result is the settled outcome of Dispatch.
type Result struct {
	Action    Action
	Confirmed bool
	Success   bool
	Message   string
	Err       error
}

// Confirmer asks the user before anything is sent.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// Backend is the subset of the backend client the dispatcher needs.
type Backend interface {
	Restart(ctx context.Context, service string) (backend.ActionResponse, error)
	SystemReset(ctx context.Context) (backend.ActionResponse, error)
}

// Controls is where button state lives.
type Controls interface {
	SetControl(id, label string, disabled bool)
	Control(id string) (view.Control, bool)
}

// Refresher schedules a follow-up poll.
type Refresher interface {
	RefreshAfter(d time.Duration)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(msg string)

func (f NotifyFunc) Alert(msg string) { f(msg) }
