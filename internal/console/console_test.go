package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"status-dashboard/internal/actions"
	"status-dashboard/internal/logs"
	"status-dashboard/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	mu    sync.Mutex
	count int
}

func (f *fakeRefresher) Refresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
}

type fakeBoard struct {
	controls []view.Control
}

func (f fakeBoard) Current() view.Dashboard {
	return view.Dashboard{Controls: f.controls}
}

// fakeDispatcher asks the console for confirmation like the real one.
type fakeDispatcher struct {
	confirmer actions.Confirmer
	busy      bool

	mu      sync.Mutex
	results []actions.Result
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, a actions.Action) actions.Result {
	res := actions.Result{Action: a}
	if f.busy {
		res.Err = actions.ErrControlBusy
	} else {
		res.Confirmed = f.confirmer.Confirm(ctx, "Proceed?")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, res)
	return res
}

func (f *fakeDispatcher) Results() []actions.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]actions.Result(nil), f.results...)
}

type fakeScreen struct {
	mu      sync.Mutex
	held    int
	release int
}

func (f *fakeScreen) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.held++
}

func (f *fakeScreen) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release++
}

type harness struct {
	console    *Console
	out        *bytes.Buffer
	logger     *logs.Logger
	refresher  *fakeRefresher
	dispatcher *fakeDispatcher
	screen     *fakeScreen
	deps       Deps
}

func newHarness(in io.Reader) *harness {
	h := &harness{
		out:       &bytes.Buffer{},
		logger:    logs.NewLogger(20, logs.DEBUG),
		refresher: &fakeRefresher{},
		screen:    &fakeScreen{},
	}
	h.console = New(in, h.out, h.screen, h.logger)
	h.dispatcher = &fakeDispatcher{confirmer: h.console}
	h.deps = Deps{
		Refresher:  h.refresher,
		Dispatcher: h.dispatcher,
		Board: fakeBoard{controls: []view.Control{
			{ID: "restart:NavixyApi", Label: "🔄 Restart Api"},
			{ID: actions.ResetControlID, Label: "🔄 System Reset"},
		}},
	}
	return h
}

func TestConsole_Refresh(t *testing.T) {
	h := newHarness(strings.NewReader("r\n\nrefresh\nq\nr\n"))

	require.NoError(t, h.console.Run(context.Background(), h.deps))
	assert.Equal(t, 2, h.refresher.count, "input after q is ignored")
}

func TestConsole_DispatchConfirmed(t *testing.T) {
	h := newHarness(strings.NewReader("1\ny\nq\n"))

	require.NoError(t, h.console.Run(context.Background(), h.deps))

	results := h.dispatcher.Results()
	require.Len(t, results, 1)
	assert.Equal(t, actions.Restart("NavixyApi"), results[0].Action)
	assert.True(t, results[0].Confirmed)
	assert.Contains(t, h.out.String(), "Proceed? [y/N]")
	assert.Equal(t, 1, h.screen.held)
	assert.Equal(t, 1, h.screen.release)
}

func TestConsole_DispatchDeclined(t *testing.T) {
	for _, answer := range []string{"n", "", "maybe"} {
		h := newHarness(strings.NewReader("2\n" + answer + "\n"))

		require.NoError(t, h.console.Run(context.Background(), h.deps))

		results := h.dispatcher.Results()
		require.Len(t, results, 1, answer)
		assert.Equal(t, actions.KindSystemReset, results[0].Action.Kind)
		assert.False(t, results[0].Confirmed, answer)
	}
}

func TestConsole_PromptEndsWithInput(t *testing.T) {
	h := newHarness(strings.NewReader("1\n"))

	require.NoError(t, h.console.Run(context.Background(), h.deps))

	results := h.dispatcher.Results()
	require.Len(t, results, 1)
	assert.False(t, results[0].Confirmed)
}

func TestConsole_Busy(t *testing.T) {
	h := newHarness(strings.NewReader("1\nq\n"))
	h.dispatcher.busy = true

	require.NoError(t, h.console.Run(context.Background(), h.deps))

	assert.Contains(t, h.out.String(), "! restart:NavixyApi is already in progress")
}

func TestConsole_UnknownInput(t *testing.T) {
	h := newHarness(strings.NewReader("9\nfoo\n0\n"))

	require.NoError(t, h.console.Run(context.Background(), h.deps))

	out := h.out.String()
	assert.Contains(t, out, "no control 9")
	assert.Contains(t, out, "no control 0")
	assert.Contains(t, out, `unknown command "foo"`)
	assert.Empty(t, h.dispatcher.Results())
}

func TestConsole_ContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := newHarness(pr)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.console.Run(ctx, h.deps) }()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConsole_Alert(t *testing.T) {
	h := newHarness(strings.NewReader(""))

	h.console.Alert("NavixyApi restarted successfully")

	assert.Contains(t, h.out.String(), "! NavixyApi restarted successfully")
	entries := h.logger.GetLast(1)
	require.Len(t, entries, 1)
	assert.Equal(t, "alert: NavixyApi restarted successfully", entries[0].Message)
}
