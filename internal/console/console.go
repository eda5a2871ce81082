package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"status-dashboard/internal/actions"
	"status-dashboard/internal/logs"
	"status-dashboard/internal/view"
)

// Refresher triggers an immediate poll.
type Refresher interface {
	Refresh()
}

// Dispatcher sends user actions.
type Dispatcher interface {
	Dispatch(ctx context.Context, a actions.Action) actions.Result
}

// Board exposes the controls currently on screen.
type Board interface {
	Current() view.Dashboard
}

// Screen is paused while a prompt waits for an answer.
type Screen interface {
	Hold()
	Release()
}

// Deps are the collaborators of Run.
type Deps struct {
	Refresher  Refresher
	Dispatcher Dispatcher
	Board      Board
}

// Console reads single-line commands and answers confirmation prompts.
// It implements actions.Confirmer and actions.Notifier.
type Console struct {
	in     io.Reader
	out    io.Writer
	screen Screen
	logger *logs.Logger

	outMu sync.Mutex

	mu       sync.Mutex
	pending  chan string
	prompted func()

	done chan struct{}
	wg   sync.WaitGroup
}

// New returns a console. screen may be nil.
func New(in io.Reader, out io.Writer, screen Screen, logger *logs.Logger) *Console {
	return &Console{
		in:     in,
		out:    out,
		screen: screen,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Run processes commands until "q", end of input or ctx is done. It waits
// for in-flight actions before returning. Run must be called once.
func (c *Console) Run(ctx context.Context, deps Deps) error {
	defer c.wg.Wait()
	defer close(c.done)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-c.done:
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if c.answer(line) {
			continue
		}

		switch cmd := strings.ToLower(line); {
		case cmd == "":
		case cmd == "q" || cmd == "quit":
			return nil
		case cmd == "r" || cmd == "refresh":
			deps.Refresher.Refresh()
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil {
				c.printf("unknown command %q\n", line)
				continue
			}
			a, ok := c.lookup(deps.Board, n)
			if !ok {
				c.printf("no control %d\n", n)
				continue
			}
			c.dispatch(ctx, deps.Dispatcher, a)
		}
	}
}

func (c *Console) lookup(b Board, n int) (actions.Action, bool) {
	ctrls := b.Current().Controls
	if n < 1 || n > len(ctrls) {
		return actions.Action{}, false
	}
	return actions.FromControlID(ctrls[n-1].ID)
}

// dispatch runs the action in the background and returns once it has
// either prompted for confirmation or finished, so the next input line
// goes to the right place.
func (c *Console) dispatch(ctx context.Context, d Dispatcher, a actions.Action) {
	ready := make(chan struct{})
	var once sync.Once
	signal := func() { once.Do(func() { close(ready) }) }

	c.mu.Lock()
	c.prompted = signal
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer signal()
		res := d.Dispatch(ctx, a)
		if errors.Is(res.Err, actions.ErrControlBusy) {
			c.Alert(fmt.Sprintf("%s is already in progress", a.ControlID()))
		}
	}()

	select {
	case <-ready:
	case <-ctx.Done():
	}
}

// answer hands line to a waiting prompt, if any.
func (c *Console) answer(line string) bool {
	c.mu.Lock()
	ch := c.pending
	c.pending = nil
	c.mu.Unlock()

	if ch == nil {
		return false
	}
	ch <- line
	return true
}

// Confirm prints prompt and waits for the next input line. Only "y" and
// "yes" confirm.
func (c *Console) Confirm(ctx context.Context, prompt string) bool {
	ch := make(chan string, 1)

	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return false
	}
	c.pending = ch
	signal := c.prompted
	c.prompted = nil
	c.mu.Unlock()

	if c.screen != nil {
		c.screen.Hold()
		defer c.screen.Release()
	}
	c.printf("\n%s [y/N] ", prompt)
	if signal != nil {
		signal()
	}

	select {
	case ans := <-ch:
		switch strings.ToLower(ans) {
		case "y", "yes":
			return true
		}
		return false
	case <-ctx.Done():
	case <-c.done:
	}

	c.mu.Lock()
	if c.pending == ch {
		c.pending = nil
	}
	c.mu.Unlock()
	return false
}

// Alert prints msg and records it in the log so it survives redraws.
func (c *Console) Alert(msg string) {
	c.logger.Info("alert: " + msg)
	c.printf("\n! %s\n", msg)
}

func (c *Console) printf(format string, args ...any) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
