package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"status-dashboard/internal/backend"
	"status-dashboard/internal/logs"
	"status-dashboard/internal/metrics"
	"status-dashboard/internal/status"
	"status-dashboard/internal/view"
)

// ErrAlreadyRunning is returned by Start when the loop is already active.
var ErrAlreadyRunning = errors.New("poller: already running")

// DefaultInterval is the fixed repoll period.
const DefaultInterval = 5 * time.Second

// State is where the poller is in its cycle.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
)

// Fetcher returns the latest status payload.
type Fetcher interface {
	FetchStatus(ctx context.Context) (status.Payload, error)
}

// Board receives the outcome of each cycle.
type Board interface {
	ApplySuccess(seq uint64, d view.Dashboard) bool
	ApplyFailure(seq uint64) bool
}

// Poller owns the fetch → build → apply cycle.
//
// All cycles started by Start run on one goroutine, so there is never more
// than one fetch in flight from the loop. Ticks that fire during a fetch are
// dropped by the ticker; manual refreshes requested meanwhile collapse into
// a single follow-up cycle.
type Poller struct {
	fetcher  Fetcher
	builder  *view.Builder
	board    Board
	interval time.Duration
	logger   *logs.Logger
	metrics  *metrics.Registry

	seq     atomic.Uint64
	refresh chan struct{}

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a poller. interval <= 0 uses DefaultInterval.
func New(
	interval time.Duration,
	fetcher Fetcher,
	builder *view.Builder,
	board Board,
	logger *logs.Logger,
	reg *metrics.Registry,
) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetcher:  fetcher,
		builder:  builder,
		board:    board,
		interval: interval,
		logger:   logger,
		metrics:  reg,
		refresh:  make(chan struct{}, 1),
		state:    StateIdle,
	}
}

// Start polls once right away and then every interval until Stop is called
// or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(loopCtx, p.done)

	p.logger.Infof("poller started (interval %s)", p.interval)
	return nil
}

// Stop ends the loop and waits for the in-flight cycle to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info("poller stopped")
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Refresh asks the loop for an immediate cycle. It never blocks.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// RefreshAfter schedules a one-shot Refresh.
func (p *Poller) RefreshAfter(d time.Duration) {
	time.AfterFunc(d, p.Refresh)
}

// State reports whether a fetch is in flight.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	_ = p.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.PollOnce(ctx)
		case <-p.refresh:
			p.metrics.Inc(metrics.PollManualTotal)
			_ = p.PollOnce(ctx)
		}
	}
}

// PollOnce performs exactly one cycle. Transport and decode errors are
// applied to the board as the load-error view and also returned. A cycle
// cut short by ctx leaves the board untouched.
func (p *Poller) PollOnce(ctx context.Context) error {
	seq := p.seq.Add(1)
	id := uuid.NewString()

	p.setState(StateFetching)
	defer p.setState(StateIdle)

	p.metrics.Inc(metrics.PollRunsTotal)
	payload, err := p.fetcher.FetchStatus(backend.WithRequestID(ctx, id))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.metrics.Inc(metrics.PollFailuresTotal)
		p.logger.Warnf("poll %s failed: %v", id, err)
		p.board.ApplyFailure(seq)
		return err
	}

	p.metrics.Inc(metrics.PollSuccessTotal)
	d := p.builder.Build(payload)
	if !p.board.ApplySuccess(seq, d) {
		p.logger.Debugf("poll %s superseded by a newer result", id)
		return nil
	}
	p.logger.Debugf("poll %s applied: %s, %d components", id, d.Header.Indicator.Verdict, len(d.Cards))
	return nil
}

func (p *Poller) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
