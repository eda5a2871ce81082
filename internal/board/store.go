package board

import (
	"sync"

	"status-dashboard/internal/health"
	"status-dashboard/internal/metrics"
	"status-dashboard/internal/view"
)

// Store holds the frame currently on screen.
//
// Rules:
// - Poll results carry the sequence number of the request that produced
//   them; a result older than the last applied one is dropped.
// - A successful poll replaces the header, cards and tunnel link wholesale.
// - A failed poll replaces only the header indicator. Cards, percentage,
//   colour and last update stay as they were.
// - Controls are owned here so that every sink sees the same button state.
//
// Subscribers run under the store lock, in write order. They must not call
// back into the Store.
type Store struct {
	mu       sync.Mutex
	current  view.Dashboard
	seq      uint64
	controls []view.Control
	subs     []func(view.Dashboard)
	metrics  *metrics.Registry
}

// NewStore starts from view.Initial with the given controls.
func NewStore(reg *metrics.Registry, controls []view.Control) *Store {
	return &Store{
		current:  view.Initial(),
		controls: append([]view.Control(nil), controls...),
		metrics:  reg,
	}
}

// Subscribe registers fn and immediately hands it the current frame.
func (s *Store) Subscribe(fn func(view.Dashboard)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, fn)
	fn(s.snapshotLocked())
}

// ApplySuccess installs d if seq is newer than the last applied result.
func (s *Store) ApplySuccess(seq uint64, d view.Dashboard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acceptLocked(seq) {
		return false
	}

	s.current.Header = d.Header
	s.current.Cards = d.Cards
	s.current.Tunnel = d.Tunnel
	s.publishLocked()
	return true
}

// ApplyFailure swaps the header indicator for the load error.
func (s *Store) ApplyFailure(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acceptLocked(seq) {
		return false
	}

	s.current.Header.Indicator = health.LoadError()
	s.publishLocked()
	return true
}

// SetControl updates the label and disabled flag of control id. Unknown
// ids are ignored.
func (s *Store) SetControl(id, label string, disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.controls {
		if s.controls[i].ID != id {
			continue
		}
		s.controls[i].Label = label
		s.controls[i].Disabled = disabled
		s.publishLocked()
		return
	}
}

// Control returns the current state of control id.
func (s *Store) Control(id string) (view.Control, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.controls {
		if c.ID == id {
			return c, true
		}
	}
	return view.Control{}, false
}

// Current returns a copy of the frame on screen.
func (s *Store) Current() view.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Store) acceptLocked(seq uint64) bool {
	if seq <= s.seq {
		s.metrics.Inc(metrics.PollStaleDiscarded)
		return false
	}
	s.seq = seq
	return true
}

func (s *Store) snapshotLocked() view.Dashboard {
	d := s.current
	d.Controls = s.controls
	return d.Clone()
}

func (s *Store) publishLocked() {
	s.metrics.Inc(metrics.ViewUpdatesTotal)
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snap.Clone())
	}
}
