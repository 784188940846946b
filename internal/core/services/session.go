package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driving"
	"github.com/spolujizda-labs/hledej/internal/logger"
)

// DefaultDebounce is the delay between the last keystroke and query dispatch.
const DefaultDebounce = 300 * time.Millisecond

// Session owns the debounce timer and generation counter for one search
// input. Each input change restarts the timer; when it fires, the generation
// is incremented, captured and the search dispatched. A completed search is
// delivered through the emit callback only while its captured generation is
// still current, so regardless of network completion order only the most
// recently fired query ever reaches the caller.
//
// State machine: Idle -> Pending (timer armed) -> Dispatched -> Delivered,
// or -> Superseded when a newer generation fired first.
type Session struct {
	id       string
	searcher driving.SearchService
	emit     func(domain.RankedResultSet)
	debounce time.Duration

	// emitMu serialises delivery so the staleness check and the emit call
	// form one atomic step: a superseded generation can never slip its
	// result out after the generation that superseded it.
	emitMu sync.Mutex

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	pending    *domain.SearchQuery
	inflight   context.CancelFunc
	closed     bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *Session) { s.debounce = d }
}

// NewSession attaches a session to a search input. emit receives each
// delivered result set; it is never called concurrently with itself for the
// same session and never after Close returns the session to the caller as
// stale (in-flight completions are discarded silently).
func NewSession(searcher driving.SearchService, emit func(domain.RankedResultSet), opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.NewString(),
		searcher: searcher,
		emit:     emit,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Input registers a change to the search text. Any pending timer is
// cancelled and a fresh debounce window starts.
func (s *Session) Input(query domain.SearchQuery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	q := query
	s.pending = &q
	s.timer = time.AfterFunc(s.debounce, s.fire)
	return nil
}

// Flush dispatches the pending query immediately, bypassing the remaining
// debounce delay. No-op when nothing is pending.
func (s *Session) Flush() {
	s.mu.Lock()
	armed := s.timer != nil && s.timer.Stop()
	s.mu.Unlock()
	if armed {
		s.fire()
	}
}

// fire runs on timer expiry: bump the generation, capture it, dispatch.
func (s *Session) fire() {
	s.mu.Lock()
	if s.closed || s.pending == nil {
		s.mu.Unlock()
		return
	}

	query := *s.pending
	s.pending = nil
	s.timer = nil

	s.generation++
	gen := s.generation

	// Cancelling the previous generation's context is an optimisation; the
	// generation check below is what guarantees staleness discard.
	if s.inflight != nil {
		s.inflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.inflight = cancel
	s.mu.Unlock()

	logger.Debug("Session %s: dispatching generation %d for %q", s.id, gen, query.Text)

	go s.dispatch(ctx, query, gen)
}

func (s *Session) dispatch(ctx context.Context, query domain.SearchQuery, gen uint64) {
	set, err := s.searcher.Search(ctx, query)
	if err != nil {
		logger.Warn("Session %s: generation %d failed: %v", s.id, gen, err)
		return
	}
	set.Generation = gen

	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	stale := s.closed || s.generation != gen
	s.mu.Unlock()

	if stale {
		logger.Debug("Session %s: generation %d superseded, discarding", s.id, gen)
		return
	}

	s.emit(set)
}

// Close detaches the session: the pending timer is cancelled and every
// in-flight generation becomes permanently stale. Safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}
