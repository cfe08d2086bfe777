package advisor

import (
	"context"
	"sync"
	"time"
)

// Outcome is what a form session finally receives for a submitted input.
// Superseded means a newer input arrived for the same session before this one
// produced a result; its suggestion must be discarded.
type Outcome struct {
	Suggestion *Suggestion
	Err        error
	Superseded bool
}

type session struct {
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	waiter chan Outcome
	req    Request
}

// Debouncer coordinates opportunistic advisory calls per form session.
//
// Each Submit restarts the session's settle timer, so the advisor is only
// invoked once input has stopped changing. A newer Submit supersedes any
// pending or in-flight older one: the older waiter is released with
// Superseded and the in-flight call's context is cancelled. Only the most
// recent request's result is ever delivered.
type Debouncer struct {
	advisor Advisor
	settle  time.Duration

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

func NewDebouncer(advisor Advisor, settle time.Duration) *Debouncer {
	return &Debouncer{
		advisor:  advisor,
		settle:   settle,
		sessions: make(map[string]*session),
	}
}

// Submit registers new form input for the session and returns a channel that
// receives exactly one Outcome: the suggestion, an error, or Superseded.
// The channel is buffered; the caller may abandon it freely.
func (d *Debouncer) Submit(sessionID string, req Request) <-chan Outcome {
	ch := make(chan Outcome, 1)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		ch <- Outcome{Superseded: true}
		return ch
	}

	s, ok := d.sessions[sessionID]
	if !ok {
		s = &session{}
		d.sessions[sessionID] = s
	}

	// release whoever was waiting on the previous input
	if s.waiter != nil {
		s.waiter <- Outcome{Superseded: true}
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.seq++
	s.req = req
	s.waiter = ch

	seq := s.seq
	s.timer = time.AfterFunc(d.settle, func() {
		d.fire(sessionID, seq)
	})

	return ch
}

// fire runs the advisory call for the given submission unless it has already
// been superseded.
func (d *Debouncer) fire(sessionID string, seq uint64) {
	d.mu.Lock()
	s, ok := d.sessions[sessionID]
	if !ok || s.seq != seq || d.closed {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	req := s.req
	d.mu.Unlock()

	suggestion, err := d.advisor.SuggestExpiry(ctx, req)

	d.mu.Lock()
	defer d.mu.Unlock()

	// a newer submission took over while the call was in flight
	if s.seq != seq || s.waiter == nil {
		return
	}

	s.waiter <- Outcome{Suggestion: suggestion, Err: err}
	s.waiter = nil
	s.cancel = nil
	delete(d.sessions, sessionID)
}

// Close releases all pending waiters and cancels in-flight calls.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for id, s := range d.sessions {
		if s.timer != nil {
			s.timer.Stop()
		}
		if s.cancel != nil {
			s.cancel()
		}
		if s.waiter != nil {
			s.waiter <- Outcome{Superseded: true}
			s.waiter = nil
		}
		delete(d.sessions, id)
	}
}
