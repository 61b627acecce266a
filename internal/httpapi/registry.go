package httpapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/simulado/internal/session"
)

// ErrSessionNotFound is returned for unknown or deleted session IDs.
var ErrSessionNotFound = errors.New("session not found")

const (
	// DefaultFinishedTTL is how long a finished session stays readable,
	// long enough to review it and start a retry.
	DefaultFinishedTTL = 30 * time.Minute

	// DefaultIdleTTL drops sessions nobody has touched in this long.
	DefaultIdleTTL = 6 * time.Hour
)

type entry struct {
	mu       sync.Mutex
	sess     *session.Session
	parentID string
	timer    *session.Timer

	// guarded by Registry.mu
	lastSeen   time.Time
	finishedAt time.Time
}

// Registry holds the live sessions of the HTTP binding. Each session is
// guarded by its own mutex and ticked by its own timer. Finished sessions
// are evicted FinishedTTL after their clock stops and any session is
// evicted after IdleTTL without a request.
type Registry struct {
	FinishedTTL time.Duration
	IdleTTL     time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	tick    time.Duration
	now     func() time.Time
}

// NewRegistry creates a Registry whose timers fire every tick.
func NewRegistry(tick time.Duration) *Registry {
	if tick <= 0 {
		tick = time.Second
	}
	return &Registry{
		FinishedTTL: DefaultFinishedTTL,
		IdleTTL:     DefaultIdleTTL,
		entries:     make(map[string]*entry),
		tick:        tick,
		now:         time.Now,
	}
}

// Add registers s and starts its clock. Expired sessions are swept first.
func (r *Registry) Add(s *session.Session, parentID string) {
	r.Sweep()

	e := &entry{sess: s, parentID: parentID, lastSeen: r.now()}
	e.timer = session.StartTimer(context.Background(), r.tick, func() {
		e.mu.Lock()
		e.sess.Tick()
		e.mu.Unlock()
	})

	r.mu.Lock()
	r.entries[s.ID()] = e
	r.mu.Unlock()
}

func (r *Registry) get(id string) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e, nil
}

// With runs fn with exclusive access to the session. fn must not call
// back into the Registry.
func (r *Registry) With(id string, fn func(s *session.Session) error) error {
	e, err := r.get(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

// ParentID returns the session a retry session was derived from.
func (r *Registry) ParentID(id string) string {
	e, err := r.get(id)
	if err != nil {
		return ""
	}
	return e.parentID
}

// StopClock stops the session's timer and starts its FinishedTTL. It is
// idempotent.
func (r *Registry) StopClock(id string) error {
	e, err := r.get(id)
	if err != nil {
		return err
	}
	e.timer.Stop()

	r.mu.Lock()
	if e.finishedAt.IsZero() {
		e.finishedAt = r.now()
	}
	r.mu.Unlock()
	return nil
}

// Sweep evicts expired sessions and returns how many it dropped.
func (r *Registry) Sweep() int {
	now := r.now()
	var expired []*entry

	r.mu.Lock()
	for id, e := range r.entries {
		finished := !e.finishedAt.IsZero() && now.Sub(e.finishedAt) >= r.FinishedTTL
		idle := r.IdleTTL > 0 && now.Sub(e.lastSeen) >= r.IdleTTL
		if finished || idle {
			delete(r.entries, id)
			expired = append(expired, e)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.timer.Stop()
	}
	return len(expired)
}

// RunJanitor calls Sweep every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	t := session.StartTimer(ctx, interval, func() { r.Sweep() })
	<-ctx.Done()
	t.Stop()
}

// Remove stops the session's timer and forgets it.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.timer.Stop()
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close stops every timer and drops all sessions.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.timer.Stop()
	}
}
