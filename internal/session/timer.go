package session

import (
	"context"
	"sync"
	"time"
)

// Timer calls a function at a fixed interval on its own goroutine until
// it is stopped or its context is cancelled.
type Timer struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartTimer begins calling tick every interval.
func StartTimer(ctx context.Context, interval time.Duration, tick func()) *Timer {
	ctx, cancel := context.WithCancel(ctx)
	t := &Timer{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
	return t
}

// Stop cancels the timer and waits for its goroutine to exit. After Stop
// returns, tick is not called again. Safe to call more than once, but
// not from inside tick.
func (t *Timer) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}
