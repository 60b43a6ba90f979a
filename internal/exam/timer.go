package exam

import (
	"context"
	"sync"
	"time"
)

// Timer runs fn every interval on its own goroutine until fn returns
// false, the context is done, or the timer is cancelled.
type Timer struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartTimer starts a periodic task.
func StartTimer(ctx context.Context, interval time.Duration, fn func() bool) *Timer {
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
				if !fn() {
					return
				}
			}
		}
	}()
	return t
}

// Cancel asks the timer to stop without waiting. It is safe to call from
// inside fn.
func (t *Timer) Cancel() {
	t.once.Do(t.cancel)
}

// Stop cancels the timer and waits for its goroutine to exit. It must not
// be called from inside fn.
func (t *Timer) Stop() {
	t.Cancel()
	<-t.done
}

// Done is closed once the timer goroutine has exited.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}
