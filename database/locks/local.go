package locks

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LocalLocker is an in-process Locker for single-instance deployments and tests.
type LocalLocker struct {
	Wait time.Duration

	mu   sync.Mutex
	held map[string]chan struct{}
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{Wait: wait, held: make(map[string]chan struct{})}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if l.Wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Wait)
		defer cancel()
	}

	for {
		l.mu.Lock()
		if l.held == nil {
			l.held = make(map[string]chan struct{})
		}
		done, busy := l.held[key]
		if !busy {
			done = make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
	}
}
