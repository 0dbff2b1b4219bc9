package lock

import (
	"context"
	"sync"
	"time"
)

// Locker serializes short critical sections keyed on an identifier,
// narrowing the check-then-act window in registration and first-seen
// Google login. Locking is best-effort: Acquire waits briefly for a
// contended key and then proceeds anyway, because the store's unique
// indexes remain the true invariant guardian.
type Locker interface {
	// Acquire returns a release function. It must always be called.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func())
}

// retryInterval paces the wait on a contended key.
const retryInterval = 50 * time.Millisecond

// MemoryLocker is an in-process Locker for tests and single-instance
// deployments.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{})}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) func() {
	deadline := time.Now().Add(ttl)

	for {
		l.mu.Lock()
		if _, busy := l.held[key]; !busy {
			l.held[key] = struct{}{}
			l.mu.Unlock()
			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
				})
			}
		}
		l.mu.Unlock()

		if time.Now().After(deadline) || ctx.Err() != nil {
			// proceed without the lock
			return func() {}
		}
		time.Sleep(retryInterval)
	}
}
