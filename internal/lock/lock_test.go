package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLockerSerializes(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	var inSection int
	var maxSeen int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := l.Acquire(ctx, "email:a@x.com", time.Second)
			defer release()

			mu.Lock()
			inSection++
			if inSection > maxSeen {
				maxSeen = inSection
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inSection--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestMemoryLockerIndependentKeys(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	r1 := l.Acquire(ctx, "a", time.Second)
	defer r1()

	done := make(chan struct{})
	go func() {
		r2 := l.Acquire(ctx, "b", time.Second)
		r2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("independent key blocked behind unrelated lock")
	}
}

func TestMemoryLockerProceedsAfterDeadline(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	r1 := l.Acquire(ctx, "a", time.Minute)
	defer r1()

	// contended acquire with a tiny ttl returns instead of hanging
	start := time.Now()
	r2 := l.Acquire(ctx, "a", 10*time.Millisecond)
	r2()
	assert.Less(t, time.Since(start), time.Second)
}

func TestMemoryLockerReleaseIsIdempotent(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	release := l.Acquire(ctx, "a", time.Second)
	release()
	release() // second call must not panic or release someone else's lock

	r2 := l.Acquire(ctx, "a", time.Second)
	r2()
}
