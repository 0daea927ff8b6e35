// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_FirstRequestImmediate(t *testing.T) {
	th := New(2 * time.Second)

	waited, err := th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), waited)
}

func TestAcquire_SpacesSameDomain(t *testing.T) {
	// One request per 500ms, the interval for a 2 req/s budget.
	th := New(500 * time.Millisecond)

	start := time.Now()
	_, err := th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)
	waited, err := th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, waited, 400*time.Millisecond)
	assert.GreaterOrEqual(t, elapsed, 500*time.Millisecond)
}

func TestAcquire_DistinctDomainsIndependent(t *testing.T) {
	th := New(5 * time.Second)

	start := time.Now()
	for _, domain := range []string{"a.example", "b.example", "c.example"} {
		waited, err := th.Acquire(context.Background(), domain)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), waited, "domain %s should not wait", domain)
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestAcquire_ConcurrentSameDomainSerializes(t *testing.T) {
	const (
		interval = 50 * time.Millisecond
		callers  = 4
	)
	th := New(interval)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		waitFree int
		errs     []error
	)
	start := time.Now()
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			waited, err := th.Acquire(context.Background(), "example.com")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if waited == 0 {
				waitFree++
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	require.Empty(t, errs)
	// Only the first reservation can be wait-free; the rest occupy
	// consecutive slots.
	assert.Equal(t, 1, waitFree)
	assert.GreaterOrEqual(t, elapsed, (callers-1)*interval)
}

func TestAcquire_ContextCanceledDuringWait(t *testing.T) {
	th := New(10 * time.Second)

	_, err := th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = th.Acquire(ctx, "example.com")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAcquire_UsesInjectedClock(t *testing.T) {
	th := New(2 * time.Second)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return current }

	waited, err := th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), waited)

	// Advance past the interval: the next slot is already free.
	current = current.Add(3 * time.Second)
	waited, err = th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), waited)
}

func TestReset_ClearsRecordedSlots(t *testing.T) {
	th := New(10 * time.Second)

	_, err := th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)

	th.Reset()

	waited, err := th.Acquire(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), waited)
}
