package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"synergysphere/internal/store"
)

// NewMemoryStore returns a Store over an empty, goroutine-safe memory backend
// with a no-op logger. The backend is returned for direct inspection.
func NewMemoryStore() (*store.Store, *store.MemoryBackend) {
	b := store.NewMemoryBackend(store.MemoryOptions{ConcurrencySafe: true})
	return store.New(b, store.WithLogger(zap.NewNop())), b
}

// NewInMemoryDB returns a Store over a fresh in-memory SQLite backend that
// is closed when the test ends.
func NewInMemoryDB(tb testing.TB) *store.Store {
	tb.Helper()
	b, err := store.OpenSQLite(":memory:", false)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = b.Close() })
	return store.New(b, store.WithLogger(zap.NewNop()))
}

// Clock is a settable time source.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock returns a clock frozen at t.
func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

// Now returns the frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
