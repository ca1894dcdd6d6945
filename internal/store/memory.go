package store

import "sync"

// MemoryBackend is a map-backed Backend. It is the in-process stand-in for
// browser local storage.
type MemoryBackend struct {
	// If muPtr is nil the backend is NOT goroutine-safe.
	muPtr *sync.RWMutex

	items map[string]string
	size  int
	quota int
}

// MemoryOptions controls construction of a MemoryBackend.
type MemoryOptions struct {
	// ConcurrencySafe guards every operation with a RWMutex.
	ConcurrencySafe bool
	// Quota caps the total bytes of keys and values. Zero means unlimited.
	Quota int
}

// NewMemoryBackend constructs an empty MemoryBackend.
func NewMemoryBackend(opts MemoryOptions) *MemoryBackend {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &MemoryBackend{
		muPtr: mu,
		items: make(map[string]string),
		quota: opts.Quota,
	}
}

func (m *MemoryBackend) lockR() func() {
	if m.muPtr == nil {
		return func() {}
	}
	m.muPtr.RLock()
	return m.muPtr.RUnlock
}

func (m *MemoryBackend) lockW() func() {
	if m.muPtr == nil {
		return func() {}
	}
	m.muPtr.Lock()
	return m.muPtr.Unlock
}

// Read implements Backend.Read.
func (m *MemoryBackend) Read(key string) (string, bool, error) {
	unlock := m.lockR()
	defer unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// Write implements Backend.Write. An over-quota write leaves the previous
// value in place.
func (m *MemoryBackend) Write(key, value string) error {
	unlock := m.lockW()
	defer unlock()

	next := m.size + len(value)
	if old, ok := m.items[key]; ok {
		next -= len(old)
	} else {
		next += len(key)
	}
	if m.quota > 0 && next > m.quota {
		return ErrQuotaExceeded
	}
	m.items[key] = value
	m.size = next
	return nil
}

// Delete implements Backend.Delete.
func (m *MemoryBackend) Delete(key string) error {
	unlock := m.lockW()
	defer unlock()
	if old, ok := m.items[key]; ok {
		m.size -= len(key) + len(old)
		delete(m.items, key)
	}
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
