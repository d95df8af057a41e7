package cart

import "sync"

// Manager hands out per-session carts. Each session owns its persisted copy
// exclusively; there is no cross-session merging. Carts are cached so that a
// session's sequential requests act on the same aggregate.
type Manager struct {
	dir   string
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewManager creates a manager persisting carts under dir. An empty dir keeps
// carts purely in memory.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   dir,
		carts: make(map[string]*Cart),
	}
}

// Open returns the cart for the given session, loading it from storage on
// first access.
func (m *Manager) Open(session string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[session]; ok {
		return c
	}
	var store LineStore
	if m.dir != "" {
		store = NewFileStore(m.dir, session)
	} else {
		store = NewMemoryStore()
	}
	c := Load(store)
	m.carts[session] = c
	return c
}
