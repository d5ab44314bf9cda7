package state

import "sync"

type entry[T any] struct {
	mu    sync.Mutex
	value *T
}

// Store maps Telegram user ids to session values of type T.
// Sessions are created lazily and live for the whole process.
// Every mutation goes through Update, which serializes work per user
// while different users proceed in parallel.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[int64]*entry[T]
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[int64]*entry[T])}
}

func (s *Store[T]) lookup(userID int64) (*entry[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[userID]
	return e, ok
}

func (s *Store[T]) load(userID int64, seed func() *T) *entry[T] {
	if e, ok := s.lookup(userID); ok {
		return e
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[userID]; ok {
		return e
	}
	var v *T
	if seed != nil {
		v = seed()
	}
	if v == nil {
		v = new(T)
	}
	e := &entry[T]{value: v}
	s.entries[userID] = e
	return e
}

// GetOrCreate returns the session of userID, creating it from seed when the
// user is unseen. A nil seed, or a seed returning nil, yields the zero value.
// Repeated calls return the same pointer; mutate it only through Update.
func (s *Store[T]) GetOrCreate(userID int64, seed func() *T) *T {
	return s.load(userID, seed).value
}

// Update runs fn on the session of userID while holding that user's lock.
// The session is created from seed first if needed. fn's error is returned as is.
func (s *Store[T]) Update(userID int64, seed func() *T, fn func(*T) error) error {
	e := s.load(userID, seed)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.value)
}

// Snapshot returns a copy of the session taken under the user's lock.
func (s *Store[T]) Snapshot(userID int64) (T, bool) {
	e, ok := s.lookup(userID)
	if !ok {
		var zero T
		return zero, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.value, true
}

// Range calls fn with a copy of every session, each taken under its user's lock.
// Sessions created while Range runs may be missed.
func (s *Store[T]) Range(fn func(userID int64, v T)) {
	s.mu.RLock()
	ids := make([]int64, 0, len(s.entries))
	entries := make([]*entry[T], 0, len(s.entries))
	for id, e := range s.entries {
		ids = append(ids, id)
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	for i, e := range entries {
		e.mu.Lock()
		v := *e.value
		e.mu.Unlock()
		fn(ids[i], v)
	}
}

// Len reports the number of sessions.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
