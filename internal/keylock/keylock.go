// Package keylock implements a non-blocking per-key mutual exclusion set.
package keylock

import "sync"

// Set tracks a group of held keys. Unlike a map of mutexes it never blocks:
// a caller either becomes the sole holder of a key or is told to go away.
type Set struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewSet() *Set {
	return &Set{
		keys: make(map[string]struct{}),
	}
}

// TryAcquire reports whether the caller became the holder of the key.
// It never waits for the key to be released.
func (s *Set) TryAcquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.keys[key]; held {
		return false
	}

	s.keys[key] = struct{}{}

	return true
}

// Release frees the key for other holders. Releasing a key that isn't
// held is a no-op.
func (s *Set) Release(key string) {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
}
