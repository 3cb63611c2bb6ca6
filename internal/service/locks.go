package service

import "sync"

// keyedLocks serializes operations per int64 key. Entries are reference
// counted so the table does not grow with the number of keys ever seen;
// operations on different keys never block each other.
type keyedLocks struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{entries: make(map[int64]*lockEntry)}
}

// Lock acquires the lock for key and returns its release function.
func (k *keyedLocks) Lock(key int64) func() {
	k.mu.Lock()
	e := k.entries[key]
	if e == nil {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
