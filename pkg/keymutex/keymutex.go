// Package keymutex provides per-key mutual exclusion, used to serialize
// cache refreshes per (owner, data kind) so concurrent stale readers do not
// race on delete-and-replace.
package keymutex

import "sync"

type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function. Mutexes
// are retained for the process lifetime; the key space here is owners times
// sync kinds, which stays small.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
