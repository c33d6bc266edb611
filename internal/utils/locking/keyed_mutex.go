// Package locking provides the per-account serialization primitive of the
// ledger engine: a mutex per key, with ordered multi-key acquisition so two
// opposite-direction transfers cannot deadlock.
package locking

import (
	"sort"
	"sync"
)

// KeyedMutex hands out one mutex per key. Mutexes are created lazily and
// kept for the life of the process; the population is bounded by the number
// of accounts, which is acceptable for this service.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	return l
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key.
func (k *KeyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

// LockAll acquires the mutexes for all keys in lexicographic order. The
// fixed global order prevents deadlock between concurrent operations that
// span the same keys in different directions. Duplicate keys are locked
// once. It returns the unlock function releasing everything in reverse
// order.
func (k *KeyedMutex) LockAll(keys ...string) (unlock func()) {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			uniq = append(uniq, key)
		}
	}
	sort.Strings(uniq)

	for _, key := range uniq {
		k.Lock(key)
	}
	return func() {
		for i := len(uniq) - 1; i >= 0; i-- {
			k.Unlock(uniq[i])
		}
	}
}
