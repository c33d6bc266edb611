package locking_test

import (
	"sync"
	"testing"

	"github.com/Manav-gyani/Bank-Management-System/internal/utils/locking"
	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	km := locking.NewKeyedMutex()

	const workers = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("acct-1")
			defer km.Unlock("acct-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedMutex_LockAllHandlesDuplicates(t *testing.T) {
	km := locking.NewKeyedMutex()

	// Duplicate keys must be locked once, otherwise this would self-deadlock.
	unlock := km.LockAll("a", "a", "b")
	unlock()

	// The keys must be usable again afterwards.
	km.Lock("a")
	km.Unlock("a")
	km.Lock("b")
	km.Unlock("b")
}

func TestKeyedMutex_LockAllAvoidsDeadlock(t *testing.T) {
	km := locking.NewKeyedMutex()

	// Opposite-direction acquisitions of the same pair must not deadlock:
	// LockAll imposes a global order regardless of argument order.
	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			unlock := km.LockAll("x", "y")
			unlock()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			unlock := km.LockAll("y", "x")
			unlock()
		}
	}()
	wg.Wait()
}
