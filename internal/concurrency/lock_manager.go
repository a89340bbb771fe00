package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. Transfer claims lock on the claim
// code and joins lock on the player id.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the named lock.
func (lm *LockManager) WithLock(key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// Release forgets a key once no caller will lock it again, such as a
// redeemed transfer code.
func (lm *LockManager) Release(key string) {
	lm.locks.Delete(key)
}
