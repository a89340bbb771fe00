package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("ABC"), lm.GetLock("ABC"))
	assert.NotSame(t, lm.GetLock("ABC"), lm.GetLock("XYZ"))
}

func TestWithLock_Serializes(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("shared", func() error {
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestRelease(t *testing.T) {
	lm := NewLockManager()
	first := lm.GetLock("code")
	lm.Release("code")
	assert.NotSame(t, first, lm.GetLock("code"))
}
