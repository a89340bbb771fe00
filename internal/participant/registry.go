// Package participant tracks the players taking part in one event.
package participant

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Registry is a concurrent set of player ids. It is safe for use by the tick
// goroutine and request handlers at the same time.
type Registry struct {
	members sync.Map // int64 -> struct{}
	count   atomic.Int64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// TryAdd inserts id and reports whether it was absent.
func (r *Registry) TryAdd(id int64) bool {
	if _, loaded := r.members.LoadOrStore(id, struct{}{}); loaded {
		return false
	}
	r.count.Add(1)
	return true
}

// TryRemove deletes id and reports whether it was present.
func (r *Registry) TryRemove(id int64) bool {
	if _, loaded := r.members.LoadAndDelete(id); !loaded {
		return false
	}
	r.count.Add(-1)
	return true
}

// Contains reports membership
func (r *Registry) Contains(id int64) bool {
	_, ok := r.members.Load(id)
	return ok
}

// Len returns the member count
func (r *Registry) Len() int {
	return int(r.count.Load())
}

// Snapshot returns the current members in ascending order.
func (r *Registry) Snapshot() []int64 {
	ids := make([]int64, 0, r.Len())
	r.members.Range(func(k, _ any) bool {
		ids = append(ids, k.(int64))
		return true
	})
	slices.Sort(ids)
	return ids
}

// Clear removes every member and returns the ids that were removed.
func (r *Registry) Clear() []int64 {
	var removed []int64
	r.members.Range(func(k, _ any) bool {
		if r.TryRemove(k.(int64)) {
			removed = append(removed, k.(int64))
		}
		return true
	})
	slices.Sort(removed)
	return removed
}
