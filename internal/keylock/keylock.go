// Package keylock maps a user id to a dedicated mutex so that mutations on
// the same user serialize while different users never contend.
package keylock

import "sync"

// Registry creates locks lazily, one per key, and never evicts them. The
// map grows with the set of distinct users seen during the process
// lifetime.
type Registry struct {
	locks sync.Map // int64 -> *sync.Mutex
}

func New() *Registry { return &Registry{} }

// Acquire blocks until the caller exclusively holds the lock for userID.
func (r *Registry) Acquire(userID int64) {
	r.lockFor(userID).Lock()
}

// Release must be called on every exit path after Acquire, or the user is
// locked out permanently.
func (r *Registry) Release(userID int64) {
	r.lockFor(userID).Unlock()
}

func (r *Registry) lockFor(userID int64) *sync.Mutex {
	if l, ok := r.locks.Load(userID); ok {
		return l.(*sync.Mutex)
	}
	// LoadOrStore keeps concurrent first-time callers from registering two
	// distinct locks for the same key.
	l, _ := r.locks.LoadOrStore(userID, &sync.Mutex{})
	return l.(*sync.Mutex)
}
