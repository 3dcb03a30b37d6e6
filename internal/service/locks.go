package service

import "sync"

// userLocks serializes the read-modify-write cycle per user so two
// concurrent requests for the same user cannot drop each other's turns.
// Entries are retained for the process lifetime; the per-user footprint is
// one mutex.
type userLocks struct {
	locks sync.Map // userID -> *sync.Mutex
}

func (l *userLocks) lock(userID string) (unlock func()) {
	v, _ := l.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
