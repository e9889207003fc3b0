package docstore

import "sync"

// userLocks hands out one mutex per user id. Entries are never evicted; the
// map grows with the set of users active since process start.
type userLocks struct {
	mutexes sync.Map
}

func newUserLocks() *userLocks {
	return &userLocks{}
}

func (locks *userLocks) lock(userID string) func() {
	value, _ := locks.mutexes.LoadOrStore(userID, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}
