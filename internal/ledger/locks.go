package ledger

import "sync"

// accountLocks hands out one mutex per account so trades for different
// accounts run in parallel while trades for the same account serialize.
type accountLocks struct {
	locks    map[string]*sync.Mutex
	mapMutex sync.RWMutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock locks the mutex for one account, creating it on first use.
func (al *accountLocks) Lock(accountID string) {
	al.mapMutex.Lock()
	if al.locks[accountID] == nil {
		al.locks[accountID] = &sync.Mutex{}
	}
	mu := al.locks[accountID]
	al.mapMutex.Unlock()

	mu.Lock()
}

// Unlock unlocks the mutex for one account.
func (al *accountLocks) Unlock(accountID string) {
	al.mapMutex.RLock()
	mu := al.locks[accountID]
	al.mapMutex.RUnlock()

	if mu != nil {
		mu.Unlock()
	}
}
