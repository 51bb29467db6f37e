package application

import "sync"

// transactionLocks serializes mutations per transaction id, so two
// concurrent edits of the same transaction cannot interleave their
// load-persist-delta sequences and corrupt the cumulative balance.
// Entries are reference counted and removed once the last holder
// releases, keeping the map bounded by in-flight mutations.
type transactionLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newTransactionLocks() *transactionLocks {
	return &transactionLocks{entries: make(map[string]*lockEntry)}
}

func (l *transactionLocks) lock(transactionID string) {
	l.mu.Lock()
	entry, ok := l.entries[transactionID]
	if !ok {
		entry = &lockEntry{}
		l.entries[transactionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *transactionLocks) unlock(transactionID string) {
	l.mu.Lock()
	entry := l.entries[transactionID]
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, transactionID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
