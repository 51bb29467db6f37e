package notifier

import "sync"

// Conn is a live client connection able to receive events. A connection
// that has been closed must report IsOpen() == false and may keep failing
// Send without further effect.
type Conn interface {
	Send(event Event) error
	IsOpen() bool
}

// Registry maps a user id to that user's set of live connections. A user
// may hold several connections at once (multiple devices or tabs). The
// registry is process-wide state owned by whoever constructs it; entries
// vanish with the process and clients re-register on reconnect.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]map[Conn]struct{})}
}

func (r *Registry) Register(userID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.conns[userID]
	if !ok {
		set = make(map[Conn]struct{})
		r.conns[userID] = set
	}
	set[conn] = struct{}{}
}

// Unregister removes one connection. The user's entry disappears together
// with its last connection, so the map never accumulates empty sets.
func (r *Registry) Unregister(userID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.conns[userID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(r.conns, userID)
	}
}

func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[userID]
	return ok
}

// Send delivers the event to every open connection the user currently
// holds and reports whether at least one delivery was attempted. Closed
// handles are skipped. The set is snapshotted before writing so concurrent
// register/unregister calls cannot invalidate the iteration.
func (r *Registry) Send(userID string, event Event) bool {
	r.mu.RLock()
	set, ok := r.conns[userID]
	if !ok {
		r.mu.RUnlock()
		return false
	}
	snapshot := make([]Conn, 0, len(set))
	for conn := range set {
		snapshot = append(snapshot, conn)
	}
	r.mu.RUnlock()

	delivered := false
	for _, conn := range snapshot {
		if !conn.IsOpen() {
			continue
		}
		delivered = true
		// Write errors mean the peer is gone; the read loop notices and
		// unregisters, nothing to do here.
		_ = conn.Send(event)
	}
	return delivered
}
