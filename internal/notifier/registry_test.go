package notifier

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeConn collects delivered events; Closed flips IsOpen to false.
type fakeConn struct {
	mu     sync.Mutex
	Events []Event
	Closed bool
}

func (c *fakeConn) Send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, event)
	return nil
}

func (c *fakeConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.Closed
}

func (c *fakeConn) received() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.Events...)
}

func TestRegistry_SendToOfflineUserIsNoOp(t *testing.T) {
	registry := NewRegistry()

	delivered := registry.Send("nobody", Event{Type: EventBalanceUpdate})

	assert.False(t, delivered)
	assert.False(t, registry.IsOnline("nobody"))
}

func TestRegistry_MultipleConnectionsAllReceive(t *testing.T) {
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}
	registry.Register("user-1", first)
	registry.Register("user-1", second)

	delivered := registry.Send("user-1", Event{Type: EventTransactionCreated})

	assert.True(t, delivered)
	assert.Len(t, first.received(), 1)
	assert.Len(t, second.received(), 1)

	// Dropping one device must not silence the other.
	registry.Unregister("user-1", first)
	assert.True(t, registry.IsOnline("user-1"))

	registry.Send("user-1", Event{Type: EventTransactionUpdated})
	assert.Len(t, first.received(), 1)
	assert.Len(t, second.received(), 2)
}

func TestRegistry_LastUnregisterRemovesUserEntry(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}
	registry.Register("user-1", conn)
	assert.True(t, registry.IsOnline("user-1"))

	registry.Unregister("user-1", conn)

	assert.False(t, registry.IsOnline("user-1"))
	assert.False(t, registry.Send("user-1", Event{Type: EventBalanceUpdate}))
}

func TestRegistry_UnregisterUnknownConnIsHarmless(t *testing.T) {
	registry := NewRegistry()
	registry.Unregister("user-1", &fakeConn{})
	assert.False(t, registry.IsOnline("user-1"))
}

func TestRegistry_ClosedConnectionsAreSkipped(t *testing.T) {
	registry := NewRegistry()
	dead := &fakeConn{Closed: true}
	live := &fakeConn{}
	// A stale handle from a previous session may still be registered when
	// the same user reconnects with a fresh one.
	registry.Register("user-1", dead)
	registry.Register("user-1", live)

	delivered := registry.Send("user-1", Event{Type: EventBalanceUpdate})

	assert.True(t, delivered)
	assert.Empty(t, dead.received())
	assert.Len(t, live.received(), 1)
}

func TestRegistry_OnlyClosedConnectionsMeansNoDelivery(t *testing.T) {
	registry := NewRegistry()
	dead := &fakeConn{Closed: true}
	registry.Register("user-1", dead)

	delivered := registry.Send("user-1", Event{Type: EventBalanceUpdate})

	assert.False(t, delivered)
}

func TestRegistry_ConcurrentRegisterSendUnregister(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn := &fakeConn{}
			registry.Register("user-1", conn)
			registry.Send("user-1", Event{Type: EventBalanceUpdate})
			registry.Unregister("user-1", conn)
		}()
	}
	wg.Wait()
	assert.False(t, registry.IsOnline("user-1"))
}
