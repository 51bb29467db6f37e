package notifier

// EventType is the closed set of push event names.
type EventType string

const (
	EventBalanceUpdate         EventType = "BALANCE_UPDATE"
	EventTransactionCreated    EventType = "TRANSACTION_CREATED"
	EventTransactionUpdated    EventType = "TRANSACTION_UPDATED"
	EventTransactionDeleted    EventType = "TRANSACTION_DELETED"
	EventInvitationCreated     EventType = "INVITATION_CREATED"
	EventInvitationAccepted    EventType = "INVITATION_ACCEPTED"
	EventConnectionEstablished EventType = "CONNECTION_ESTABLISHED"
)

// Event is one push message: a type plus an event-specific payload the
// notifier never interprets. It is serialized as a single JSON object.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}
