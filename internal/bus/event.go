package bus

import "time"

// Event kinds published by the chat store. Subscribers filter by namespace
// prefix, so "store." matches everything below.
const (
	KindChatsUpdated    = "store.chats_updated"
	KindMessagesUpdated = "store.messages_updated"
	KindMessageAppended = "store.message_appended"
	KindStatusUpdated   = "store.status_updated"
	KindError           = "store.error"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
