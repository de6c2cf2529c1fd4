package events

import "time"

// Event codes emitted over the bus. Consumers subscribe on
// "events.<code>" subjects.
const (
	TypeDocumentReady      = "DOCUMENT_READY"
	TypeDocumentError      = "DOCUMENT_ERROR"
	TypeChatSessionCreated = "CHAT_SESSION_CREATED"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
