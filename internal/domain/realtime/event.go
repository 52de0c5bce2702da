package realtime

import "encoding/json"

// Event types a client may subscribe to, mirroring row-level changes
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
	EventAll    = "*"
)

// ChangeEvent tells subscribers that rows in a table changed. It carries no
// row payload: consumers are expected to refetch.
type ChangeEvent struct {
	Type  string `json:"type"` // always "change"
	Table string `json:"table"`
	Event string `json:"event"`
}

// Marshal encodes the event for the wire
func (e ChangeEvent) Marshal() []byte {
	b, _ := json.Marshal(e)
	return b
}

// clientMessage is what a connected client sends: subscribe/unsubscribe
type clientMessage struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Table  string `json:"table"`
	Event  string `json:"event"` // defaults to "*"
}

// fanoutMessage wraps an event for Redis Pub/Sub between instances
type fanoutMessage struct {
	SenderInstanceID string      `json:"sender_instance_id"`
	Payload          ChangeEvent `json:"payload"`
}
