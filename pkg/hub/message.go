// Package hub provides a thread-safe websocket broadcast hub using the
// idiomatic Go channel-based fan-out pattern. followcam runs one hub per
// dashboard feed: preview (binary JPEG frames) and status (JSON
// session-state snapshots).
package hub

// MessageType indicates the websocket message format
type MessageType int

const (
	// JSONMessage is a JSON-encoded message (the status feed)
	JSONMessage MessageType = iota
	// BinaryMessage is raw binary data (the preview feed's JPEG frames)
	BinaryMessage
)

// Message is one broadcast payload, fanned out to every connected client
// of a feed.
type Message struct {
	Type MessageType
	Data []byte
}

// NewJSONMessage creates a JSON message from pre-encoded bytes
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// NewBinaryMessage creates a binary message
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}
