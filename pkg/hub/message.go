// Package hub provides a thread-safe websocket broadcast hub
// using the idiomatic Go channel-based fan-out pattern. The portal
// runs one hub per stream: pose (camera parameters), video (preview
// frames), and logs.
package hub

// MessageType indicates the websocket message format.
type MessageType int

const (
	// JSONMessage is a JSON-encoded text message. The pose and log
	// streams use this.
	JSONMessage MessageType = iota
	// BinaryMessage is raw binary data. The video stream uses this
	// for JPEG preview frames.
	BinaryMessage
)

// Message is one broadcast payload, already encoded.
type Message struct {
	Type MessageType
	Data []byte
}

// NewJSONMessage wraps pre-encoded JSON bytes.
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// NewBinaryMessage wraps binary data.
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}
