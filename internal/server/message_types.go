package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

const (
	// Client to server messages
	MessageTypeScore    MessageType = "score"
	MessageTypeValidate MessageType = "validate"

	// Server to client messages
	MessageTypeScoreResult    MessageType = "score_result"
	MessageTypeValidateResult MessageType = "validate_result"
	MessageTypeError          MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
