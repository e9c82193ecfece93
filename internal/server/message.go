package server

import (
	"encoding/json"
	"time"

	"github.com/lox/tenpin/bowling"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// GameData carries a game either as frames or as a rolls string. Frames are
// left untyped so malformed shapes are reported as game errors, not as JSON
// decoding failures.
type GameData struct {
	Frames any    `json:"frames,omitempty"`
	Rolls  string `json:"rolls,omitempty"`
}

// ScoreResultData is the reply to a score request
type ScoreResultData struct {
	Score  int                  `json:"score"`
	Frames []bowling.FrameScore `json:"frames"`
}

// ValidateResultData is the reply to a validate request
type ValidateResultData struct {
	Valid  bool `json:"valid"`
	Frames int  `json:"frames"`
}

// ErrorData describes a rejected request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
