package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

const (
	ActionCommand = "command"
	ActionMessage = "message"
	ActionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CommandPayload is one line of player input.
type CommandPayload struct {
	Text string `json:"text"`
}

type ResponsePayload struct {
	Text  string            `json:"text,omitempty"`
	View  *tripletriad.View `json:"view,omitempty"`
	Error string            `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) (Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: body}, nil
}
