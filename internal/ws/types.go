package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged with a
// game's websocket consumer
type MessageType string

const (
	// client to server
	MessageTypeSelect  MessageType = "select"
	MessageTypePromote MessageType = "promote"
	MessageTypeUndo    MessageType = "undo"

	// server to client
	MessageTypeGameState         MessageType = "gameState"
	MessageTypePromotionRequired MessageType = "promotionRequired"
	MessageTypeCheckmate         MessageType = "checkmate"
	MessageTypeStalemate         MessageType = "stalemate"
	MessageTypeError             MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SelectPayload struct {
	Square string `json:"square"`
}

type PromotePayload struct {
	Piece string `json:"piece"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func ErrorMessage(err error) Message {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{Error: err.Error()})
	return msg
}
