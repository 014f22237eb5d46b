package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants used for the client-server protocol
const (
	// Client to server messages
	MessageTypeHello   MessageType = "hello"
	MessageTypeNewGame MessageType = "new_game"
	MessageTypeHit     MessageType = "hit"
	MessageTypeStand   MessageType = "stand"
	MessageTypeQuit    MessageType = "quit"

	// Server to client messages
	MessageTypeHelloAck  MessageType = "hello_ack"
	MessageTypeGameState MessageType = "game_state"
	MessageTypeGameEnded MessageType = "game_ended"
	MessageTypeError     MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	var dataBytes json.RawMessage
	if data != nil {
		var err error
		dataBytes, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server payloads

type HelloData struct {
	PlayerName string `json:"playerName"`
}

type NewGameData struct {
	// Replace ends any existing game first; without it a duplicate
	// game is rejected with an error
	Replace bool `json:"replace,omitempty"`
	Bet     int  `json:"bet,omitempty"`
}

// Server → Client payloads

type HelloAckData struct {
	PlayerID string `json:"playerId"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GameEndedData struct {
	Reason string `json:"reason"`
}

// GameStateData is the wire form of a round snapshot. Cards travel as
// display strings; the dealer hole card is simply absent while hidden.
type GameStateData struct {
	Player          string   `json:"player"`
	State           string   `json:"state"`
	Bet             int      `json:"bet,omitempty"`
	PlayerCards     []string `json:"playerCards"`
	PlayerValue     int      `json:"playerValue"`
	PlayerBlackjack bool     `json:"playerBlackjack,omitempty"`
	DealerCards     []string `json:"dealerCards"`
	DealerValue     int      `json:"dealerValue,omitempty"`
	DealerShowing   int      `json:"dealerShowing,omitempty"`
	HoleHidden      bool     `json:"holeHidden,omitempty"`
	Outcome         string   `json:"outcome,omitempty"`
	Message         string   `json:"message,omitempty"`
}

// GameStateFromSnapshot converts a round snapshot to its wire form
func GameStateFromSnapshot(snap blackjack.Snapshot) GameStateData {
	data := GameStateData{
		Player:          snap.Player.Name,
		State:           snap.State.String(),
		Bet:             snap.Bet,
		PlayerCards:     cardStrings(snap.PlayerCards),
		PlayerValue:     snap.PlayerValue,
		PlayerBlackjack: snap.PlayerBlackjack,
		DealerCards:     cardStrings(snap.DealerCards),
		DealerValue:     snap.DealerValue,
		DealerShowing:   snap.DealerShowing,
		HoleHidden:      snap.HoleHidden,
	}

	if snap.Result != nil {
		data.Outcome = string(snap.Result.Outcome)
		data.Message = snap.Result.Message
	}

	return data
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
