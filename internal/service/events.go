package service

import "github.com/benbeisheim/chessrules-backend/internal/model"

type EventKind string

const (
	EventPromotionRequired EventKind = "promotionRequired"
	EventCheckmate         EventKind = "checkmate"
	EventStalemate         EventKind = "stalemate"
	EventStateChanged      EventKind = "gameState"
)

// Event is something the presentation layer must react to. Each event is
// delivered once, by draining the coordinator's EventQueue.
type Event interface {
	Kind() EventKind
}

// PromotionRequired is raised when a human move reaches the last rank and
// waits for PerformPromotionChoice.
type PromotionRequired struct {
	Move model.Move `json:"move"`
}

type Checkmate struct {
	Winner model.Team `json:"winner"`
}

type Stalemate struct{}

type StateChanged struct {
	Snapshot *Snapshot `json:"snapshot"`
}

func (PromotionRequired) Kind() EventKind { return EventPromotionRequired }
func (Checkmate) Kind() EventKind         { return EventCheckmate }
func (Stalemate) Kind() EventKind         { return EventStalemate }
func (StateChanged) Kind() EventKind      { return EventStateChanged }
