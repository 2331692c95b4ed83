package service

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"golang.org/x/exp/maps"
)

type Phase string

const (
	PhaseAwaitingInput  Phase = "awaitingInput"
	PhaseComputingMoves Phase = "computingMoves"
	PhaseAIThinking     Phase = "aiThinking"
	PhaseStalemate      Phase = "stalemate"
	PhaseGameOver       Phase = "gameOver"
)

// State is the turn-flow position of a coordinator. Opponent is set while an
// AI is thinking, Winner once the game is over.
type State struct {
	Phase    Phase      `json:"phase"`
	Opponent string     `json:"opponent,omitempty"`
	Winner   model.Team `json:"winner,omitempty"`
}

func awaitingInput() State  { return State{Phase: PhaseAwaitingInput} }
func computingMoves() State { return State{Phase: PhaseComputingMoves} }
func stalemate() State      { return State{Phase: PhaseStalemate} }

func aiThinking(name string) State {
	return State{Phase: PhaseAIThinking, Opponent: name}
}

func gameOver(winner model.Team) State {
	return State{Phase: PhaseGameOver, Winner: winner}
}

// Terminal reports whether no further turn will start without a reversal.
func (s State) Terminal() bool {
	return s.Phase == PhaseStalemate || s.Phase == PhaseGameOver
}

func (s State) String() string {
	switch s.Phase {
	case PhaseAIThinking:
		return fmt.Sprintf("%s(%s)", s.Phase, s.Opponent)
	case PhaseGameOver:
		return fmt.Sprintf("%s(%s)", s.Phase, s.Winner)
	}
	return string(s.Phase)
}

// MoveIndex maps each origin square to the legal moves starting there.
type MoveIndex map[model.Coordinate][]model.Move

func NewMoveIndex(legal []model.Move) MoveIndex {
	index := make(MoveIndex)
	for _, m := range legal {
		index[m.Origin] = append(index[m.Origin], m)
	}
	return index
}

// Origins returns the squares with at least one legal move, a1 first.
func (ix MoveIndex) Origins() []model.Coordinate {
	origins := maps.Keys(ix)
	slices.SortFunc(origins, func(a, b model.Coordinate) int {
		return cmp.Compare(a.Index(), b.Index())
	})
	return origins
}

// Find resolves an origin and destination pair to its legal move.
func (ix MoveIndex) Find(origin, destination model.Coordinate) (model.Move, bool) {
	for _, m := range ix[origin] {
		if m.Destination == destination {
			return m, true
		}
	}
	return model.Move{}, false
}

// Into lists the legal moves landing on destination.
func (ix MoveIndex) Into(destination model.Coordinate) []model.Move {
	var moves []model.Move
	for _, origin := range ix.Origins() {
		for _, m := range ix[origin] {
			if m.Destination == destination {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func (ix MoveIndex) Contains(m model.Move) bool {
	return slices.Contains(ix[m.Origin], m)
}

func (ix MoveIndex) Count() int {
	n := 0
	for _, moves := range ix {
		n += len(moves)
	}
	return n
}

// Selection is the origin a human picked together with its legal moves.
type Selection struct {
	Origin model.Coordinate `json:"origin"`
	Moves  []model.Move     `json:"moves"`
}

// Snapshot is an immutable view of a coordinator published after every
// change. Readers must not modify it.
type Snapshot struct {
	Version          uint64                           `json:"version"`
	State            State                            `json:"state"`
	Turn             model.Team                       `json:"turn"`
	Status           model.Status                     `json:"status,omitempty"`
	FEN              string                           `json:"fen"`
	Pieces           map[model.Coordinate]model.Piece `json:"pieces"`
	History          []model.Move                     `json:"history"`
	Notation         []string                         `json:"notation"`
	LegalMoves       MoveIndex                        `json:"legalMoves,omitempty"`
	Movable          []model.Coordinate               `json:"movable,omitempty"`
	Selection        *Selection                       `json:"selection,omitempty"`
	PendingPromotion *model.Move                      `json:"pendingPromotion,omitempty"`
	White            Seat                             `json:"white"`
	Black            Seat                             `json:"black"`

	Game model.Game `json:"-"`
}

func piecesOf(b model.Board) map[model.Coordinate]model.Piece {
	pieces := make(map[model.Coordinate]model.Piece, 32)
	for _, c := range model.AllCoordinates() {
		if p, ok := b.Occupant(c); ok {
			pieces[c] = p
		}
	}
	return pieces
}
