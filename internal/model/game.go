package model

import "fmt"

// Game is the complete rules state of a match. Every transition returns a
// new Game; a Game value is never modified after it is built, so it can be
// read from any goroutine.
type Game struct {
	Board   Board  `json:"-"`
	Turn    Team   `json:"turn"`
	History []Move `json:"history"`

	origin clock
}

// clock holds the FEN move counters of the position History starts from.
// A zero fullmove reads as 1.
type clock struct {
	halfmove   int
	fullmove   int
	blackFirst bool
}

// NewGame returns the standard starting position with White to move.
func NewGame() Game {
	return Game{
		Board: StandardBoard(),
		Turn:  White,
	}
}

// Performing applies m and returns the resulting game. A NeedsPromotion
// move leaves the turn with the mover until it is resolved by Promoting.
func (g Game) Performing(m Move) Game {
	piece, ok := g.Board.Occupant(m.Origin)
	if !ok {
		panic(fmt.Sprintf("performing %s: no piece at origin", m))
	}

	board := g.Board.Removing(m.Origin)
	if sq, ok := m.CaptureSquare(); ok {
		board = board.Removing(sq)
	}
	placed := piece
	if m.Kind == Promotion {
		placed = NewPiece(m.Promotion, piece.Color)
	}
	board = board.Placing(placed, m.Destination)
	if m.Kind == Castle {
		rookFrom, rookTo := m.castleRookSquares()
		rook, _ := board.Occupant(rookFrom)
		board = board.Removing(rookFrom).Placing(rook, rookTo)
	}

	history := make([]Move, len(g.History), len(g.History)+1)
	copy(history, g.History)

	next := Game{
		Board:   board,
		Turn:    g.Turn,
		History: append(history, m),
		origin:  g.origin,
	}
	if m.Kind != NeedsPromotion {
		next.Turn = g.Turn.Opponent()
	}
	return next
}

// ReversingLastMove undoes the most recent move exactly. With an empty
// history it returns g unchanged.
func (g Game) ReversingLastMove() Game {
	if len(g.History) == 0 {
		return g
	}
	last := g.History[len(g.History)-1]

	piece, ok := g.Board.Occupant(last.Destination)
	if !ok {
		panic(fmt.Sprintf("reversing %s: no piece at destination", last))
	}
	if last.Kind == Promotion {
		piece = NewPiece(Pawn, piece.Color)
	}

	board := g.Board.Removing(last.Destination).Placing(piece, last.Origin)
	if sq, ok := last.CaptureSquare(); ok {
		board = board.Placing(last.Captured, sq)
	}
	if last.Kind == Castle {
		rookFrom, rookTo := last.castleRookSquares()
		rook, _ := board.Occupant(rookTo)
		board = board.Removing(rookTo).Placing(rook, rookFrom)
	}

	var history []Move
	if len(g.History) > 1 {
		history = g.History[: len(g.History)-1 : len(g.History)-1]
	}

	prev := Game{
		Board:   board,
		Turn:    g.Turn,
		History: history,
		origin:  g.origin,
	}
	if last.Kind != NeedsPromotion {
		prev.Turn = g.Turn.Opponent()
	}
	return prev
}

// PendingPromotion reports the NeedsPromotion move awaiting a piece choice.
func (g Game) PendingPromotion() (Move, bool) {
	if len(g.History) == 0 {
		return Move{}, false
	}
	last := g.History[len(g.History)-1]
	return last, last.Kind == NeedsPromotion
}

// Promoting resolves the pending promotion to pt and passes the turn.
func (g Game) Promoting(pt PieceType) (Game, error) {
	pending, ok := g.PendingPromotion()
	if !ok {
		return g, ErrNoPendingPromotion
	}
	if _, err := ParsePromotionPiece(string(pt)); err != nil {
		return g, err
	}
	return g.ReversingLastMove().Performing(pending.promoted(pt)), nil
}

// LastMove returns the most recent move, if any.
func (g Game) LastMove() (Move, bool) {
	if len(g.History) == 0 {
		return Move{}, false
	}
	return g.History[len(g.History)-1], true
}

// Equal compares board, turn and history; nil and empty histories match.
// Imported move counters are not compared.
func (g Game) Equal(o Game) bool {
	if g.Board != o.Board || g.Turn != o.Turn || len(g.History) != len(o.History) {
		return false
	}
	for i := range g.History {
		if g.History[i] != o.History[i] {
			return false
		}
	}
	return true
}

// touched reports whether any move so far started or ended on sq.
func (g Game) touched(sq Coordinate) bool {
	for _, m := range g.History {
		if m.Origin == sq || m.Destination == sq {
			return true
		}
	}
	return false
}
