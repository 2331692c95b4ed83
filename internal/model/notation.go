package model

import "fmt"

// Notation renders m in short algebraic notation. g is the game before m.
// It classifies the resulting position, so callers that already know the
// legal moves and the next status should use NotationAmong and StatusSuffix.
func (g Game) Notation(m Move) string {
	return g.NotationAmong(m, LegalMoves(g.Turn, g)) + checkSuffix(g.Performing(m))
}

// NotationAmong renders m without a check suffix. legal holds the mover's
// legal moves in g; only those landing on m's destination are consulted.
func (g Game) NotationAmong(m Move, legal []Move) string {
	if m.Kind == Castle {
		if m.Destination.File() > m.Origin.File() {
			return "O-O"
		}
		return "O-O-O"
	}

	piece, _ := g.Board.Occupant(m.Origin)
	prefix := piece.Type.getPieceNotation()
	specifier := ""
	if piece.Type == Pawn {
		if m.Origin.File() != m.Destination.File() {
			specifier = m.Origin.getFileNotation()
		}
	} else {
		specifier = g.disambiguation(m, piece, legal)
	}
	capture := ""
	if !m.Captured.IsZero() {
		capture = "x"
	}
	promotion := ""
	if m.Kind == Promotion {
		promotion = "=" + m.Promotion.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, specifier, capture, m.Destination, promotion)
}

// disambiguation names the origin file, row or square when another piece of
// the same kind could also reach the destination.
func (g Game) disambiguation(m Move, piece Piece, legal []Move) string {
	var sameFile, sameRow, others bool
	for _, other := range legal {
		if other.Origin == m.Origin || other.Destination != m.Destination {
			continue
		}
		if p, _ := g.Board.Occupant(other.Origin); p != piece {
			continue
		}
		others = true
		sameFile = sameFile || other.Origin.File() == m.Origin.File()
		sameRow = sameRow || other.Origin.Row() == m.Origin.Row()
	}
	switch {
	case !others:
		return ""
	case !sameFile:
		return m.Origin.getFileNotation()
	case !sameRow:
		return fmt.Sprintf("%d", m.Origin.Row()+1)
	default:
		return m.Origin.String()
	}
}

func checkSuffix(after Game) string {
	if _, pending := after.PendingPromotion(); pending {
		return ""
	}
	return StatusSuffix(Classify(after.Turn, after))
}

// StatusSuffix is the notation mark for the side to move being in s.
func StatusSuffix(s Status) string {
	switch s {
	case StatusCheckmate:
		return "#"
	case StatusCheck:
		return "+"
	}
	return ""
}
