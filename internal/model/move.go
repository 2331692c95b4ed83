package model

import "fmt"

type MoveKind string

const (
	Standard       MoveKind = "standard"
	Castle         MoveKind = "castle"
	EnPassant      MoveKind = "enPassant"
	NeedsPromotion MoveKind = "needsPromotion"
	Promotion      MoveKind = "promotion"
)

// Move is an immutable record of one ply. Promotion is only set when Kind
// is Promotion. Two moves are equal only if every field matches.
type Move struct {
	Origin      Coordinate `json:"origin"`
	Destination Coordinate `json:"destination"`
	Captured    Piece      `json:"capturedPiece"`
	Kind        MoveKind   `json:"kind"`
	Promotion   PieceType  `json:"promotion,omitempty"`
}

// CaptureSquare is where the captured piece stood, which is not the
// destination for en passant.
func (m Move) CaptureSquare() (Coordinate, bool) {
	if m.Captured.IsZero() {
		return Coordinate{}, false
	}
	if m.Kind == EnPassant {
		return Coordinate{file: m.Destination.file, row: m.Origin.row}, true
	}
	return m.Destination, true
}

// castleRookSquares returns the rook's origin and destination for a castle.
func (m Move) castleRookSquares() (from, to Coordinate) {
	row := m.Origin.row
	if m.Destination.file > m.Origin.file {
		return Coordinate{file: 7, row: row}, Coordinate{file: m.Destination.file - 1, row: row}
	}
	return Coordinate{file: 0, row: row}, Coordinate{file: m.Destination.file + 1, row: row}
}

// promoted returns m re-issued as a promotion to pt.
func (m Move) promoted(pt PieceType) Move {
	m.Kind = Promotion
	m.Promotion = pt
	return m
}

func (m Move) String() string {
	switch m.Kind {
	case Castle:
		return fmt.Sprintf("%s -> %s castle", m.Origin, m.Destination)
	case EnPassant:
		return fmt.Sprintf("%s -> %s en passant", m.Origin, m.Destination)
	case NeedsPromotion:
		return fmt.Sprintf("%s -> %s needs promotion", m.Origin, m.Destination)
	case Promotion:
		return fmt.Sprintf("%s -> %s promotion to %s", m.Origin, m.Destination, m.Promotion)
	default:
		return fmt.Sprintf("%s -> %s", m.Origin, m.Destination)
	}
}
