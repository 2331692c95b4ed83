package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	panic(fmt.Sprintf("unknown piece type %q", string(p)))
}

// Value is the conventional material value; the king has none.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 0
	}
	panic(fmt.Sprintf("unknown piece type %q", string(p)))
}

// PromotionChoices are the piece types a pawn may become.
var PromotionChoices = []PieceType{Queen, Rook, Bishop, Knight}

func ParsePromotionPiece(s string) (PieceType, error) {
	for _, pt := range PromotionChoices {
		if string(pt) == s {
			return pt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPromotion, s)
}

// Piece is a value; the zero Piece stands for "no piece".
type Piece struct {
	Type  PieceType `json:"type"`
	Color Team      `json:"color"`
}

func NewPiece(pt PieceType, color Team) Piece {
	return Piece{Type: pt, Color: color}
}

func (p Piece) IsZero() bool { return p.Type == "" }

// Value is zero for the empty piece.
func (p Piece) Value() int {
	if p.IsZero() {
		return 0
	}
	return p.Type.Value()
}

func (p Piece) String() string {
	if p.IsZero() {
		return "none"
	}
	return string(p.Color) + " " + string(p.Type)
}
