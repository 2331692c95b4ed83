package model

import "strings"

// Board maps every coordinate to an optional piece. It is an array value,
// so assignment copies it and the placement methods never alias.
type Board struct {
	squares [8][8]Piece
}

func (b Board) Occupant(at Coordinate) (Piece, bool) {
	p := b.squares[at.row][at.file]
	return p, !p.IsZero()
}

func (b Board) Placing(p Piece, at Coordinate) Board {
	b.squares[at.row][at.file] = p
	return b
}

func (b Board) Removing(at Coordinate) Board {
	b.squares[at.row][at.file] = Piece{}
	return b
}

// Pieces returns the occupied squares owned by team in index order.
func (b Board) Pieces(team Team) []Coordinate {
	out := make([]Coordinate, 0, 16)
	for _, c := range AllCoordinates() {
		if p, ok := b.Occupant(c); ok && p.Color == team {
			out = append(out, c)
		}
	}
	return out
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StandardBoard is the initial layout, White on rows 0 and 1.
func StandardBoard() Board {
	var b Board
	for file := 0; file < 8; file++ {
		b.squares[White.homeRow()][file] = NewPiece(backRank[file], White)
		b.squares[White.pawnRow()][file] = NewPiece(Pawn, White)
		b.squares[Black.homeRow()][file] = NewPiece(backRank[file], Black)
		b.squares[Black.pawnRow()][file] = NewPiece(Pawn, Black)
	}
	return b
}

// String draws the board from White's side, upper case for White.
func (b Board) String() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		for file := 0; file < 8; file++ {
			sb.WriteByte(b.squares[row][file].fenLetter())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p Piece) fenLetter() byte {
	if p.IsZero() {
		return '.'
	}
	letter := p.Type.getPieceNotation()
	if letter == "" {
		letter = "P"
	}
	if p.Color == Black {
		return strings.ToLower(letter)[0]
	}
	return letter[0]
}
