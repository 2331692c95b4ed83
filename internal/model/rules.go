package model

import "fmt"

var knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

// castleSide describes one castling option by file numbers on the home row.
type castleSide struct {
	rookFile    int
	kingTo      int
	mustBeEmpty []int
	kingPasses  []int
}

var castleSides = []castleSide{
	{rookFile: 7, kingTo: 6, mustBeEmpty: []int{5, 6}, kingPasses: []int{5, 6}},
	{rookFile: 0, kingTo: 2, mustBeEmpty: []int{1, 2, 3}, kingPasses: []int{3, 2}},
}

const kingHomeFile = 4

// ThreatenedSquares lists the squares the piece at origin attacks: the
// squares it could capture on if an enemy stood there. Squares held by its
// own team are excluded. Castling and pawn advances never threaten.
func ThreatenedSquares(origin Coordinate, g Game) []Coordinate {
	piece, ok := g.Board.Occupant(origin)
	if !ok {
		return nil
	}
	t := NewTraversal(origin, piece.Color)

	switch piece.Type {
	case Pawn:
		return stepSquares(t, g.Board, StepFrontLeft, StepFrontRight)
	case Knight:
		return knightSquares(origin, piece.Color, g.Board)
	case Bishop:
		return slideSquares(t, g.Board, diagonalSteps)
	case Rook:
		return slideSquares(t, g.Board, orthogonalSteps)
	case Queen:
		return slideSquares(t, g.Board, allSteps)
	case King:
		return stepSquares(t, g.Board, allSteps...)
	}
	panic(fmt.Sprintf("threatened squares: unknown piece type %q", string(piece.Type)))
}

// PossibleMoves lists the moves of the piece at origin without regard to
// whether they leave its own king attacked.
func PossibleMoves(origin Coordinate, g Game) []Move {
	piece, ok := g.Board.Occupant(origin)
	if !ok {
		return nil
	}

	switch piece.Type {
	case Pawn:
		return pawnMoves(origin, piece, g)
	case King:
		moves := toMoves(origin, ThreatenedSquares(origin, g), g.Board)
		return append(moves, castleMoves(origin, piece, g)...)
	case Knight, Bishop, Rook, Queen:
		return toMoves(origin, ThreatenedSquares(origin, g), g.Board)
	}
	panic(fmt.Sprintf("possible moves: unknown piece type %q", string(piece.Type)))
}

// toMoves pairs threatened squares with whatever stands on them.
func toMoves(origin Coordinate, squares []Coordinate, b Board) []Move {
	moves := make([]Move, 0, len(squares))
	for _, sq := range squares {
		captured, _ := b.Occupant(sq)
		moves = append(moves, Move{Origin: origin, Destination: sq, Captured: captured, Kind: Standard})
	}
	return moves
}

func stepSquares(t Traversal, b Board, steps ...Step) []Coordinate {
	out := make([]Coordinate, 0, len(steps))
	for _, s := range steps {
		next, ok := t.Step(s)
		if !ok {
			continue
		}
		if occupant, ok := b.Occupant(next.Position); ok && occupant.Color == t.Perspective {
			continue
		}
		out = append(out, next.Position)
	}
	return out
}

func slideSquares(t Traversal, b Board, steps []Step) []Coordinate {
	out := make([]Coordinate, 0, 14)
	for _, s := range steps {
		for sq := range t.Ray(s) {
			occupant, ok := b.Occupant(sq)
			if !ok {
				out = append(out, sq)
				continue
			}
			if occupant.Color != t.Perspective {
				out = append(out, sq)
			}
			break
		}
	}
	return out
}

func knightSquares(origin Coordinate, color Team, b Board) []Coordinate {
	out := make([]Coordinate, 0, len(knightOffsets))
	for _, off := range knightOffsets {
		sq, ok := origin.Offset(off[0], off[1])
		if !ok {
			continue
		}
		if occupant, ok := b.Occupant(sq); ok && occupant.Color == color {
			continue
		}
		out = append(out, sq)
	}
	return out
}

func pawnMoves(origin Coordinate, pawn Piece, g Game) []Move {
	moves := make([]Move, 0, 4)
	t := NewTraversal(origin, pawn.Color)

	// Check move forward 1, then forward 2 from the start row
	if one, ok := t.Front(); ok {
		if _, occupied := g.Board.Occupant(one.Position); !occupied {
			moves = append(moves, pawnMove(origin, one.Position, Piece{}, pawn.Color))
			if origin.Row() == pawn.Color.pawnRow() {
				if two, ok := one.Front(); ok {
					if _, occupied := g.Board.Occupant(two.Position); !occupied {
						moves = append(moves, pawnMove(origin, two.Position, Piece{}, pawn.Color))
					}
				}
			}
		}
	}

	for _, sq := range ThreatenedSquares(origin, g) {
		if captured, ok := g.Board.Occupant(sq); ok {
			moves = append(moves, pawnMove(origin, sq, captured, pawn.Color))
			continue
		}
		if captured, ok := enPassantVictim(origin, sq, pawn.Color, g); ok {
			moves = append(moves, Move{Origin: origin, Destination: sq, Captured: captured, Kind: EnPassant})
		}
	}
	return moves
}

func pawnMove(origin, dest Coordinate, captured Piece, color Team) Move {
	kind := Standard
	if dest.Row() == color.promotionRow() {
		kind = NeedsPromotion
	}
	return Move{Origin: origin, Destination: dest, Captured: captured, Kind: kind}
}

// enPassantVictim reports the enemy pawn that may be taken by moving the
// pawn at origin diagonally to dest: the previous move must have been that
// pawn's double advance, landing beside origin on dest's file.
func enPassantVictim(origin, dest Coordinate, color Team, g Game) (Piece, bool) {
	last, ok := g.LastMove()
	if !ok || last.Kind != Standard {
		return Piece{}, false
	}
	if last.Destination.Row() != origin.Row() || last.Destination.File() != dest.File() {
		return Piece{}, false
	}
	if last.Origin.File() != last.Destination.File() || abs(last.Destination.Row()-last.Origin.Row()) != 2 {
		return Piece{}, false
	}
	victim, ok := g.Board.Occupant(last.Destination)
	if !ok || victim.Type != Pawn || victim.Color == color {
		return Piece{}, false
	}
	return victim, true
}

// castleMoves derives castling rights from history: neither the king's nor
// the rook's home square may have been moved from or onto.
func castleMoves(origin Coordinate, king Piece, g Game) []Move {
	row := king.Color.homeRow()
	home := Coordinate{file: kingHomeFile, row: uint8(row)}
	if origin != home || g.touched(home) {
		return nil
	}
	enemy := king.Color.Opponent()
	if IsAttacked(origin, enemy, g) {
		return nil
	}

	var moves []Move
	for _, side := range castleSides {
		rookSq := Coordinate{file: uint8(side.rookFile), row: uint8(row)}
		rook, ok := g.Board.Occupant(rookSq)
		if !ok || rook != NewPiece(Rook, king.Color) || g.touched(rookSq) {
			continue
		}
		if !filesEmpty(g.Board, row, side.mustBeEmpty) || filesAttacked(g, row, side.kingPasses, enemy) {
			continue
		}
		moves = append(moves, Move{
			Origin:      origin,
			Destination: Coordinate{file: uint8(side.kingTo), row: uint8(row)},
			Kind:        Castle,
		})
	}
	return moves
}

func filesEmpty(b Board, row int, files []int) bool {
	for _, f := range files {
		if _, ok := b.Occupant(Coordinate{file: uint8(f), row: uint8(row)}); ok {
			return false
		}
	}
	return true
}

func filesAttacked(g Game, row int, files []int, by Team) bool {
	for _, f := range files {
		if IsAttacked(Coordinate{file: uint8(f), row: uint8(row)}, by, g) {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
