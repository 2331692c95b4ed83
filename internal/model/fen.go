package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// FEN describes g in Forsyth-Edwards Notation. Castling availability and
// the en passant target are derived from history.
func (g Game) FEN() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := g.Board.squares[row][file]
			if p.IsZero() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.fenLetter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}

	turn := "w"
	if g.Turn == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		sb.String(), turn, g.castlingField(), g.enPassantField(), g.halfmoveClock(), g.fullmoveNumber())
}

func (g Game) castlingField() string {
	var sb strings.Builder
	for _, team := range []Team{White, Black} {
		row := uint8(team.homeRow())
		home := Coordinate{file: kingHomeFile, row: row}
		if king, ok := g.Board.Occupant(home); !ok || king != NewPiece(King, team) || g.touched(home) {
			continue
		}
		for _, side := range castleSides {
			rookSq := Coordinate{file: uint8(side.rookFile), row: row}
			if rook, ok := g.Board.Occupant(rookSq); !ok || rook != NewPiece(Rook, team) || g.touched(rookSq) {
				continue
			}
			letter := "K"
			if side.rookFile == 0 {
				letter = "Q"
			}
			if team == Black {
				letter = strings.ToLower(letter)
			}
			sb.WriteString(letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func (g Game) enPassantField() string {
	last, ok := g.LastMove()
	if !ok || last.Kind != Standard || last.Origin.File() != last.Destination.File() {
		return "-"
	}
	if abs(last.Destination.Row()-last.Origin.Row()) != 2 {
		return "-"
	}
	if p, _ := g.Board.Occupant(last.Destination); p.Type != Pawn {
		return "-"
	}
	return Coordinate{file: last.Origin.file, row: (last.Origin.row + last.Destination.row) / 2}.String()
}

// halfmoveClock counts plies since the last pawn move or capture, carrying
// on from the imported counter when history holds neither.
func (g Game) halfmoveClock() int {
	count := 0
	for cur := g; len(cur.History) > 0; cur = cur.ReversingLastMove() {
		last, _ := cur.LastMove()
		if p, _ := cur.Board.Occupant(last.Destination); p.Type == Pawn || last.Kind == Promotion || !last.Captured.IsZero() {
			return count
		}
		count++
	}
	return count + g.origin.halfmove
}

// fullmoveNumber starts at the imported counter and grows after each
// black move.
func (g Game) fullmoveNumber() int {
	base := max(g.origin.fullmove, 1)
	plies := len(g.History)
	if g.origin.blackFirst {
		plies++
	}
	return base + plies/2
}

// ParseFEN builds a game from a FEN record. The castling field is not
// consulted: castling follows from placement and the (empty) history. An
// en passant target becomes the double advance that produced it.
func ParseFEN(fen string) (g Game, err error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Game{}, fmt.Errorf("%w: want 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if err := validatePlacement(fields[0]); err != nil {
		return Game{}, err
	}
	for _, king := range []string{"K", "k"} {
		if n := strings.Count(fields[0], king); n != 1 {
			return Game{}, fmt.Errorf("%w: %d kings of %q", ErrInvalidPosition, n, king)
		}
	}
	if fields[1] != "w" && fields[1] != "b" {
		return Game{}, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()

	parsed := dragontoothmg.ParseFen(fen)
	g.Board = boardFromBitboards(&parsed.White, White).merge(boardFromBitboards(&parsed.Black, Black))
	g.Turn = Black
	if parsed.Wtomove {
		g.Turn = White
	}

	if fields[3] != "-" {
		target, err := ParseCoordinate(fields[3])
		if err != nil {
			return Game{}, fmt.Errorf("%w: en passant target: %v", ErrInvalidFEN, err)
		}
		mover := g.Turn.Opponent()
		origin, ok1 := target.Offset(0, -mover.Direction())
		dest, ok2 := target.Offset(0, mover.Direction())
		if p, _ := g.Board.Occupant(dest); !ok1 || !ok2 || p != NewPiece(Pawn, mover) {
			return Game{}, fmt.Errorf("%w: no %s pawn behind en passant target %s", ErrInvalidFEN, mover, target)
		}
		g.History = []Move{{Origin: origin, Destination: dest, Kind: Standard}}
	}

	halfmove, err1 := strconv.Atoi(fields[4])
	fullmove, err2 := strconv.Atoi(fields[5])
	if err1 != nil || err2 != nil || halfmove < 0 || fullmove < 1 {
		return Game{}, fmt.Errorf("%w: move counters %q %q", ErrInvalidFEN, fields[4], fields[5])
	}
	g.origin = clock{halfmove: halfmove, fullmove: fullmove, blackFirst: g.Turn == Black}
	if len(g.History) > 0 {
		// counters describe the position after the synthetic double advance
		g.origin.blackFirst = g.Turn == White
		if g.origin.blackFirst {
			g.origin.fullmove--
		}
	}

	if derived := g.castlingField(); castlingRights(derived) != castlingRights(fields[2]) {
		return Game{}, fmt.Errorf("%w: castling field %q, position allows %q", ErrInvalidFEN, fields[2], derived)
	}
	return g, nil
}

// castlingRights normalises a FEN castling field for comparison.
func castlingRights(field string) string {
	if field == "-" {
		return ""
	}
	rights := []byte(field)
	slices.Sort(rights)
	return string(rights)
}

func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, rank := range ranks {
		width := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				width += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				width++
			default:
				return fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidFEN, ch, 8-i)
			}
		}
		if width != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, 8-i, width)
		}
	}
	return nil
}

func boardFromBitboards(bb *dragontoothmg.Bitboards, color Team) Board {
	layers := []struct {
		bits uint64
		pt   PieceType
	}{
		{bb.Pawns, Pawn},
		{bb.Knights, Knight},
		{bb.Bishops, Bishop},
		{bb.Rooks, Rook},
		{bb.Queens, Queen},
		{bb.Kings, King},
	}
	var b Board
	for _, c := range AllCoordinates() {
		bit := uint64(1) << uint(c.Index())
		for _, layer := range layers {
			if layer.bits&bit != 0 {
				b = b.Placing(NewPiece(layer.pt, color), c)
			}
		}
	}
	return b
}

// merge overlays the occupied squares of o onto b.
func (b Board) merge(o Board) Board {
	for _, c := range AllCoordinates() {
		if p, ok := o.Occupant(c); ok {
			b = b.Placing(p, c)
		}
	}
	return b
}
