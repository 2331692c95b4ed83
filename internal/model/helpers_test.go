package model

import (
	"strings"
	"testing"
)

// play performs moves written as origin+destination ("e2e4"), with an
// optional promotion letter ("a7a8q"). Each must be legal.
func play(t *testing.T, g Game, moves ...string) Game {
	t.Helper()
	for _, text := range moves {
		m := findLegal(t, g, text)
		g = g.Performing(m)
		if m.Kind == NeedsPromotion {
			pt := Queen
			if len(text) == 5 {
				pt = promotionLetters[text[4]]
			}
			var err error
			if g, err = g.Promoting(pt); err != nil {
				t.Fatalf("promote %s: %v", text, err)
			}
		}
	}
	return g
}

var promotionLetters = map[byte]PieceType{'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight}

func findLegal(t *testing.T, g Game, text string) Move {
	t.Helper()
	origin, dest := Square(text[0:2]), Square(text[2:4])
	for _, m := range LegalMoves(g.Turn, g) {
		if m.Origin == origin && m.Destination == dest {
			return m
		}
	}
	t.Fatalf("%s is not legal for %s in\n%s", text, g.Turn, g.Board)
	return Move{}
}

func mustFEN(t *testing.T, fen string) Game {
	t.Helper()
	g, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return g
}

func destinations(moves []Move) string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.Destination.String())
	}
	return strings.Join(out, " ")
}

func hasMove(moves []Move, origin, dest string, kind MoveKind) bool {
	for _, m := range moves {
		if m.Origin == Square(origin) && m.Destination == Square(dest) && m.Kind == kind {
			return true
		}
	}
	return false
}
