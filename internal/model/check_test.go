package model

import (
	"math/rand/v2"
	"testing"
)

func TestFoolsMate(t *testing.T) {
	g := play(t, NewGame(), "f2f3", "e7e5", "g2g4", "d8h4")
	if got := Classify(White, g); got != StatusCheckmate {
		t.Fatalf("status = %s, want checkmate", got)
	}
	if moves := LegalMoves(White, g); len(moves) != 0 {
		t.Fatalf("checkmated side has moves: %v", moves)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"start", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", StatusNone},
		{"queen stalemate", "k7/8/1QK5/8/8/8/8/8 b - - 0 1", StatusStalemate},
		{"corner stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", StatusStalemate},
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", StatusCheckmate},
		{"king takes checker", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", StatusCheck},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", StatusCheckmate},
		{"defended rook mate", "3rk3/8/8/8/8/8/3r4/r3K3 w - - 0 1", StatusCheckmate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustFEN(t, tt.fen)
			if got := Classify(g.Turn, g); got != tt.want {
				t.Fatalf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStalemateHasNoMovesAndNoCheck(t *testing.T) {
	g := mustFEN(t, "k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	if InCheck(Black, g) {
		t.Fatalf("black king should not be attacked")
	}
	if moves := LegalMoves(Black, g); len(moves) != 0 {
		t.Fatalf("expected no legal moves, got %v", moves)
	}
}

func TestPinnedPieceMovesAreIllegal(t *testing.T) {
	g := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	if possible := PossibleMoves(Square("e2"), g); len(possible) == 0 {
		t.Fatalf("bishop should have pseudo moves")
	}
	if legal := LegalMovesFrom(Square("e2"), g); len(legal) != 0 {
		t.Fatalf("pinned bishop should have no legal moves, got %v", legal)
	}
}

func TestKingCannotCaptureDefendedPiece(t *testing.T) {
	g := mustFEN(t, "4k3/8/8/8/8/8/3q4/3rK3 w - - 0 1")
	if hasMove(LegalMovesFrom(Square("e1"), g), "e1", "d1", Standard) {
		t.Fatalf("king must not capture a defended rook")
	}
}

// TestRandomGamesKeepInvariants walks seeded random games and checks that
// every legal move keeps the mover's king safe, that classification matches
// its definition, and that reversal is exact at every ply.
func TestRandomGamesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for game := 0; game < 6; game++ {
		g := NewGame()
		for ply := 0; ply < 80; ply++ {
			legal := LegalMoves(g.Turn, g)
			attacked := InCheck(g.Turn, g)
			status := Classify(g.Turn, g)

			switch {
			case status == StatusCheckmate && !(attacked && len(legal) == 0),
				status == StatusStalemate && !(!attacked && len(legal) == 0),
				status == StatusCheck && !(attacked && len(legal) > 0),
				status == StatusNone && !(!attacked && len(legal) > 0):
				t.Fatalf("status %s inconsistent: attacked=%v legal=%d\n%s", status, attacked, len(legal), g.Board)
			}
			if len(legal) == 0 {
				break
			}

			for _, m := range legal {
				if InCheck(g.Turn, g.Performing(m)) {
					t.Fatalf("legal move %s leaves the king attacked", m)
				}
			}

			m := legal[rng.IntN(len(legal))]
			next := g.Performing(m)
			if !next.ReversingLastMove().Equal(g) {
				t.Fatalf("reversal of %s not exact", m)
			}
			if m.Kind == NeedsPromotion {
				var err error
				if next, err = next.Promoting(PromotionChoices[rng.IntN(len(PromotionChoices))]); err != nil {
					t.Fatalf("promote: %v", err)
				}
			}
			g = next
		}
	}
}

func TestKingSquarePanicsOnBrokenInvariant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a side without a king")
		}
	}()
	var b Board
	b = b.Placing(NewPiece(King, Black), Square("e8"))
	KingSquare(White, Game{Board: b, Turn: White})
}
