package model

import (
	"errors"
	"testing"
)

var reversalPositions = []struct {
	name string
	fen  string
	play []string
}{
	{name: "start", fen: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
	{name: "kiwipete", fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
	{name: "position 4", fen: "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"},
	{name: "promotion", fen: "1r5k/P7/8/8/8/8/8/K7 w - - 0 1"},
	{name: "en passant", fen: "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"},
	{name: "black to move", fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", play: []string{"a2a4"}},
}

func TestReversalIsExact(t *testing.T) {
	for _, tt := range reversalPositions {
		t.Run(tt.name, func(t *testing.T) {
			g := play(t, mustFEN(t, tt.fen), tt.play...)
			kinds := map[MoveKind]int{}
			for _, m := range LegalMoves(g.Turn, g) {
				kinds[m.Kind]++
				after := g.Performing(m)
				if back := after.ReversingLastMove(); !back.Equal(g) {
					t.Fatalf("reversing %s did not restore the game:\nbefore\n%s\nafter reversal\n%s", m, g.Board, back.Board)
				}
				if m.Kind != NeedsPromotion {
					continue
				}
				for _, pt := range PromotionChoices {
					promoted, err := after.Promoting(pt)
					if err != nil {
						t.Fatalf("promote %s to %s: %v", m, pt, err)
					}
					if back := promoted.ReversingLastMove(); !back.Equal(g) {
						t.Fatalf("reversing promotion %s to %s did not restore the game", m, pt)
					}
				}
			}
			t.Logf("move kinds checked: %v", kinds)
		})
	}
}

func TestReversalCoversEverySpecialKind(t *testing.T) {
	seen := map[MoveKind]bool{}
	for _, tt := range reversalPositions {
		g := play(t, mustFEN(t, tt.fen), tt.play...)
		for _, m := range LegalMoves(g.Turn, g) {
			seen[m.Kind] = true
		}
	}
	for _, kind := range []MoveKind{Standard, Castle, EnPassant, NeedsPromotion} {
		if !seen[kind] {
			t.Fatalf("no %s move among the reversal positions", kind)
		}
	}
}

func TestPerformingDoesNotMutateReceiver(t *testing.T) {
	g := play(t, NewGame(), "e2e4", "e7e5")
	snapshot := g
	history := append([]Move(nil), g.History...)
	_ = g.Performing(findLegal(t, g, "g1f3"))
	_ = g.ReversingLastMove()
	if !g.Equal(snapshot) || len(g.History) != len(history) {
		t.Fatalf("game changed by Performing/ReversingLastMove")
	}
	for i := range history {
		if g.History[i] != history[i] {
			t.Fatalf("history entry %d changed", i)
		}
	}
}

func TestReversedBranchesDoNotShareHistory(t *testing.T) {
	g := play(t, NewGame(), "e2e4", "e7e5", "g1f3")
	back := g.ReversingLastMove()
	a := back.Performing(findLegal(t, back, "b1c3"))
	b := back.Performing(findLegal(t, back, "f1c4"))
	if a.History[2] == b.History[2] {
		t.Fatalf("branches share history storage")
	}
	if g.History[2].Origin != Square("g1") {
		t.Fatalf("original game history was overwritten: %v", g.History[2])
	}
}

func TestPromotionSuspendsTurn(t *testing.T) {
	g := mustFEN(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1")
	m := findLegal(t, g, "a7a8")
	if m.Kind != NeedsPromotion {
		t.Fatalf("a7a8 kind = %s, want needsPromotion", m.Kind)
	}

	pending := g.Performing(m)
	if pending.Turn != White {
		t.Fatalf("turn should stay with White while promotion is pending")
	}
	if got, ok := pending.PendingPromotion(); !ok || got != m {
		t.Fatalf("PendingPromotion = %v, %v", got, ok)
	}

	promoted, err := pending.Promoting(Knight)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.Turn != Black {
		t.Fatalf("turn should pass to Black after promotion")
	}
	if p, _ := promoted.Board.Occupant(Square("a8")); p != NewPiece(Knight, White) {
		t.Fatalf("a8 holds %v, want white knight", p)
	}
	last, _ := promoted.LastMove()
	if last.Kind != Promotion || last.Promotion != Knight || len(promoted.History) != 1 {
		t.Fatalf("history should hold a single knight promotion, got %v", promoted.History)
	}

	back := promoted.ReversingLastMove()
	if p, _ := back.Board.Occupant(Square("a7")); p != NewPiece(Pawn, White) {
		t.Fatalf("reversal should restore the pawn, found %v", p)
	}
}

func TestPromotingErrors(t *testing.T) {
	if _, err := NewGame().Promoting(Queen); !errors.Is(err, ErrNoPendingPromotion) {
		t.Fatalf("err = %v, want ErrNoPendingPromotion", err)
	}
	g := mustFEN(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1")
	pending := g.Performing(findLegal(t, g, "a7a8"))
	for _, pt := range []PieceType{King, Pawn} {
		if _, err := pending.Promoting(pt); !errors.Is(err, ErrInvalidPromotion) {
			t.Fatalf("promote to %s: err = %v, want ErrInvalidPromotion", pt, err)
		}
	}
}

func TestReversingEmptyHistoryIsNoop(t *testing.T) {
	g := NewGame()
	if !g.ReversingLastMove().Equal(g) {
		t.Fatalf("reversing with empty history changed the game")
	}
}

func TestNotation(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{"pawn push", "", []string{"e2e4"}, "e4"},
		{"knight", "", []string{"g1f3"}, "Nf3"},
		{"pawn capture", "", []string{"e2e4", "d7d5", "e4d5"}, "exd5"},
		{"mate", "", []string{"f2f3", "e7e5", "g2g4", "d8h4"}, "Qh4#"},
		{"castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1g1"}, "O-O"},
		{"disambiguated rook", "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", []string{"a1d1"}, "Rad1"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", []string{"a1a8"}, "Ra8+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			if tt.fen != "" {
				g = mustFEN(t, tt.fen)
			}
			g = play(t, g, tt.moves[:len(tt.moves)-1]...)
			m := findLegal(t, g, tt.moves[len(tt.moves)-1])
			if got := g.Notation(m); got != tt.want {
				t.Fatalf("notation = %q, want %q", got, tt.want)
			}
			after := g.Performing(m)
			split := g.NotationAmong(m, LegalMoves(g.Turn, g)) + StatusSuffix(Classify(after.Turn, after))
			if split != tt.want {
				t.Fatalf("NotationAmong + StatusSuffix = %q, want %q", split, tt.want)
			}
		})
	}

	g := mustFEN(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1")
	promo := findLegal(t, g, "a7a8").promoted(Queen)
	if got := g.Notation(promo); got != "a8=Q+" {
		t.Fatalf("promotion notation = %q, want a8=Q+", got)
	}
}
