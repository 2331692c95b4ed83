package model

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// perft counts leaf positions, expanding each pending promotion into the
// four possible pieces.
func perft(g Game, depth int) int {
	if depth == 0 {
		return 1
	}
	nodes := 0
	for _, m := range LegalMoves(g.Turn, g) {
		next := g.Performing(m)
		if m.Kind != NeedsPromotion {
			nodes += perft(next, depth-1)
			continue
		}
		for _, pt := range PromotionChoices {
			promoted, _ := next.Promoting(pt)
			nodes += perft(promoted, depth-1)
		}
	}
	return nodes
}

func referencePerft(b *dragontoothmg.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	nodes := 0
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestPerftAgainstReference(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int
	}{
		{"start depth 1", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 1, 20},
		{"start depth 2", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 2, 400},
		{"start depth 3", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 3, 8902},
		{"kiwipete depth 1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"kiwipete depth 2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"position 3 depth 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"position 4 depth 2", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if testing.Short() && tt.want > 3000 {
				t.Skip("skipping deep perft in short mode")
			}
			ref := dragontoothmg.ParseFen(tt.fen)
			if got := referencePerft(&ref, tt.depth); got != tt.want {
				t.Fatalf("reference perft = %d, want %d", got, tt.want)
			}
			if got := perft(mustFEN(t, tt.fen), tt.depth); got != tt.want {
				t.Fatalf("perft = %d, want %d", got, tt.want)
			}
		})
	}
}
