package ai

import (
	"math"
	"math/bits"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/dylhunn/dragontoothmg"
)

const (
	defaultDepth = 3
	MaxDepth     = 6
	searchMate   = 100000
)

var pieceValues = [...]int{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 300,
	dragontoothmg.Bishop: 320,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
}

// Dragontooth searches with alpha-beta negamax over dragontoothmg boards
// and maps the result back onto the engine's legal moves.
type Dragontooth struct {
	depth int
}

func NewDragontooth(depth int) *Dragontooth {
	if depth <= 0 {
		depth = defaultDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}
	return &Dragontooth{depth: depth}
}

func (d *Dragontooth) Name() string { return "Dragontooth" }

func (d *Dragontooth) Depth() int { return d.depth }

func (d *Dragontooth) NextMove(game model.Game) model.Move {
	board := dragontoothmg.ParseFen(game.FEN())
	best, ok := d.search(&board)
	if !ok {
		return model.Move{}
	}
	for _, m := range model.LegalMoves(game.Turn, game) {
		if m.Origin.Index() == int(best.From()) && m.Destination.Index() == int(best.To()) {
			return m
		}
	}
	return model.Move{}
}

// search returns the best root move. Under-promotions are skipped because
// pending promotions default to a queen.
func (d *Dragontooth) search(b *dragontoothmg.Board) (dragontoothmg.Move, bool) {
	var (
		best  dragontoothmg.Move
		found bool
	)
	alpha := math.MinInt32
	for _, m := range orderMoves(b, b.GenerateLegalMoves()) {
		if p := m.Promote(); p > 0 && p != dragontoothmg.Queen {
			continue
		}
		unapply := b.Apply(m)
		score := -negamax(b, d.depth-1, 1, math.MinInt32+1, -alpha)
		unapply()
		if !found || score > alpha {
			alpha = score
			best = m
			found = true
		}
	}
	return best, found
}

func negamax(b *dragontoothmg.Board, depth, ply, alpha, beta int) int {
	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if b.OurKingInCheck() {
			return -searchMate + ply
		}
		return 0
	}
	if depth == 0 {
		return evaluate(b)
	}
	for _, m := range orderMoves(b, moves) {
		unapply := b.Apply(m)
		score := -negamax(b, depth-1, ply+1, -beta, -alpha)
		unapply()
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// orderMoves puts captures first so alpha-beta cuts earlier.
func orderMoves(b *dragontoothmg.Board, moves []dragontoothmg.Move) []dragontoothmg.Move {
	ordered := make([]dragontoothmg.Move, 0, len(moves))
	for _, m := range moves {
		if dragontoothmg.IsCapture(m, b) {
			ordered = append(ordered, m)
		}
	}
	for _, m := range moves {
		if !dragontoothmg.IsCapture(m, b) {
			ordered = append(ordered, m)
		}
	}
	return ordered
}

// evaluate is material balance from the side to move's point of view.
func evaluate(b *dragontoothmg.Board) int {
	score := material(&b.White) - material(&b.Black)
	if !b.Wtomove {
		return -score
	}
	return score
}

func material(bb *dragontoothmg.Bitboards) int {
	return bits.OnesCount64(bb.Pawns)*pieceValues[dragontoothmg.Pawn] +
		bits.OnesCount64(bb.Knights)*pieceValues[dragontoothmg.Knight] +
		bits.OnesCount64(bb.Bishops)*pieceValues[dragontoothmg.Bishop] +
		bits.OnesCount64(bb.Rooks)*pieceValues[dragontoothmg.Rook] +
		bits.OnesCount64(bb.Queens)*pieceValues[dragontoothmg.Queen]
}
