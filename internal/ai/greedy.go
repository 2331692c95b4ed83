package ai

import (
	"math/rand/v2"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

const (
	mateScore      = 1000
	promotionBonus = 8
)

// Greedy plays the move with the best immediate material outcome.
type Greedy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGreedy(seed uint64) *Greedy {
	g := &Greedy{}
	if seed != 0 {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return g
}

func (g *Greedy) Name() string { return "Greedy" }

func (g *Greedy) NextMove(game model.Game) model.Move {
	legal := model.LegalMoves(game.Turn, game)
	if len(legal) == 0 {
		return model.Move{}
	}

	var best []model.Move
	bestScore := -1
	for _, m := range legal {
		score := scoreMove(game, m)
		switch {
		case score > bestScore:
			bestScore = score
			best = append(best[:0], m)
		case score == bestScore:
			best = append(best, m)
		}
	}
	return g.pick(best)
}

func (g *Greedy) pick(candidates []model.Move) model.Move {
	if g.rng == nil {
		return candidates[0]
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return candidates[g.rng.IntN(len(candidates))]
}

func scoreMove(game model.Game, m model.Move) int {
	score := m.Captured.Value()
	after := game.Performing(m)
	if m.Kind == model.NeedsPromotion {
		score += promotionBonus
		after, _ = after.Promoting(model.Queen)
	}
	if model.Classify(after.Turn, after) == model.StatusCheckmate {
		score += mateScore
	}
	return score
}
