// Package ai holds the bundled automated opponents.
package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var ErrUnknownOpponent = errors.New("unknown opponent")

type Options struct {
	// Seed makes Greedy's tie-breaks reproducible; zero picks the first best move.
	Seed uint64
	// Depth is the Dragontooth search depth in plies.
	Depth int
}

// Names lists the opponents New accepts.
func Names() []string {
	return []string{"greedy", "dragontooth"}
}

func New(name string, opts Options) (model.Opponent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "greedy":
		return NewGreedy(opts.Seed), nil
	case "dragontooth":
		return NewDragontooth(opts.Depth), nil
	}
	return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownOpponent, name, Names())
}
