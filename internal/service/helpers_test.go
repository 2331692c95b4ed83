package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type scriptedOpponent struct {
	name string
	pick func(model.Game) model.Move
}

func (o scriptedOpponent) Name() string                     { return o.name }
func (o scriptedOpponent) NextMove(g model.Game) model.Move { return o.pick(g) }

func firstLegal(g model.Game) model.Move {
	return model.LegalMoves(g.Turn, g)[0]
}

func mustFEN(t *testing.T, fen string) model.Game {
	t.Helper()
	g, err := model.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return g
}

func startCoordinator(t *testing.T, game model.Game, roster Roster) *Coordinator {
	t.Helper()
	c := NewCoordinator(game, roster, CoordinatorOptions{Logger: discardLogger()})
	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-c.Done()
	})
	return c
}

func waitFor(t *testing.T, c *Coordinator, desc string, cond func(*Snapshot) bool) *Snapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		snap := c.Snapshot()
		if cond(snap) {
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s; last state %s", desc, snap.State)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func settled(s *Snapshot) bool {
	return s.State.Phase != PhaseComputingMoves && s.State.Phase != PhaseAIThinking
}

func mustSelect(t *testing.T, c *Coordinator, square string) {
	t.Helper()
	if err := c.Select(context.Background(), model.Square(square)); err != nil {
		t.Fatalf("Select(%s): %v", square, err)
	}
}

// play makes human moves given as origin/destination pairs.
func play(t *testing.T, c *Coordinator, squares ...string) *Snapshot {
	t.Helper()
	for i := 0; i+1 < len(squares); i += 2 {
		waitFor(t, c, "input", func(s *Snapshot) bool { return s.State.Phase == PhaseAwaitingInput })
		mustSelect(t, c, squares[i])
		mustSelect(t, c, squares[i+1])
	}
	return waitFor(t, c, "settled", settled)
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}
