package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

type CoordinatorOptions struct {
	// MinThinkTime is the shortest time an AI move takes to arrive.
	MinThinkTime time.Duration
	Logger       *slog.Logger
}

type command struct {
	apply func(ctx context.Context) error
	reply chan error
}

// workResult comes back from a worker goroutine. It carries either a legal
// move index or an AI move, stamped with the version it was computed for.
type workResult struct {
	version uint64
	index   MoveIndex
	status  model.Status
	aiMove  *model.Move
}

// Coordinator drives the turn cycle of one game. Run owns the game and all
// turn-flow state; other goroutines talk to it through commands and read it
// through Snapshot.
type Coordinator struct {
	roster    Roster
	thinkTime time.Duration
	logger    *slog.Logger
	events    *EventQueue
	cmds      chan command
	results   chan workResult
	done      chan struct{}
	snapshot  atomic.Pointer[Snapshot]

	// owned by Run
	game      model.Game
	state     State
	status    model.Status
	version   uint64
	index     MoveIndex
	selection *Selection
	notation  []string
	// unmarked is set while the last notation entry waits for its
	// check suffix from the next move computation.
	unmarked bool
	// floor is the history length of the imported position; reversal
	// never goes below it.
	floor  int
	cancel context.CancelFunc
}

func NewCoordinator(game model.Game, roster Roster, opts CoordinatorOptions) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		roster:    roster,
		thinkTime: opts.MinThinkTime,
		logger:    logger,
		events:    NewEventQueue(),
		cmds:      make(chan command),
		results:   make(chan workResult),
		done:      make(chan struct{}),
		game:      game,
		state:     computingMoves(),
		notation:  replayNotation(game),
		floor:     len(game.History),
	}
	c.publish()
	return c
}

// Events is the queue presentation events are delivered through.
func (c *Coordinator) Events() *EventQueue { return c.events }

// Snapshot returns the last published view. It never blocks.
func (c *Coordinator) Snapshot() *Snapshot { return c.snapshot.Load() }

// Done is closed when Run returns.
func (c *Coordinator) Done() <-chan struct{} { return c.done }

// Run executes the turn cycle until ctx is cancelled or an opponent breaks
// its contract. It must be called exactly once.
func (c *Coordinator) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.cancelWork()

	if err := c.startTurn(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-c.cmds:
			cmd.reply <- cmd.apply(ctx)
		case res := <-c.results:
			if res.version != c.version {
				c.logger.Debug("discarding stale result", "version", res.version, "current", c.version)
				continue
			}
			if err := c.handleResult(ctx, res); err != nil {
				return err
			}
		}
	}
}

// Select applies the human selection protocol to square.
func (c *Coordinator) Select(ctx context.Context, square model.Coordinate) error {
	return c.do(ctx, func(ctx context.Context) error { return c.selectSquare(ctx, square) })
}

// PerformPromotionChoice resolves a pending human promotion.
func (c *Coordinator) PerformPromotionChoice(ctx context.Context, pt model.PieceType) error {
	return c.do(ctx, func(ctx context.Context) error { return c.promote(ctx, pt) })
}

// ReverseLastMove takes back plies until a human side is to move.
func (c *Coordinator) ReverseLastMove(ctx context.Context) error {
	return c.do(ctx, c.reverse)
}

func (c *Coordinator) do(ctx context.Context, apply func(context.Context) error) error {
	cmd := command{apply: apply, reply: make(chan error, 1)}
	select {
	case c.cmds <- cmd:
	case <-c.done:
		return ErrCoordinatorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-c.done:
		return ErrCoordinatorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) selectSquare(ctx context.Context, square model.Coordinate) error {
	if _, pending := c.game.PendingPromotion(); pending {
		c.logger.Error("selection refused", "square", square, "err", ErrPromotionPending)
		return ErrPromotionPending
	}
	if c.state.Phase != PhaseAwaitingInput || !c.roster.IsHuman(c.game.Turn) {
		return nil
	}

	if c.selection != nil {
		if m, ok := c.index.Find(c.selection.Origin, square); ok {
			c.selection = nil
			return c.perform(ctx, m)
		}
	}
	if moves := c.index[square]; len(moves) > 0 {
		c.selection = &Selection{Origin: square, Moves: moves}
	} else {
		c.selection = nil
	}
	c.publish()
	return nil
}

func (c *Coordinator) promote(ctx context.Context, pt model.PieceType) error {
	if _, pending := c.game.PendingPromotion(); !pending {
		return model.ErrNoPendingPromotion
	}
	next, err := c.game.Promoting(pt)
	if err != nil {
		return err
	}
	promoted, _ := next.LastMove()
	c.record(c.game.ReversingLastMove(), promoted)
	c.game = next
	return c.startTurn(ctx)
}

func (c *Coordinator) reverse(ctx context.Context) error {
	if len(c.game.History) <= c.floor {
		return nil
	}
	g := c.game.ReversingLastMove()
	if len(g.History) > c.floor && !c.roster.IsHuman(g.Turn) {
		g = g.ReversingLastMove()
	}
	c.logger.Info("moves reversed", "plies", len(c.game.History)-len(g.History))

	c.game = g
	c.selection = nil
	c.unmarked = false
	if len(c.notation) > len(g.History) {
		c.notation = slices.Clip(c.notation[:len(g.History)])
	}
	return c.startTurn(ctx)
}

// perform applies a legal move for the side to move. A human move that
// reaches the last rank suspends the turn; an AI promotes to a queen.
func (c *Coordinator) perform(ctx context.Context, m model.Move) error {
	before := c.game
	c.game = c.game.Performing(m)
	if m.Kind == model.NeedsPromotion {
		if c.roster.IsHuman(before.Turn) {
			// the index stays: it names the promotion's rivals for notation
			c.bumpVersion()
			c.state = awaitingInput()
			c.events.Push(PromotionRequired{Move: m})
			c.publish()
			return nil
		}
		c.game, _ = c.game.Promoting(model.Queen)
		m, _ = c.game.LastMove()
	}
	c.record(before, m)
	return c.startTurn(ctx)
}

// record appends m's notation without the check suffix, which handleResult
// adds once the next position has been classified. before is the game m
// was played in and c.index its legal moves.
func (c *Coordinator) record(before model.Game, m model.Move) {
	c.notation = append(c.notation, before.NotationAmong(m, c.index.Into(m.Destination)))
	c.unmarked = true
}

// mark appends the suffix for status to the last notation entry. The entry
// is replaced, not edited, since published snapshots share the slice.
func (c *Coordinator) mark(status model.Status) {
	if !c.unmarked {
		return
	}
	c.unmarked = false
	n := len(c.notation)
	if suffix := model.StatusSuffix(status); suffix != "" && n > 0 {
		c.notation = append(slices.Clip(c.notation[:n-1]), c.notation[n-1]+suffix)
	}
}

func (c *Coordinator) bumpVersion() {
	c.version++
	c.cancelWork()
}

func (c *Coordinator) cancelWork() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// startTurn launches the legal move computation for the side to move.
func (c *Coordinator) startTurn(ctx context.Context) error {
	if pending, ok := c.game.PendingPromotion(); ok {
		return fmt.Errorf("%w: %s", ErrPromotionPending, pending)
	}
	c.bumpVersion()
	c.state = computingMoves()
	c.index = nil
	c.status = ""
	c.publish()

	workCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.computeMoves(workCtx, c.version, c.game)
	return nil
}

func (c *Coordinator) computeMoves(ctx context.Context, version uint64, g model.Game) {
	legal := model.LegalMoves(g.Turn, g)
	res := workResult{
		version: version,
		index:   NewMoveIndex(legal),
		status:  model.ClassifyWithMoves(g.Turn, g, legal),
	}
	c.deliver(ctx, res)
}

func (c *Coordinator) requestMove(ctx context.Context, version uint64, g model.Game, opp model.Opponent) {
	timer := time.NewTimer(c.thinkTime)
	defer timer.Stop()

	m := opp.NextMove(g)
	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}
	c.deliver(ctx, workResult{version: version, aiMove: &m})
}

func (c *Coordinator) deliver(ctx context.Context, res workResult) {
	select {
	case c.results <- res:
	case <-ctx.Done():
	}
}

func (c *Coordinator) handleResult(ctx context.Context, res workResult) error {
	if res.aiMove != nil {
		return c.applyOpponentMove(ctx, *res.aiMove)
	}

	c.status = res.status
	c.mark(res.status)
	c.logger.Debug("moves computed", "count", res.index.Count(), "status", res.status)
	turn := c.game.Turn
	switch res.status {
	case model.StatusCheckmate:
		c.state = gameOver(turn.Opponent())
		c.events.Push(Checkmate{Winner: turn.Opponent()})
		c.logger.Info("checkmate", "winner", turn.Opponent(), "plies", len(c.game.History))
		c.publish()
		return nil
	case model.StatusStalemate:
		c.state = stalemate()
		c.events.Push(Stalemate{})
		c.logger.Info("stalemate", "plies", len(c.game.History))
		c.publish()
		return nil
	}

	c.index = res.index
	opp, ok := c.roster.Opponent(turn)
	if !ok {
		c.state = awaitingInput()
		c.publish()
		return nil
	}
	c.state = aiThinking(opp.Name())
	c.publish()

	c.cancelWork()
	workCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.requestMove(workCtx, c.version, c.game, opp)
	return nil
}

func (c *Coordinator) applyOpponentMove(ctx context.Context, m model.Move) error {
	name := c.state.Opponent
	if !c.index.Contains(m) {
		c.logger.Error("opponent broke its contract", "opponent", name, "move", m)
		return fmt.Errorf("%w: %s played %s", ErrIllegalOpponentMove, name, m)
	}
	c.logger.Debug("opponent moved", "opponent", name, "move", m)
	return c.perform(ctx, m)
}

func (c *Coordinator) publish() {
	snap := &Snapshot{
		Version:   c.version,
		State:     c.state,
		Turn:      c.game.Turn,
		Status:    c.status,
		FEN:       c.game.FEN(),
		Pieces:    piecesOf(c.game.Board),
		History:   c.game.History,
		Notation:  c.notation,
		Selection: c.selection,
		White:     c.roster.Seat(model.White),
		Black:     c.roster.Seat(model.Black),
		Game:      c.game,
	}
	if pending, ok := c.game.PendingPromotion(); ok {
		snap.PendingPromotion = &pending
	} else if c.index != nil {
		snap.LegalMoves = c.index
		snap.Movable = c.index.Origins()
	}
	c.snapshot.Store(snap)
	c.events.Push(StateChanged{Snapshot: snap})
}

// replayNotation renders the notation of a game's existing history.
func replayNotation(g model.Game) []string {
	var replay []model.Game
	for cur := g; len(cur.History) > 0; cur = cur.ReversingLastMove() {
		replay = append(replay, cur)
	}
	notation := make([]string, 0, len(g.History))
	for i := len(replay) - 1; i >= 0; i-- {
		last, _ := replay[i].LastMove()
		if last.Kind == model.NeedsPromotion {
			break
		}
		notation = append(notation, replay[i].ReversingLastMove().Notation(last))
	}
	return notation
}
