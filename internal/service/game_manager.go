package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/ai"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/google/uuid"
)

type ManagerOptions struct {
	MinThinkTime time.Duration
	SearchDepth  int
	Logger       *slog.Logger
}

type managedGame struct {
	coordinator *Coordinator
	cancel      context.CancelFunc
	attached    bool
}

// GameManager owns the running coordinators, one goroutine per game.
type GameManager struct {
	games  map[string]*managedGame
	opts   ManagerOptions
	logger *slog.Logger
	ctx    context.Context
	wg     sync.WaitGroup
	mu     sync.RWMutex
}

func NewGameManager(ctx context.Context, opts ManagerOptions) *GameManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GameManager{
		games:  make(map[string]*managedGame),
		opts:   opts,
		logger: logger,
		ctx:    ctx,
	}
}

// CreateGame starts a game between white and black, each "human" or an
// opponent name. An empty fen means the standard start position.
func (gm *GameManager) CreateGame(white, black, fen string) (string, error) {
	game := model.NewGame()
	if fen != "" {
		var err error
		if game, err = model.ParseFEN(fen); err != nil {
			return "", err
		}
	}
	whiteOpp, err := gm.opponent(white)
	if err != nil {
		return "", fmt.Errorf("white: %w", err)
	}
	blackOpp, err := gm.opponent(black)
	if err != nil {
		return "", fmt.Errorf("black: %w", err)
	}

	gameID := uuid.New().String()
	logger := gm.logger.With("game", gameID)
	c := NewCoordinator(game, NewRoster(whiteOpp, blackOpp), CoordinatorOptions{
		MinThinkTime: gm.opts.MinThinkTime,
		Logger:       logger,
	})
	ctx, cancel := context.WithCancel(gm.ctx)

	gm.mu.Lock()
	gm.games[gameID] = &managedGame{coordinator: c, cancel: cancel}
	gm.mu.Unlock()

	gm.wg.Add(1)
	go func() {
		defer gm.wg.Done()
		defer cancel()
		if err := c.Run(ctx); err != nil {
			logger.Error("game retired", "err", err)
		}
		gm.remove(gameID)
	}()

	logger.Info("game created", "white", c.Snapshot().White.Name, "black", c.Snapshot().Black.Name)
	return gameID, nil
}

func (gm *GameManager) opponent(name string) (model.Opponent, error) {
	if name == "" || strings.EqualFold(name, Human) {
		return nil, nil
	}
	return ai.New(name, ai.Options{Depth: gm.opts.SearchDepth})
}

func (gm *GameManager) GetGame(gameID string) (*Coordinator, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game.coordinator, nil
}

// DeleteGame stops the game's coordinator and forgets it.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return ErrGameNotFound
	}
	game.cancel()
	<-game.coordinator.Done()
	return nil
}

// AttachConsumer claims the single event consumer slot of a game. The
// returned func releases it.
func (gm *GameManager) AttachConsumer(gameID string) (*Coordinator, func(), error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, nil, ErrGameNotFound
	}
	if game.attached {
		return nil, nil, ErrConsumerAttached
	}
	game.attached = true

	release := func() {
		gm.mu.Lock()
		defer gm.mu.Unlock()
		game.attached = false
	}
	return game.coordinator, release, nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// Shutdown cancels every game and waits for their coordinators to stop.
func (gm *GameManager) Shutdown() {
	gm.mu.Lock()
	for id, game := range gm.games {
		game.cancel()
		delete(gm.games, id)
	}
	gm.mu.Unlock()
	gm.wg.Wait()
}

func (gm *GameManager) remove(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if game, ok := gm.games[gameID]; ok && isDone(game.coordinator) {
		delete(gm.games, gameID)
	}
}

func isDone(c *Coordinator) bool {
	select {
	case <-c.Done():
		return true
	default:
		return false
	}
}

// IsClientError reports whether err was caused by bad input rather than by
// the server.
func IsClientError(err error) bool {
	return errors.Is(err, ai.ErrUnknownOpponent) ||
		errors.Is(err, model.ErrInvalidFEN) ||
		errors.Is(err, model.ErrInvalidPosition) ||
		errors.Is(err, model.ErrInvalidCoordinate) ||
		errors.Is(err, model.ErrInvalidPromotion)
}
