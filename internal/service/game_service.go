package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(white, black, fen string) (string, error) {
	gameID, err := gs.gameManager.CreateGame(white, black, fen)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (*Snapshot, error) {
	c, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// LegalMovesFrom lists the legal moves from square in the game's current
// position while it is in play. A finished game has none.
func (gs *GameService) LegalMovesFrom(gameID, square string) ([]model.Move, error) {
	c, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	origin, err := model.ParseCoordinate(square)
	if err != nil {
		return nil, err
	}
	snap := c.Snapshot()
	if snap.State.Terminal() {
		return []model.Move{}, nil
	}
	if moves, ok := snap.LegalMoves[origin]; ok {
		return moves, nil
	}
	if _, pending := snap.Game.PendingPromotion(); pending {
		return []model.Move{}, nil
	}
	if p, ok := snap.Game.Board.Occupant(origin); !ok || p.Color != snap.Game.Turn {
		return []model.Move{}, nil
	}
	return model.LegalMovesFrom(origin, snap.Game), nil
}

func (gs *GameService) Select(ctx context.Context, gameID, square string) error {
	c, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	origin, err := model.ParseCoordinate(square)
	if err != nil {
		return err
	}
	return c.Select(ctx, origin)
}

func (gs *GameService) Promote(ctx context.Context, gameID, piece string) error {
	c, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	pt, err := model.ParsePromotionPiece(piece)
	if err != nil {
		return err
	}
	return c.PerformPromotionChoice(ctx, pt)
}

func (gs *GameService) Undo(ctx context.Context, gameID string) error {
	c, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return c.ReverseLastMove(ctx)
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) AttachConsumer(gameID string) (*Coordinator, func(), error) {
	return gs.gameManager.AttachConsumer(gameID)
}
