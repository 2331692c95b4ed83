package middleware

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// GameFinder resolves a game id to its current snapshot.
type GameFinder interface {
	GetGameState(gameID string) (*service.Snapshot, error)
}

// LoadGame rejects requests whose :gameId names no running game and stores
// the id in Locals("gameID") for the handlers behind it.
func LoadGame(games GameFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		if _, err := games.GetGameState(gameID); err != nil {
			if errors.Is(err, service.ErrGameNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return err
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}
