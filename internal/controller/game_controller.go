package controller

import (
	"errors"
	"log/slog"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
	logger      *slog.Logger
}

func NewGameController(gameService *service.GameService, logger *slog.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

type createGameRequest struct {
	White string `json:"white"`
	Black string `json:"black"`
	FEN   string `json:"fen"`
}

type selectRequest struct {
	Square string `json:"square"`
}

type promotionRequest struct {
	Piece string `json:"piece"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	req := createGameRequest{White: service.Human, Black: service.Human}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.White, req.Black, req.FEN)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	snap, err := gc.gameService.GetGameState(gameID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(snap)
}

func (gc *GameController) GetMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMovesFrom(gameID(c), c.Params("square"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square": c.Params("square"),
		"moves":  moves,
	})
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := gc.gameService.Select(c.UserContext(), gameID(c), req.Square); err != nil {
		return gc.fail(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var req promotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := gc.gameService.Promote(c.UserContext(), gameID(c), req.Piece); err != nil {
		return gc.fail(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	if err := gc.gameService.Undo(c.UserContext(), gameID(c)); err != nil {
		return gc.fail(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(gameID(c)); err != nil {
		return gc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func gameID(c *fiber.Ctx) string {
	if id, ok := c.Locals("gameID").(string); ok {
		return id
	}
	return c.Params("gameId")
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		gc.logger.Error("request failed", "path", c.Path(), "err", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrPromotionPending),
		errors.Is(err, model.ErrNoPendingPromotion),
		errors.Is(err, service.ErrConsumerAttached):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrCoordinatorStopped):
		return fiber.StatusGone
	case service.IsClientError(err):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
