package controller

import (
	"log/slog"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api and the event socket
// under /ws.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, logger *slog.Logger, origins []string) {
	gameController := NewGameController(gameService, logger)
	wsController := NewWebSocketController(gameService, logger)
	load := middleware.LoadGame(gameService)

	app.Get("/ws/game/:gameId",
		load,
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         origins,
		}),
	)

	api := app.Group("/api")
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", load, gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", load, gameController.GetMoves)
	gameRoutes.Post("/:gameId/select", load, gameController.Select)
	gameRoutes.Post("/:gameId/promotion", load, gameController.Promote)
	gameRoutes.Post("/:gameId/undo", load, gameController.Undo)
	gameRoutes.Delete("/:gameId", load, gameController.DeleteGame)
}
