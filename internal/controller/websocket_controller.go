package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *slog.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *slog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection makes the connection the game's single event consumer.
// Only this goroutine writes to c; a reader goroutine forwards frames.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	logger := wsc.logger.With("game", gameID)

	coordinator, release, err := wsc.gameService.AttachConsumer(gameID)
	if err != nil {
		logger.Warn("websocket rejected", "err", err)
		c.WriteJSON(ws.ErrorMessage(err))
		c.Close()
		return
	}
	defer release()
	logger.Info("websocket attached")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	frames := make(chan []byte)
	go wsc.readFrames(ctx, cancel, c, frames, logger)

	events := coordinator.Events()
	for {
		if err := wsc.flush(c, events.Drain()); err != nil {
			logger.Debug("write error", "err", err)
			return
		}
		select {
		case <-ctx.Done():
			logger.Info("websocket detached")
			return
		case <-coordinator.Done():
			wsc.flush(c, events.Drain())
			c.WriteJSON(ws.ErrorMessage(service.ErrCoordinatorStopped))
			return
		case <-events.Ready():
		case frame := <-frames:
			if err := wsc.handleFrame(ctx, gameID, frame); err != nil {
				logger.Debug("command failed", "err", err)
				if err := c.WriteJSON(ws.ErrorMessage(err)); err != nil {
					return
				}
			}
		}
	}
}

func (wsc *WebSocketController) readFrames(ctx context.Context, cancel context.CancelFunc, c *websocket.Conn, frames chan<- []byte, logger *slog.Logger) {
	defer cancel()
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("read error", "err", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		select {
		case frames <- message:
		case <-ctx.Done():
			return
		}
	}
}

func (wsc *WebSocketController) flush(c *websocket.Conn, events []service.Event) error {
	for _, e := range events {
		msg, err := eventMessage(e)
		if err != nil {
			return err
		}
		if err := c.WriteJSON(msg); err != nil {
			return err
		}
	}
	return nil
}

func eventMessage(e service.Event) (ws.Message, error) {
	var payload any = e
	if sc, ok := e.(service.StateChanged); ok {
		payload = sc.Snapshot
	}
	return ws.NewMessage(ws.MessageType(e.Kind()), payload)
}

// handleFrame dispatches one client command to the game.
func (wsc *WebSocketController) handleFrame(ctx context.Context, gameID string, frame []byte) error {
	var msg ws.Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	switch msg.Type {
	case ws.MessageTypeSelect:
		var p ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		return wsc.gameService.Select(ctx, gameID, p.Square)

	case ws.MessageTypePromote:
		var p ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		return wsc.gameService.Promote(ctx, gameID, p.Piece)

	case ws.MessageTypeUndo:
		return wsc.gameService.Undo(ctx, gameID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
