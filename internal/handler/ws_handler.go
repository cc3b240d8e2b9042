package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/middleware"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/service"
	ws "github.com/qforge/qforge-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams answer sheet processing progress to connected clients.
type WSHandler struct {
	rdb          *redis.Client
	sheetService *service.AnswerSheetService
	log          zerolog.Logger
	upgrader     websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, sheetService *service.AnswerSheetService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:          rdb,
		sheetService: sheetService,
		log:          log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
	}
}

// SheetStatusStream godoc
// WS /ws/v1/answersheets/:id/status
// Sends the sheet's current status on connect, then forwards worker progress
// events until the sheet reaches a terminal state or the client disconnects.
func (h *WSHandler) SheetStatusStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sheet ID"})
		return
	}

	sheet, err := h.sheetService.Get(c.Request.Context(), sheetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sheet not found"})
		return
	}

	// Subscribe before the snapshot so no event published in between is lost.
	pubsub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.SheetProgressChannel(sheetID.String()))
	defer pubsub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("teacher_id", claims.TeacherID).
		Str("sheet_id", sheetID.String()).
		Logger()

	status := h.currentStatus(c, sheetID, sheet.Status)
	if err := ws.WriteTyped(conn, ws.StatusResponse{
		Event:   ws.EventStatus,
		SheetID: sheetID.String(),
		Status:  string(status),
	}); err != nil {
		return
	}

	if status.Terminal() {
		return
	}

	wsLog.Debug().Msg("Client subscribed to sheet progress")

	done := make(chan struct{})
	go ws.WaitForClose(conn, done)

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Client disconnected")
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}

			var event model.SheetProgressEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed progress event")
				continue
			}

			if err := ws.WriteTyped(conn, ws.ProgressResponse{
				Event:    ws.EventProgress,
				SheetID:  event.SheetID,
				Status:   string(event.Status),
				Progress: event.Progress,
				Message:  event.Message,
			}); err != nil {
				return
			}

			if event.Status.Terminal() {
				return
			}
		}
	}
}

// currentStatus prefers the worker's cached progress event over the DB row,
// which can lag behind by one transition.
func (h *WSHandler) currentStatus(c *gin.Context, sheetID uuid.UUID, fallback model.SheetStatus) model.SheetStatus {
	raw, err := h.rdb.Get(c.Request.Context(), config.CacheKey.SheetStatusKey(sheetID.String())).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.log.Warn().Err(err).Msg("Status cache read failed")
		}
		return fallback
	}

	var event model.SheetProgressEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return fallback
	}
	return event.Status
}
