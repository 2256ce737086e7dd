package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/edumetrics/assess-backend/internal/middleware"
	"github.com/edumetrics/assess-backend/internal/service"
	ws "github.com/edumetrics/assess-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
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

// WSHandler streams the test session clock to connected clients.
type WSHandler struct {
	testService *service.TestService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(testService *service.TestService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		testService: testService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ClockStream godoc
// WS /ws/v1/test/clock?token=...
// Pushes a ClockUpdate once per second until the session ends or the
// client disconnects. The countdown itself is driven by the timer
// worker; this stream only mirrors it.
func (h *WSHandler) ClockStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", claims.UserID).Logger()

	if _, err := h.testService.State(claims.UserID); err != nil {
		ws.WriteError(conn, "no test session")
		return
	}

	wsLog.Info().Msg("Clock stream connected")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		state, err := h.testService.State(claims.UserID)
		if err != nil {
			ws.WriteError(conn, "session gone")
			return
		}

		if !state.Active {
			_ = ws.WriteTyped(conn, ws.EndedNotice{Event: ws.EventEnded})
			wsLog.Info().Msg("Clock stream closed: session ended")
			return
		}

		update := ws.ClockUpdate{
			Event:            ws.EventClock,
			RemainingSeconds: state.RemainingSec,
			AnsweredCount:    state.AnsweredCount,
		}
		if err := ws.WriteTyped(conn, update); err != nil {
			wsLog.Debug().Err(err).Msg("Clock stream write failed, client gone")
			return
		}
	}
}
