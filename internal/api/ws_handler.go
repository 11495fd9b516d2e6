package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/worktracker/internal/platform/logger"
	"github.com/phrazzld/worktracker/internal/realtime"
)

// ConnectionRegistry is the part of the hub the WebSocket endpoints use.
// *realtime.Hub satisfies it.
type ConnectionRegistry interface {
	ConnectPublic(s realtime.Sender)
	DisconnectPublic(s realtime.Sender)
	ConnectUser(userID int64, s realtime.Sender)
	DisconnectUser(userID int64, s realtime.Sender)
}

// WSHandler upgrades requests to WebSocket connections and keeps them
// registered with the hub until the peer goes away.
type WSHandler struct {
	registry     ConnectionRegistry
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	logger       *slog.Logger
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(registry ConnectionRegistry, writeTimeout time.Duration, logger *slog.Logger) *WSHandler {
	if registry == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil for WSHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WSHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// No authentication: any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		writeTimeout: writeTimeout,
		logger:       logger.With(slog.String("component", "ws_handler")),
	}
}

// PublicRoom handles GET /ws requests.
func (h *WSHandler) PublicRoom(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	client, ok := h.upgrade(w, r, log)
	if !ok {
		return
	}

	h.registry.ConnectPublic(client)
	defer func() {
		h.registry.DisconnectPublic(client)
		_ = client.Close()
	}()

	h.hold(r, client, log)
}

// UserRoom handles GET /ws/users/{user_id} requests. The user id is not
// checked against the store; a room for an unknown user simply never
// receives user-specific events.
func (h *WSHandler) UserRoom(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handlePathID(w, r, "user_id", log)
	if !ok {
		return
	}

	client, ok := h.upgrade(w, r, log)
	if !ok {
		return
	}

	h.registry.ConnectUser(userID, client)
	defer func() {
		h.registry.DisconnectUser(userID, client)
		_ = client.Close()
	}()

	h.hold(r, client, log.With(slog.Int64("user_id", userID)))
}

func (h *WSHandler) upgrade(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*realtime.Client, bool) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		log.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return nil, false
	}
	return realtime.NewClient(conn, h.writeTimeout, log), true
}

func (h *WSHandler) hold(r *http.Request, client *realtime.Client, log *slog.Logger) {
	log = log.With(slog.String("client_id", client.ID().String()))
	log.Debug("websocket connected")

	if err := client.Hold(r.Context()); err != nil {
		log.Warn("websocket receive loop failed", slog.String("error", err.Error()))
		return
	}
	log.Debug("websocket disconnected")
}
