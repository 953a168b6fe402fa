package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/hub"
)

const (
	Transport = "websocket"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type gateway interface {
	Open(ctx context.Context, name string, conn hub.Conn, transport string) (*entity.Player, error)
	Execute(ctx context.Context, player *entity.Player, line string)
	Close(ctx context.Context, player *entity.Player, conn hub.Conn, transport string)
}

type Server struct {
	logger   *slog.Logger
	gateway  gateway
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, gateway gateway) *Server {
	return &Server{
		logger:  logger.With("component", "websocket"),
		gateway: gateway,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler - routes GET /ws?name=<name>.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := way.NewRouter()
	router.HandleFunc(http.MethodGet, "/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeWait)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and runs the session until either side closes it.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	name := req.URL.Query().Get("name")
	if name == "" {
		http.Error(writer, "name is required", http.StatusBadRequest)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	outbox := hub.NewOutbox(hub.DefaultOutboxSize)
	defer outbox.Close()

	player, err := that.gateway.Open(ctx, name, outbox, Transport)
	if err != nil {
		log.Info("connection refused", "name", name, "error", err)
		that.refuse(conn, err)
		return
	}
	defer that.gateway.Close(context.WithoutCancel(ctx), player, outbox, Transport)

	log.Info("WebSocket connection established", "player", player.ID)

	go that.writeLoop(conn, outbox)

	that.readLoop(ctx, conn, player)
}

// readLoop feeds command messages to the gateway until the connection fails.
func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, player *entity.Player) {
	log := that.logger.With("method", "readLoop", "player", player.ID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Info("unexpected close", "error", err)
			}
			return
		}

		if message.Action != ActionCommand {
			log.Debug("unknown action", "action", message.Action)
			continue
		}

		var payload CommandPayload
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			log.Debug("failed to unmarshal payload", "error", err)
			continue
		}

		that.gateway.Execute(ctx, player, payload.Text)
	}
}

// writeLoop pumps notices from the outbox to the connection and keeps it alive with pings.
func (that *Server) writeLoop(conn *websocket.Conn, outbox *hub.Outbox) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case notice := <-outbox.Notices():
			message, err := newMessage(ActionMessage, ResponsePayload{Text: notice.Text, View: notice.View})
			if err != nil {
				that.logger.Error("failed to marshal notice", "method", "writeLoop", "error", err)
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(message); err != nil {
				_ = conn.Close()
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}

		case <-outbox.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

func (that *Server) refuse(conn *websocket.Conn, err error) {
	text := "unable to connect"
	switch {
	case errors.Is(err, apperror.ErrInvalidName):
		text = "that name is not available"
	case errors.Is(err, apperror.ErrAlreadyConnected):
		text = "that character is already connected"
	}

	message, marshalErr := newMessage(ActionError, ResponsePayload{Error: text})
	if marshalErr != nil {
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(message)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, text), time.Now().Add(writeWait))
}
