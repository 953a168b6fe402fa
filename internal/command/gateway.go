package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/hub"
	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

type connector interface {
	Connect(ctx context.Context, name string) (*entity.Player, error)
}

type sessions interface {
	Attach(player *entity.Player, conn hub.Conn) error
	Detach(playerID string, conn hub.Conn)
	Notify(playerID string, notice tripletriad.Notice)
}

type disconnector interface {
	Disconnect(ctx context.Context, participantID string)
}

type connRecorder interface {
	Connected(transport string)
	Disconnected(transport string)
}

// Gateway is what a transport sees of the server: open a session, run lines, close it.
type Gateway struct {
	logger     *slog.Logger
	players    connector
	sessions   sessions
	games      disconnector
	dispatcher *Dispatcher
	recorder   connRecorder
}

func NewGateway(
	logger *slog.Logger,
	players connector,
	sessions sessions,
	games disconnector,
	dispatcher *Dispatcher,
	recorder connRecorder,
) *Gateway {
	return &Gateway{
		logger:     logger.With("component", "gateway"),
		players:    players,
		sessions:   sessions,
		games:      games,
		dispatcher: dispatcher,
		recorder:   recorder,
	}
}

// Open - admits the character called name and binds conn to it.
func (that *Gateway) Open(ctx context.Context, name string, conn hub.Conn, transport string) (*entity.Player, error) {
	player, err := that.players.Connect(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %q: %w", name, err)
	}

	if err = that.sessions.Attach(player, conn); err != nil {
		return nil, fmt.Errorf("failed to attach %q: %w", name, err)
	}

	if that.recorder != nil {
		that.recorder.Connected(transport)
	}

	that.logger.Info("player connected", "method", "Open", "player", player.ID, "name", player.Name, "transport", transport)
	that.sessions.Notify(player.ID, tripletriad.Notice{
		Text: fmt.Sprintf("Welcome, %s. Type 'help' for a list of commands.", player.Name),
	})

	return player, nil
}

func (that *Gateway) Execute(ctx context.Context, player *entity.Player, line string) {
	that.dispatcher.Execute(ctx, player, line)
}

// Close - detaches the session and ends any match the player was in.
func (that *Gateway) Close(ctx context.Context, player *entity.Player, conn hub.Conn, transport string) {
	that.sessions.Detach(player.ID, conn)
	that.games.Disconnect(ctx, player.ID)

	if that.recorder != nil {
		that.recorder.Disconnected(transport)
	}

	that.logger.Info("player disconnected", "method", "Close", "player", player.ID, "transport", transport)
}
