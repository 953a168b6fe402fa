package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

const (
	clientName = "tripletriad-backend"

	suffixStarted  = ".started"
	suffixFinished = ".finished"
)

// StartedEvent announces a new match.
type StartedEvent struct {
	GameID    string            `json:"game_id"`
	Players   [2]*entity.Player `json:"players"`
	FirstMove string            `json:"first_move"`
}

// Publisher sends match lifecycle events to NATS. Publishing is best effort.
type Publisher struct {
	logger  *slog.Logger
	conn    *nats.Conn
	subject string
}

// Connect - dials url and returns a publisher owning the connection.
func Connect(logger *slog.Logger, url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name(clientName), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return NewPublisher(logger, conn, subject), nil
}

func NewPublisher(logger *slog.Logger, conn *nats.Conn, subject string) *Publisher {
	return &Publisher{
		logger:  logger.With("component", "nats"),
		conn:    conn,
		subject: subject,
	}
}

func (that *Publisher) MatchStarted(_ context.Context, game *entity.Game) {
	that.publish(that.subject+suffixStarted, StartedEvent{
		GameID:    game.ID,
		Players:   game.Players,
		FirstMove: game.TurnOrder[0],
	})
}

func (that *Publisher) MatchFinished(_ context.Context, result entity.Result) {
	that.publish(that.subject+suffixFinished, result)
}

// Close - flushes pending messages and closes the connection.
func (that *Publisher) Close() error {
	if err := that.conn.Drain(); err != nil {
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}

	return nil
}

func (that *Publisher) publish(subject string, event any) {
	log := that.logger.With("method", "publish", "subject", subject)

	body, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to marshal event", "error", err)
		return
	}

	if err = that.conn.Publish(subject, body); err != nil {
		log.Error("failed to publish event", "error", err)
	}
}
