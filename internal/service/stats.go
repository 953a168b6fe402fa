package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

const (
	attrPlayed    = "tt.played"
	attrWins      = "tt.wins"
	attrLosses    = "tt.losses"
	attrTies      = "tt.ties"
	attrForfeits  = "tt.forfeits"
	attrAbandoned = "tt.abandoned"
)

// StatsService keeps per-player records and the history of finished matches.
type StatsService interface {
	MatchStarted(ctx context.Context, game *entity.Game)
	MatchFinished(ctx context.Context, result entity.Result)

	Stats(ctx context.Context, playerID string) (*entity.Stats, error)
	Result(ctx context.Context, gameID string) (*entity.Result, error)
}

type attributeRepo interface {
	GetAll(ctx context.Context, entityID string) (map[string]string, error)
	Incr(ctx context.Context, entityID string, deltas map[string]int64) error
}

type resultRepo interface {
	SaveResult(ctx context.Context, result *entity.Result) error
	GetResult(ctx context.Context, id string) (*entity.Result, error)
}

type statsService struct {
	logger     *slog.Logger
	attributes attributeRepo
	results    resultRepo
}

func NewStatsService(logger *slog.Logger, attributes attributeRepo, results resultRepo) StatsService {
	return &statsService{
		logger:     logger.With("component", "stats"),
		attributes: attributes,
		results:    results,
	}
}

func (that *statsService) MatchStarted(context.Context, *entity.Game) {}

// MatchFinished - records the result for both participants. Failures are logged, never returned.
func (that *statsService) MatchFinished(ctx context.Context, result entity.Result) {
	log := that.logger.With("method", "MatchFinished", "gameID", result.GameID)

	for playerID, deltas := range recordDeltas(result) {
		if err := that.attributes.Incr(ctx, playerID, deltas); err != nil {
			log.Error("failed to record stats", "player", playerID, "error", err)
		}
	}

	if err := that.results.SaveResult(ctx, &result); err != nil {
		log.Error("failed to save result", "error", err)
	}
}

func (that *statsService) Stats(ctx context.Context, playerID string) (*entity.Stats, error) {
	values, err := that.attributes.GetAll(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	return &entity.Stats{
		Played:    counter(values, attrPlayed),
		Wins:      counter(values, attrWins),
		Losses:    counter(values, attrLosses),
		Ties:      counter(values, attrTies),
		Forfeits:  counter(values, attrForfeits),
		Abandoned: counter(values, attrAbandoned),
	}, nil
}

func (that *statsService) Result(ctx context.Context, gameID string) (*entity.Result, error) {
	result, err := that.results.GetResult(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	return result, nil
}

// recordDeltas maps a result to the counters each participant gains.
func recordDeltas(result entity.Result) map[string]map[string]int64 {
	deltas := make(map[string]map[string]int64, len(result.Players))

	for _, player := range result.Players {
		if player == nil {
			continue
		}

		record := map[string]int64{attrPlayed: 1}

		switch result.Reason {
		case entity.EndComplete:
			switch {
			case result.Tie:
				record[attrTies] = 1
			case result.Winner == player.ID:
				record[attrWins] = 1
			default:
				record[attrLosses] = 1
			}
		case entity.EndForfeit:
			if result.Forfeiter == player.ID {
				record[attrForfeits] = 1
				record[attrLosses] = 1
			} else {
				record[attrWins] = 1
			}
		default:
			record[attrAbandoned] = 1
		}

		deltas[player.ID] = record
	}

	return deltas
}

func counter(values map[string]string, key string) int64 {
	value, err := strconv.ParseInt(values[key], 10, 64)
	if err != nil {
		return 0
	}

	return value
}
