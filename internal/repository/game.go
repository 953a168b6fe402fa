package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

// ResultTTL bounds how long a finished match stays queryable.
const ResultTTL = 24 * time.Hour

var ErrGameNotFound = errors.New("game not found")

// GameRepository keeps the results of finished matches. In-flight state is never stored.
type GameRepository interface {
	SaveResult(ctx context.Context, result *entity.Result) error
	GetResult(ctx context.Context, id string) (*entity.Result, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) SaveResult(ctx context.Context, result *entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(result.GameID), resultJSON, ResultTTL).Err(); err != nil {
		return fmt.Errorf("failed to set result: %w", err)
	}

	return nil
}

func (that *dbGame) GetResult(ctx context.Context, id string) (*entity.Result, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

func gameKey(id string) string {
	return "game:" + id
}
