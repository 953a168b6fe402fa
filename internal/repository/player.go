package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) error
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

// CreateOrUpdate - stores the player and indexes it by its case-insensitive name.
func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, playerKey(player.ID), playerJSON, 0)
		pipe.Set(ctx, nameKey(player.Name), player.ID, 0)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

// Create - stores a new player and claims its name index with SETNX.
// The record is written first so a claimed name always resolves; a lost claim removes it again.
func (that *dbPlayer) Create(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if err = that.client.Set(ctx, playerKey(player.ID), playerJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	claimed, err := that.client.SetNX(ctx, nameKey(player.Name), player.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim player name: %w", err)
	}

	if !claimed {
		if err = that.client.Del(ctx, playerKey(player.ID)).Err(); err != nil {
			return fmt.Errorf("failed to drop unclaimed player: %w", err)
		}

		return fmt.Errorf("%w: %q", apperror.ErrNameTaken, player.Name)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal([]byte(response), &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}

func (that *dbPlayer) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	id, err := that.client.Get(ctx, nameKey(name)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}

	return that.GetByID(ctx, id)
}

func playerKey(id string) string {
	return "player:" + id
}

func nameKey(name string) string {
	return "player:name:" + strings.ToLower(name)
}
