package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// AttributeRepository is the per-entity key/value store. Attributes live in one redis hash per entity.
type AttributeRepository interface {
	GetAll(ctx context.Context, entityID string) (map[string]string, error)
	Incr(ctx context.Context, entityID string, deltas map[string]int64) error
}

type dbAttribute struct {
	client *redis.Client
}

func NewAttributeRepository(client *redis.Client) AttributeRepository {
	return &dbAttribute{
		client: client,
	}
}

func (that *dbAttribute) GetAll(ctx context.Context, entityID string) (map[string]string, error) {
	values, err := that.client.HGetAll(ctx, attributeKey(entityID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get attributes: %w", err)
	}

	return values, nil
}

// Incr - applies all deltas in one transaction.
func (that *dbAttribute) Incr(ctx context.Context, entityID string, deltas map[string]int64) error {
	key := attributeKey(entityID)

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for field, delta := range deltas {
			pipe.HIncrBy(ctx, key, field, delta)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment attributes: %w", err)
	}

	return nil
}

func attributeKey(entityID string) string {
	return "attr:" + entityID
}
