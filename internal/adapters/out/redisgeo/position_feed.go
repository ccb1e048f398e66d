// Package redisgeo publishes live courier positions to a Redis geo index so
// that map clients outside the process can follow the fleet.
package redisgeo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
)

// DefaultKey is the geo set holding courier positions.
const DefaultKey = "couriers:positions"

// Options holds the Redis connection settings.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient creates a Redis client and verifies the connection.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// PositionFeed implements ports.PositionFeed with GEOADD.
type PositionFeed struct {
	client redis.UniversalClient
	key    string
}

// NewPositionFeed creates a feed writing to key, DefaultKey when empty.
func NewPositionFeed(client redis.UniversalClient, key string) *PositionFeed {
	if key == "" {
		key = DefaultKey
	}
	return &PositionFeed{client: client, key: key}
}

// PublishPositions stores the position of every courier in one GEOADD.
func (f *PositionFeed) PublishPositions(ctx context.Context, couriers []*courier.Courier) error {
	if len(couriers) == 0 {
		return nil
	}

	locations := make([]*redis.GeoLocation, 0, len(couriers))
	for _, c := range couriers {
		locations = append(locations, &redis.GeoLocation{
			Name:      c.ID().String(),
			Longitude: c.Location().Lng(),
			Latitude:  c.Location().Lat(),
		})
	}

	if err := f.client.GeoAdd(ctx, f.key, locations...).Err(); err != nil {
		return fmt.Errorf("geoadd %d couriers: %w", len(locations), err)
	}
	return nil
}

// RemovePosition drops a courier from the index.
func (f *PositionFeed) RemovePosition(ctx context.Context, courierID kernel.ID) error {
	if err := f.client.ZRem(ctx, f.key, courierID.String()).Err(); err != nil {
		return fmt.Errorf("zrem %s: %w", courierID, err)
	}
	return nil
}
