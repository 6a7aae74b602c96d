package store

import (
	"context"
	"fmt"

	"drink-shop/models"

	"github.com/redis/go-redis/v9"
)

// Redis pushes every order onto a list and keeps the newest under "<key>:latest".
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) latestKey() string {
	return r.key + ":latest"
}

func (r *Redis) Write(ctx context.Context, order models.Order) error {
	data, err := encode(order)
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key, data)
	pipe.Set(ctx, r.latestKey(), data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis write order %s: %w", order.ID, err)
	}
	return nil
}

// Latest returns the most recently written order document, or nil if there is none.
func (r *Redis) Latest(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.latestKey()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
