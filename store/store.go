package store

import (
	"context"
	"fmt"

	"drink-shop/config"
	"drink-shop/services"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Closer releases whatever connection a sink opened.
type Closer func()

// New builds the sink selected by cfg.Backend. pool is only used by the postgres backend.
func New(ctx context.Context, cfg config.StoreConfig, pool *pgxpool.Pool) (services.OrderSink, Closer, error) {
	noop := func() {}
	switch cfg.Backend {
	case config.StoreFile:
		return NewFile(cfg.ReceiptPath), noop, nil
	case config.StoreHistory:
		return NewHistory(cfg.HistoryDir), noop, nil
	case config.StorePostgres:
		if pool == nil {
			return nil, noop, fmt.Errorf("postgres store: no database pool")
		}
		return NewPostgres(pool), noop, nil
	case config.StoreRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return NewRedis(client, cfg.RedisKey), func() { client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
