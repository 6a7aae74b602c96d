package store

import (
	"context"
	"encoding/json"
	"fmt"

	"drink-shop/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of pgxpool.Pool used by Postgres.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres appends each order as a row of the orders table.
type Postgres struct {
	db Execer
}

func NewPostgres(db Execer) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Write(ctx context.Context, order models.Order) error {
	record, err := encode(order)
	if err != nil {
		return err
	}
	items, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO orders (id, username, ordered_at, items, cost, record)
		VALUES ($1, $2, $3, $4::jsonb, $5::numeric, $6::jsonb)`,
		order.ID, order.CustomerName, order.OrderedAt, string(items), order.Total.StringFixed(2), string(record),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", order.ID, err)
	}
	return nil
}
