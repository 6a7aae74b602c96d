package services

import (
	"context"
	"strings"
	"time"

	"drink-shop/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimestampLayout is the format of Order.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Clock supplies the order timestamp.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// OrderSink stores finalized orders.
type OrderSink interface {
	Write(ctx context.Context, order models.Order) error
}

// Completion is the outcome of a successful Finalize. SaveErr is a *PersistError when
// the sink failed; Order and Receipt are valid either way.
type Completion struct {
	Order   models.Order
	Lines   []models.AggregatedLine
	Receipt string
	SaveErr error
}

// Saved reports whether the sink accepted the order.
func (c *Completion) Saved() bool {
	return c.SaveErr == nil
}

// Finalizer turns a cart into an order and hands it to the sink.
type Finalizer struct {
	sink  OrderSink
	clock Clock
	log   *zap.Logger
	newID func() string
}

func NewFinalizer(sink OrderSink, clock Clock, log *zap.Logger) *Finalizer {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Finalizer{sink: sink, clock: clock, log: log, newID: uuid.NewString}
}

// Finalize checks the cart first, then the customer name. On success exactly one sink
// write is attempted. The cart is never modified.
func (f *Finalizer) Finalize(ctx context.Context, cart *Cart, customerName string) (*Completion, error) {
	if cart.Count() == 0 {
		return nil, ErrEmptyCart
	}
	name := strings.TrimSpace(customerName)
	if name == "" {
		return nil, ErrMissingCustomerName
	}

	now := f.clock.Now()
	lines := Aggregate(cart.Entries())
	orderLines := make([]models.OrderLine, len(lines))
	for i, l := range lines {
		orderLines[i] = models.OrderLine{Name: l.Name, Count: l.Count}
	}
	order := models.Order{
		ID:           f.newID(),
		OrderedAt:    now,
		CustomerName: name,
		Timestamp:    now.Format(TimestampLayout),
		Lines:        orderLines,
		Total:        cart.Total(),
	}

	c := &Completion{
		Order:   order,
		Lines:   lines,
		Receipt: FormatReceipt(order, lines),
	}
	if err := f.sink.Write(ctx, order); err != nil {
		c.SaveErr = &PersistError{Order: order, Err: err}
		f.log.Warn("order not saved",
			zap.String("order_id", order.ID),
			zap.String("customer", order.CustomerName),
			zap.Error(err),
		)
		return c, nil
	}
	f.log.Info("order completed",
		zap.String("order_id", order.ID),
		zap.String("customer", order.CustomerName),
		zap.Int("items", cart.Count()),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return c, nil
}
