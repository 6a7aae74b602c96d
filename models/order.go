package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregatedLine is a receipt line derived from the cart: all entries sharing a name.
type AggregatedLine struct {
	Name      string
	Count     int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderLine is the persisted shape of an aggregated line (no unit price).
type OrderLine struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Order is a finalized purchase. ID and OrderedAt are not part of the persisted record;
// history-preserving sinks use them for naming.
type Order struct {
	ID           string
	OrderedAt    time.Time
	CustomerName string
	Timestamp    string
	Lines        []OrderLine
	Total        decimal.Decimal
}

// Record returns the persisted form of the order.
func (o Order) Record() OrderRecord {
	lines := make([]OrderLine, len(o.Lines))
	copy(lines, o.Lines)
	return OrderRecord{
		Username: o.CustomerName,
		Time:     o.Timestamp,
		Items:    lines,
		Cost:     o.Total.StringFixed(2),
	}
}

// ItemCount is the number of cart entries the order was built from.
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Count
	}
	return n
}

// OrderRecord is the JSON document written for every completed order.
type OrderRecord struct {
	Username string      `json:"username"`
	Time     string      `json:"time"`
	Items    []OrderLine `json:"items"`
	Cost     string      `json:"cost"`
}
