package services

import (
	"drink-shop/models"

	"github.com/shopspring/decimal"
)

// ClearResult tells whether Clear removed anything.
type ClearResult int

const (
	Cleared ClearResult = iota
	AlreadyEmpty
)

func (r ClearResult) String() string {
	if r == AlreadyEmpty {
		return "already empty"
	}
	return "cleared"
}

// Cart is the ordered list of items of one in-progress order. Entries are value
// copies of catalog items; adding the same item twice yields two entries.
// Cart is not safe for concurrent use.
type Cart struct {
	items []models.MenuItem
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) Add(item models.MenuItem) {
	c.items = append(c.items, item)
}

// RemoveAt removes the entry at index and returns it. Remaining entries keep their order.
func (c *Cart) RemoveAt(index int) (models.MenuItem, error) {
	if index < 0 || index >= len(c.items) {
		return models.MenuItem{}, indexError("cart", index, len(c.items))
	}
	removed := c.items[index]
	c.items = append(c.items[:index:index], c.items[index+1:]...)
	return removed, nil
}

func (c *Cart) Clear() ClearResult {
	if len(c.items) == 0 {
		return AlreadyEmpty
	}
	c.items = nil
	return Cleared
}

// Total is the exact sum of entry prices; zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price)
	}
	return total
}

// Count is the number of entries, not distinct items.
func (c *Cart) Count() int {
	return len(c.items)
}

func (c *Cart) Entries() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}
