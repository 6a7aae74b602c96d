package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"drink-shop/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Catalog is the fixed, read-only list of purchasable items.
type Catalog struct {
	items []models.MenuItem
}

// NewCatalog validates the definition and copies it. Names must be unique: aggregation
// takes the unit price from the first entry with a given name, so two same-named items
// with different prices would silently misprice a receipt.
func NewCatalog(items []models.MenuItem) (*Catalog, error) {
	if len(items) == 0 {
		return nil, errors.New("catalog has no items")
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]models.MenuItem, 0, len(items))
	for i, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		it.Category = strings.TrimSpace(it.Category)
		if it.Name == "" {
			return nil, fmt.Errorf("catalog item %d: name is required", i)
		}
		if !it.Price.IsPositive() {
			return nil, fmt.Errorf("catalog item %q: price must be > 0", it.Name)
		}
		if !it.Price.Equal(it.Price.Round(2)) {
			return nil, fmt.Errorf("catalog item %q: price %s has more than 2 fraction digits", it.Name, it.Price)
		}
		if it.Category == "" {
			it.Category = models.CategoryRegular
		}
		if _, dup := seen[it.Name]; dup {
			return nil, fmt.Errorf("catalog item %q: duplicate name", it.Name)
		}
		seen[it.Name] = struct{}{}
		it.Price = it.Price.Round(2)
		out = append(out, it)
	}
	return &Catalog{items: out}, nil
}

// Items returns a copy of the catalog in definition order.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) ItemAt(index int) (models.MenuItem, error) {
	if index < 0 || index >= len(c.items) {
		return models.MenuItem{}, indexError("catalog", index, len(c.items))
	}
	return c.items[index], nil
}

// IndexOf returns the catalog position of the named item, or -1.
func (c *Catalog) IndexOf(name string) int {
	for i, it := range c.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// GroupedByCategory groups items by category. Categories appear in order of first
// occurrence; items keep catalog order within a category.
func (c *Catalog) GroupedByCategory() []models.CategoryGroup {
	var groups []models.CategoryGroup
	pos := make(map[string]int)
	for _, it := range c.items {
		i, ok := pos[it.Category]
		if !ok {
			i = len(groups)
			pos[it.Category] = i
			groups = append(groups, models.CategoryGroup{Category: it.Category})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

func item(name, price, category string) models.MenuItem {
	return models.MenuItem{Name: name, Price: decimal.RequireFromString(price), Category: category}
}

// DefaultMenu is the shop's built-in drink menu.
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		item("Espresso", "2.75", models.CategoryCoffee),
		item("Americano", "3.00", models.CategoryCoffee),
		item("Cappuccino", "3.75", models.CategoryCoffee),
		item("Latte", "4.00", models.CategoryCoffee),
		item("Green Tea", "2.50", models.CategoryTea),
		item("Black Tea", "2.25", models.CategoryTea),
		item("Chai Tea", "3.00", models.CategoryTea),
		item("Orange Juice", "2.50", models.CategoryColdDrinks),
		item("Lemonade", "2.25", models.CategoryColdDrinks),
		item("Iced Tea", "2.00", models.CategoryColdDrinks),
		item("Soda", "1.75", models.CategoryColdDrinks),
		item("Water", "1.00", models.CategoryColdDrinks),
	}
}

// DefaultCatalog builds the catalog from DefaultMenu.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultMenu())
	if err != nil {
		panic(err)
	}
	return c
}

// Querier is the subset of pgxpool.Pool used to read the menu table.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadCatalog reads the menu_items table once at startup.
func LoadCatalog(ctx context.Context, q Querier) (*Catalog, error) {
	rows, err := q.Query(ctx, `
		SELECT name, price::text, category FROM menu_items
		ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var name, price, category string
		if err := rows.Scan(&name, &price, &category); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("menu item %q: bad price %q: %w", name, price, err)
		}
		items = append(items, models.MenuItem{Name: name, Price: p, Category: category})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewCatalog(items)
}
