package services

import (
	"context"
	"strings"

	"drink-shop/models"

	"github.com/shopspring/decimal"
)

// Snapshot is a read-only view of the cart for display.
type Snapshot struct {
	Entries []models.MenuItem
	Lines   []models.AggregatedLine
	Total   decimal.Decimal
	Count   int
}

// Session is one in-progress order at the counter: the catalog, the cart and the
// customer's name. A front end owns exactly one Session and must serialize calls.
type Session struct {
	catalog   *Catalog
	cart      *Cart
	finalizer *Finalizer
	customer  string
}

func NewSession(catalog *Catalog, finalizer *Finalizer) *Session {
	return &Session{catalog: catalog, cart: NewCart(), finalizer: finalizer}
}

func (s *Session) Catalog() *Catalog {
	return s.catalog
}

func (s *Session) ListCatalog() []models.MenuItem {
	return s.catalog.Items()
}

func (s *Session) CatalogGroupedByCategory() []models.CategoryGroup {
	return s.catalog.GroupedByCategory()
}

// Add puts the catalog item at itemIndex into the cart.
func (s *Session) Add(itemIndex int) (models.MenuItem, error) {
	it, err := s.catalog.ItemAt(itemIndex)
	if err != nil {
		return models.MenuItem{}, err
	}
	s.cart.Add(it)
	return it, nil
}

// Remove drops the cart entry at cartIndex.
func (s *Session) Remove(cartIndex int) (models.MenuItem, error) {
	return s.cart.RemoveAt(cartIndex)
}

func (s *Session) Clear() ClearResult {
	return s.cart.Clear()
}

func (s *Session) Snapshot() Snapshot {
	entries := s.cart.Entries()
	return Snapshot{
		Entries: entries,
		Lines:   Aggregate(entries),
		Total:   s.cart.Total(),
		Count:   len(entries),
	}
}

func (s *Session) SetCustomerName(name string) {
	s.customer = strings.TrimSpace(name)
}

func (s *Session) CustomerName() string {
	return s.customer
}

// CompleteOrder finalizes the cart for customerName and empties the cart on success,
// including when the sink failed (see Completion.SaveErr). On a precondition error
// the cart is left unchanged.
func (s *Session) CompleteOrder(ctx context.Context, customerName string) (*Completion, error) {
	c, err := s.finalizer.Finalize(ctx, s.cart, customerName)
	if err != nil {
		return nil, err
	}
	s.cart.Clear()
	return c, nil
}
