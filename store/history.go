package store

import (
	"context"
	"fmt"
	"path/filepath"

	"drink-shop/models"
)

// History keeps every order as its own file in Dir, named by order time and ID.
type History struct {
	Dir string
}

func NewHistory(dir string) *History {
	return &History{Dir: dir}
}

func (h *History) Write(ctx context.Context, order models.Order) error {
	data, err := encode(order)
	if err != nil {
		return err
	}
	return writeFileAtomic(h.PathFor(order), data)
}

// PathFor returns the file an order is stored in.
func (h *History) PathFor(order models.Order) string {
	name := fmt.Sprintf("%s-%s.json", order.OrderedAt.Format("20060102-150405"), order.ID)
	return filepath.Join(h.Dir, name)
}
