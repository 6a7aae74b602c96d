package store

import (
	"encoding/json"
	"fmt"

	"drink-shop/models"
)

// encode renders the persisted order document, indented like the shop's receipt files.
func encode(order models.Order) ([]byte, error) {
	b, err := json.MarshalIndent(order.Record(), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}
	return b, nil
}
