package services

import (
	"errors"
	"fmt"

	"drink-shop/models"
)

var (
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCustomerName = errors.New("customer name is required")
)

func indexError(what string, index, length int) error {
	return fmt.Errorf("%s index %d not in [0, %d): %w", what, index, length, ErrIndexOutOfRange)
}

// PersistError reports that an order was finalized but the sink did not store it.
// The order and its receipt remain valid.
type PersistError struct {
	Order models.Order
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("order for %q not saved: %v", e.Order.CustomerName, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
