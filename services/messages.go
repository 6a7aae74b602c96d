package services

import (
	"errors"
	"fmt"

	"drink-shop/models"
)

const (
	MsgWelcome = "Ready to take your order! Add items from the menu."
	MsgHelp    = "HELP: Press 'q' to quit, 'c' to clear cart, 'o' to complete order"
)

func MessageAdded(it models.MenuItem) string {
	return fmt.Sprintf("Added %s to cart ($%s)", it.Name, Money(it.Price))
}

func MessageRemoved(it models.MenuItem) string {
	return fmt.Sprintf("Removed %s from cart", it.Name)
}

func MessageCustomer(name string) string {
	if name == "" {
		return "Customer name cleared"
	}
	return fmt.Sprintf("Hello, %s! Please select your drinks.", name)
}

func MessageClear(r ClearResult) string {
	if r == AlreadyEmpty {
		return "Cart is already empty"
	}
	return "Cart cleared"
}

// MessageCompleted is the status line after a completed order. A failed save is
// called out so the receipt does not look stored when it was not.
func MessageCompleted(c *Completion) string {
	msg := fmt.Sprintf("Order completed! Total: $%s", Money(c.Order.Total))
	if c.SaveErr != nil {
		msg += fmt.Sprintf(" WARNING: receipt was not saved (%v)", errors.Unwrap(c.SaveErr))
	}
	return msg
}

// MessageError is the status line for an operation that was rejected.
func MessageError(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "Cannot complete order - Cart is empty"
	case errors.Is(err, ErrMissingCustomerName):
		return "Cannot complete order - Name required"
	case errors.Is(err, ErrIndexOutOfRange):
		return "No such item"
	default:
		return "Error: " + err.Error()
	}
}
