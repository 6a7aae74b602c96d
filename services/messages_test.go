package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"drink-shop/models"
)

func TestMessageError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrEmptyCart, "Cannot complete order - Cart is empty"},
		{ErrMissingCustomerName, "Cannot complete order - Name required"},
		{fmt.Errorf("cart index 4: %w", ErrIndexOutOfRange), "No such item"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		if got := MessageError(tt.err); got != tt.want {
			t.Errorf("MessageError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestStatusMessages(t *testing.T) {
	latte := mustItem(t, DefaultCatalog(), "Latte")
	if got := MessageAdded(latte); got != "Added Latte to cart ($4.00)" {
		t.Errorf("MessageAdded = %q", got)
	}
	if got := MessageRemoved(latte); got != "Removed Latte from cart" {
		t.Errorf("MessageRemoved = %q", got)
	}
	if MessageClear(AlreadyEmpty) != "Cart is already empty" || MessageClear(Cleared) != "Cart cleared" {
		t.Error("MessageClear mismatch")
	}
	if got := MessageCustomer("Alex"); got != "Hello, Alex! Please select your drinks." {
		t.Errorf("MessageCustomer = %q", got)
	}
}

func TestMessageCompleted(t *testing.T) {
	order := models.Order{ID: "x", CustomerName: "Alex", Total: mustItem(t, DefaultCatalog(), "Latte").Price}
	c := &Completion{Order: order}
	if got := MessageCompleted(c); got != "Order completed! Total: $4.00" {
		t.Errorf("MessageCompleted = %q", got)
	}
	c.SaveErr = &PersistError{Order: order, Err: errors.New("permission denied")}
	got := MessageCompleted(c)
	if !strings.Contains(got, "WARNING") || !strings.Contains(got, "permission denied") {
		t.Errorf("MessageCompleted with SaveErr = %q", got)
	}
}
