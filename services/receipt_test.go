package services

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestFormatReceipt(t *testing.T) {
	f := NewFinalizer(&memorySink{}, fixedClock(), zap.NewNop())
	done, err := f.Finalize(context.Background(), sampleCart(t), "Alex")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	want := strings.Join([]string{
		"=== DRINK SHOP RECEIPT ===",
		"Date: 2024-03-09 14:05:07. Customer: Alex.",
		"",
		"2× Espresso: $2.75 each = $5.50",
		"1× Latte: $4.00 each = $4.00",
		"-------------------------",
		"Total Items: 3",
		"Total: $9.50",
		"",
		"Thank you for your order!",
	}, "\n")
	if done.Receipt != want {
		t.Errorf("receipt:\n%s\nwant:\n%s", done.Receipt, want)
	}
}

func TestFormatCart(t *testing.T) {
	cart := sampleCart(t)
	got := FormatCart(cart.Entries(), cart.Total())
	want := "1. Espresso $2.75\n2. Espresso $2.75\n3. Latte $4.00\nTotal: $9.50\n3 items in cart"
	if got != want {
		t.Errorf("FormatCart:\n%s\nwant:\n%s", got, want)
	}
	if got := FormatCart(nil, NewCart().Total()); got != "Total: $0.00\n0 items in cart" {
		t.Errorf("empty FormatCart = %q", got)
	}
}

func TestFormatMenu(t *testing.T) {
	menu := FormatMenu(DefaultCatalog())
	for _, want := range []string{"Coffee\n", "   1. Espresso - $2.75", "Tea\n", "   5. Green Tea - $2.50", "Cold Drinks\n", "  12. Water - $1.00"} {
		if !strings.Contains(menu, want) {
			t.Errorf("menu missing %q:\n%s", want, menu)
		}
	}
	if strings.Index(menu, "Coffee") > strings.Index(menu, "Tea\n") {
		t.Error("categories out of catalog order")
	}
}
