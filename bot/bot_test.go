package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"drink-shop/config"
	"drink-shop/models"
	"drink-shop/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type recordingSink struct {
	orders []models.Order
	err    error
}

func (s *recordingSink) Write(_ context.Context, o models.Order) error {
	s.orders = append(s.orders, o)
	return s.err
}

func newTestBot(sink services.OrderSink, cashierID int64) *Bot {
	clock := services.ClockFunc(func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) })
	session := services.NewSession(services.DefaultCatalog(), services.NewFinalizer(sink, clock, zap.NewNop()))
	cfg := &config.Config{}
	cfg.Telegram.CashierID = cashierID
	return &Bot{cfg: cfg, session: session, log: zap.NewNop()}
}

func callbackData(btn tgbotapi.InlineKeyboardButton) string {
	if btn.CallbackData == nil {
		return ""
	}
	return *btn.CallbackData
}

func TestAllowed(t *testing.T) {
	open := newTestBot(&recordingSink{}, 0)
	if !open.allowed(42) {
		t.Error("bot without cashier id rejected a user")
	}
	locked := newTestBot(&recordingSink{}, 7)
	if !locked.allowed(7) || locked.allowed(42) {
		t.Error("cashier restriction not applied")
	}
}

func TestMenuKeyboard(t *testing.T) {
	catalog := services.DefaultCatalog()
	kb := menuKeyboard(catalog, 2)
	rows := kb.InlineKeyboard
	// 3 category headers, 12 items, 1 footer.
	if len(rows) != 16 {
		t.Fatalf("got %d rows, want 16", len(rows))
	}
	if rows[0][0].Text != "· Coffee ·" || callbackData(rows[0][0]) != "menu" {
		t.Errorf("first row = %+v", rows[0][0])
	}
	if rows[1][0].Text != "Espresso - $2.75" || callbackData(rows[1][0]) != "add:0" {
		t.Errorf("espresso button = %q %q", rows[1][0].Text, callbackData(rows[1][0]))
	}
	footer := rows[len(rows)-1]
	if footer[0].Text != "🛒 Cart (2)" || callbackData(footer[0]) != "cart" {
		t.Errorf("footer = %q", footer[0].Text)
	}
	seen := map[string]bool{}
	for _, row := range rows {
		for _, btn := range row {
			if d := callbackData(btn); strings.HasPrefix(d, "add:") {
				seen[d] = true
			}
		}
	}
	if len(seen) != catalog.Len() {
		t.Errorf("%d add buttons, want %d", len(seen), catalog.Len())
	}
}

func TestCartKeyboard(t *testing.T) {
	b := newTestBot(&recordingSink{}, 0)
	b.session.Add(0)
	b.session.Add(4)
	kb := cartKeyboard(b.session.Catalog(), b.session.Snapshot())
	rows := kb.InlineKeyboard
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[1][0].Text != "❌ Green Tea $2.50" || callbackData(rows[1][0]) != "rm:1:4" {
		t.Errorf("remove button = %q %q", rows[1][0].Text, callbackData(rows[1][0]))
	}
	if callbackData(rows[2][0]) != "complete" || callbackData(rows[2][1]) != "clear" {
		t.Errorf("checkout row = %+v", rows[2])
	}
}

func TestHandleCallbackFlow(t *testing.T) {
	sink := &recordingSink{}
	b := newTestBot(sink, 0)
	ctx := context.Background()

	r := b.handleCallback(ctx, "add:0")
	if !strings.HasPrefix(r.Text, "Added Espresso to cart ($2.75)") {
		t.Errorf("add reply = %q", r.Text)
	}
	if !strings.Contains(r.Text, "Total: $2.75, 1 items in cart") || r.Keyboard == nil {
		t.Errorf("add reply missing totals or keyboard: %q", r.Text)
	}

	r = b.handleCallback(ctx, "add:99")
	if !strings.HasPrefix(r.Text, "No such item") {
		t.Errorf("bad add reply = %q", r.Text)
	}
	r = b.handleCallback(ctx, "add:x")
	if !strings.HasPrefix(r.Text, "No such item") {
		t.Errorf("garbled add reply = %q", r.Text)
	}

	r = b.handleCallback(ctx, "complete")
	if !strings.HasPrefix(r.Text, "Cannot complete order - Name required") {
		t.Errorf("complete without name = %q", r.Text)
	}

	b.handleText(ctx, "Alex")
	r = b.handleCallback(ctx, "complete")
	if !strings.Contains(r.Text, "=== DRINK SHOP RECEIPT ===") || !strings.Contains(r.Text, "Order completed! Total: $2.75") {
		t.Errorf("complete reply = %q", r.Text)
	}
	if len(sink.orders) != 1 || sink.orders[0].CustomerName != "Alex" {
		t.Errorf("saved = %+v", sink.orders)
	}
	if b.session.Snapshot().Count != 0 {
		t.Error("cart not reset after order")
	}

	r = b.handleCallback(ctx, "complete")
	if !strings.HasPrefix(r.Text, "Cannot complete order - Cart is empty") {
		t.Errorf("complete on empty cart = %q", r.Text)
	}
}

func TestHandleCallbackRemoveAndClear(t *testing.T) {
	b := newTestBot(&recordingSink{}, 0)
	ctx := context.Background()
	b.handleCallback(ctx, "add:1")
	b.handleCallback(ctx, "add:2")

	r := b.handleCallback(ctx, "rm:0:1")
	if !strings.HasPrefix(r.Text, "Removed Americano from cart") {
		t.Errorf("remove reply = %q", r.Text)
	}
	r = b.handleCallback(ctx, "rm:5")
	if !strings.HasPrefix(r.Text, "No such item") {
		t.Errorf("malformed remove reply = %q", r.Text)
	}
	r = b.handleCallback(ctx, "rm:5:2")
	if !strings.HasPrefix(r.Text, msgCartChanged) {
		t.Errorf("bad remove reply = %q", r.Text)
	}
	r = b.handleCallback(ctx, "clear")
	if !strings.HasPrefix(r.Text, "Cart cleared") {
		t.Errorf("clear reply = %q", r.Text)
	}
	r = b.handleCallback(ctx, "clear")
	if !strings.HasPrefix(r.Text, "Cart is already empty") {
		t.Errorf("second clear reply = %q", r.Text)
	}
}

func TestHandleText(t *testing.T) {
	b := newTestBot(&recordingSink{}, 0)
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"/start", services.MsgWelcome},
		{"/help", helpText},
		{"/help@DrinkShopBot", helpText},
		{"/menu@DrinkShopBot", services.MsgWelcome},
		{"/cart", "🛒 Your Cart"},
		{"/name   Sam ", "Hello, Sam! Please select your drinks."},
		{"/name", "Customer name cleared"},
		{"/bogus", "Unknown command."},
		{"Jordan", "Hello, Jordan! Please select your drinks."},
		{"/order", "Cannot complete order - Cart is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := b.handleText(ctx, strings.TrimSpace(tt.text))
			if !strings.Contains(r.Text, tt.want) {
				t.Errorf("handleText(%q) = %q, want it to contain %q", tt.text, r.Text, tt.want)
			}
		})
	}
	if got := b.session.CustomerName(); got != "Jordan" {
		t.Errorf("customer = %q", got)
	}
}

func TestCompleteOrderSaveFailure(t *testing.T) {
	b := newTestBot(&recordingSink{err: errors.New("redis down")}, 0)
	ctx := context.Background()
	b.handleText(ctx, "/name Alex")
	b.handleCallback(ctx, "add:11")
	r := b.completeOrder(ctx)
	if !strings.Contains(r.Text, "WARNING: receipt was not saved (redis down)") {
		t.Errorf("reply = %q", r.Text)
	}
	if r.Keyboard == nil || callbackData(r.Keyboard.InlineKeyboard[0][0]) != "menu" {
		t.Error("missing new order button")
	}
}

func TestRemoveFromStaleCartMessage(t *testing.T) {
	b := newTestBot(&recordingSink{}, 0)
	ctx := context.Background()
	b.handleCallback(ctx, "add:0")
	b.handleCallback(ctx, "add:3")
	b.handleCallback(ctx, "add:11")

	// Buttons of a cart message drawn now: Espresso, Latte, Water.
	old := cartKeyboard(b.session.Catalog(), b.session.Snapshot())
	staleLatte := callbackData(old.InlineKeyboard[1][0])
	if staleLatte != "rm:1:3" {
		t.Fatalf("latte button = %q", staleLatte)
	}

	b.handleCallback(ctx, "rm:0:0")
	r := b.handleCallback(ctx, staleLatte)
	if !strings.HasPrefix(r.Text, msgCartChanged) {
		t.Errorf("stale remove reply = %q", r.Text)
	}
	entries := b.session.Snapshot().Entries
	if len(entries) != 2 || entries[0].Name != "Latte" || entries[1].Name != "Water" {
		t.Errorf("cart after stale tap = %v", entries)
	}
	if r.Keyboard == nil || callbackData(r.Keyboard.InlineKeyboard[0][0]) != "rm:0:3" {
		t.Error("cart not redrawn with current positions")
	}
}
