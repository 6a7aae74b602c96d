package services

import (
	"fmt"
	"strings"

	"drink-shop/models"

	"github.com/shopspring/decimal"
)

const receiptRule = "-------------------------"

// Money formats an amount with two fraction digits.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatReceipt renders the customer receipt for a finalized order.
func FormatReceipt(order models.Order, lines []models.AggregatedLine) string {
	var b strings.Builder
	b.WriteString("=== DRINK SHOP RECEIPT ===\n")
	fmt.Fprintf(&b, "Date: %s. Customer: %s.\n\n", order.Timestamp, order.CustomerName)
	for _, l := range lines {
		fmt.Fprintf(&b, "%d× %s: $%s each = $%s\n", l.Count, l.Name, Money(l.UnitPrice), Money(l.LineTotal))
	}
	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "Total Items: %d\n", order.ItemCount())
	fmt.Fprintf(&b, "Total: $%s\n\n", Money(order.Total))
	b.WriteString("Thank you for your order!")
	return b.String()
}

// FormatCart renders the in-progress cart: one line per entry, then the total.
func FormatCart(entries []models.MenuItem, total decimal.Decimal) string {
	var b strings.Builder
	for i, it := range entries {
		fmt.Fprintf(&b, "%d. %s $%s\n", i+1, it.Name, Money(it.Price))
	}
	fmt.Fprintf(&b, "Total: $%s\n%d items in cart", Money(total), len(entries))
	return b.String()
}

// FormatMenu renders the catalog grouped by category with 1-based item numbers.
func FormatMenu(c *Catalog) string {
	var b strings.Builder
	for gi, g := range c.GroupedByCategory() {
		if gi > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", g.Category)
		for _, it := range g.Items {
			fmt.Fprintf(&b, "  %2d. %s - $%s\n", c.IndexOf(it.Name)+1, it.Name, Money(it.Price))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
