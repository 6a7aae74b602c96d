package bot

import (
	"fmt"
	"strconv"

	"drink-shop/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const msgCartChanged = "Cart has changed, here is the current cart"

const helpText = "Tap a drink to add it. /cart shows the cart, /name <name> sets the customer, " +
	"/order completes the order, /clear empties the cart."

// menuKeyboard lists the catalog grouped by category: a header row per category
// followed by one button per item.
func menuKeyboard(catalog *services.Catalog, cartCount int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, g := range catalog.GroupedByCategory() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("· "+g.Category+" ·", "menu"),
		))
		for _, it := range g.Items {
			idx := catalog.IndexOf(it.Name)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s - $%s", it.Name, services.Money(it.Price)),
					"add:"+strconv.Itoa(idx),
				),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🛒 Cart (%d)", cartCount), "cart"),
		tgbotapi.NewInlineKeyboardButtonData("Help", "help"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// cartKeyboard has a remove button per cart entry plus the checkout actions.
// Remove buttons carry "rm:<cart index>:<catalog index>" so a tap on a stale
// message can be detected.
func cartKeyboard(catalog *services.Catalog, snap services.Snapshot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, it := range snap.Entries {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("❌ %s $%s", it.Name, services.Money(it.Price)),
				fmt.Sprintf("rm:%d:%d", i, catalog.IndexOf(it.Name)),
			),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Complete Order", "complete"),
			tgbotapi.NewInlineKeyboardButtonData("Clear Cart", "clear"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back to menu", "menu"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) menuReply(status string) reply {
	snap := b.session.Snapshot()
	text := "🥤 Drink Menu"
	if status != "" {
		text = status + "\n\n" + text
	}
	text += fmt.Sprintf("\n\nTotal: $%s, %d items in cart", services.Money(snap.Total), snap.Count)
	kb := menuKeyboard(b.session.Catalog(), snap.Count)
	return reply{Text: text, Keyboard: &kb}
}

func (b *Bot) cartReply(status string) reply {
	snap := b.session.Snapshot()
	text := "🛒 Your Cart\n\n" + services.FormatCart(snap.Entries, snap.Total)
	if name := b.session.CustomerName(); name != "" {
		text += "\nCustomer: " + name
	}
	if status != "" {
		text = status + "\n\n" + text
	}
	kb := cartKeyboard(b.session.Catalog(), snap)
	return reply{Text: text, Keyboard: &kb}
}
