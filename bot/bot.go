package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"drink-shop/config"
	"drink-shop/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the Telegram front end of the shop counter. One cashier drives one session;
// updates are handled one at a time from the polling loop.
type Bot struct {
	api     *tgbotapi.BotAPI
	cfg     *config.Config
	session *services.Session
	log     *zap.Logger
}

// reply is what a handler wants shown: a new message, or an edit of editID when set.
type reply struct {
	Text     string
	Keyboard *tgbotapi.InlineKeyboardMarkup
	EditID   int
}

func New(cfg *config.Config, session *services.Session, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Bot{api: api, cfg: cfg, session: session, log: log}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "menu", Description: "Drink menu"},
		tgbotapi.BotCommand{Command: "cart", Description: "Your cart"},
		tgbotapi.BotCommand{Command: "name", Description: "Set customer name"},
		tgbotapi.BotCommand{Command: "order", Description: "Complete order"},
		tgbotapi.BotCommand{Command: "clear", Description: "Clear cart"},
		tgbotapi.BotCommand{Command: "help", Description: "Help"},
	)
	_, err := b.api.Request(cfg)
	return err
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		b.log.Warn("set bot commands", zap.Error(err))
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	b.log.Info("telegram bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) allowed(userID int64) bool {
	return b.cfg.Telegram.CashierID == 0 || b.cfg.Telegram.CashierID == userID
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cq := update.CallbackQuery; cq != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			b.log.Debug("answer callback", zap.Error(err))
		}
		if cq.Message == nil || !b.allowed(cq.From.ID) {
			return
		}
		r := b.handleCallback(ctx, cq.Data)
		r.EditID = cq.Message.MessageID
		b.deliver(cq.Message.Chat.ID, r)
		return
	}
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !b.allowed(msg.From.ID) {
		b.deliver(msg.Chat.ID, reply{Text: "This counter is operated by the shop cashier."})
		return
	}
	b.deliver(msg.Chat.ID, b.handleText(ctx, strings.TrimSpace(msg.Text)))
}

func (b *Bot) deliver(chatID int64, r reply) {
	var c tgbotapi.Chattable
	if r.EditID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, r.EditID, r.Text)
		edit.ReplyMarkup = r.Keyboard
		c = edit
	} else {
		msg := tgbotapi.NewMessage(chatID, r.Text)
		if r.Keyboard != nil {
			msg.ReplyMarkup = *r.Keyboard
		}
		c = msg
	}
	if _, err := b.api.Send(c); err != nil {
		// Editing with identical content is rejected by Telegram; nothing to do.
		if strings.Contains(err.Error(), "not modified") {
			return
		}
		b.log.Error("telegram send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) handleText(ctx context.Context, text string) reply {
	cmd, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	// Group chats address commands as /cmd@botname.
	if at := strings.IndexByte(cmd, '@'); at > 0 && strings.HasPrefix(cmd, "/") {
		cmd = cmd[:at]
	}
	switch cmd {
	case "/start", "/menu":
		return b.menuReply(services.MsgWelcome)
	case "/cart":
		return b.cartReply("")
	case "/help":
		return reply{Text: helpText}
	case "/clear":
		return b.cartReply(services.MessageClear(b.session.Clear()))
	case "/order":
		return b.completeOrder(ctx)
	case "/name":
		b.session.SetCustomerName(arg)
		return reply{Text: services.MessageCustomer(b.session.CustomerName())}
	}
	if strings.HasPrefix(text, "/") || text == "" {
		return reply{Text: "Unknown command. " + helpText}
	}
	// Any other text is the customer's name.
	b.session.SetCustomerName(text)
	return reply{Text: services.MessageCustomer(b.session.CustomerName())}
}

func (b *Bot) handleCallback(ctx context.Context, data string) reply {
	switch {
	case strings.HasPrefix(data, "add:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "add:"))
		if err != nil {
			return b.menuReply(services.MessageError(services.ErrIndexOutOfRange))
		}
		it, err := b.session.Add(idx)
		if err != nil {
			return b.menuReply(services.MessageError(err))
		}
		return b.menuReply(services.MessageAdded(it))
	case strings.HasPrefix(data, "rm:"):
		idx, itemIdx, ok := parseRemove(data)
		if !ok {
			return b.cartReply(services.MessageError(services.ErrIndexOutOfRange))
		}
		entries := b.session.Snapshot().Entries
		if idx < 0 || idx >= len(entries) || b.session.Catalog().IndexOf(entries[idx].Name) != itemIdx {
			return b.cartReply(msgCartChanged)
		}
		it, err := b.session.Remove(idx)
		if err != nil {
			return b.cartReply(services.MessageError(err))
		}
		return b.cartReply(services.MessageRemoved(it))
	case data == "cart":
		return b.cartReply("")
	case data == "menu":
		return b.menuReply("")
	case data == "clear":
		return b.cartReply(services.MessageClear(b.session.Clear()))
	case data == "complete":
		return b.completeOrder(ctx)
	case data == "help":
		return b.menuReply(services.MsgHelp)
	default:
		return b.menuReply("")
	}
}

// parseRemove splits "rm:<cart index>:<catalog index>".
func parseRemove(data string) (idx, itemIdx int, ok bool) {
	pos, item, found := strings.Cut(strings.TrimPrefix(data, "rm:"), ":")
	if !found {
		return 0, 0, false
	}
	idx, err := strconv.Atoi(pos)
	if err != nil {
		return 0, 0, false
	}
	itemIdx, err = strconv.Atoi(item)
	if err != nil {
		return 0, 0, false
	}
	return idx, itemIdx, true
}

func (b *Bot) completeOrder(ctx context.Context) reply {
	c, err := b.session.CompleteOrder(ctx, b.session.CustomerName())
	if err != nil {
		return b.cartReply(services.MessageError(err))
	}
	if c.SaveErr != nil {
		b.log.Warn("receipt shown but not saved", zap.String("order_id", c.Order.ID), zap.Error(c.SaveErr))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("New order", "menu")),
	)
	return reply{Text: c.Receipt + "\n\n" + services.MessageCompleted(c), Keyboard: &kb}
}
