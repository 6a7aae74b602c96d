package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"drink-shop/services"

	"go.uber.org/zap"
)

const help = `Commands:
  <n>        add menu item n
  r <n>      remove cart line n
  n <name>   set customer name
  m          show menu
  v          view cart
  c          clear cart
  o          complete order
  h          help
  q          quit`

// maxLineLen is the longest input line accepted; longer lines are skipped.
const maxLineLen = 4096

// Terminal drives one session from line-oriented input.
type Terminal struct {
	session *services.Session
	in      *bufio.Reader
	out     io.Writer
	log     *zap.Logger
}

func New(session *services.Session, in io.Reader, out io.Writer, log *zap.Logger) *Terminal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Terminal{session: session, in: bufio.NewReader(in), out: out, log: log}
}

// Run reads commands until "q", end of input or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	t.println("=== Drink Shop ===")
	t.println(services.FormatMenu(t.session.Catalog()))
	t.println(services.MsgWelcome)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	readErr := make(chan error, 1)
	go t.readLines(ctx, lines, readErr)

	for {
		if ctx.Err() != nil {
			return nil
		}
		t.print("> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if len(line) > maxLineLen {
				t.println(fmt.Sprintf("Input too long (%d bytes), ignored", len(line)))
				continue
			}
			if quit := t.handle(ctx, strings.TrimSpace(line)); quit {
				t.println("Bye!")
				return nil
			}
		}
	}
}

// readLines feeds input lines to Run. A read blocked on the input outlives a
// cancelled Run; it exits at the next line or end of input.
func (t *Terminal) readLines(ctx context.Context, lines chan<- string, readErr chan<- error) {
	defer close(lines)
	for {
		line, err := t.in.ReadString('\n')
		if line != "" {
			select {
			case lines <- strings.TrimRight(line, "\r\n"):
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			readErr <- err
			return
		}
	}
}

func (t *Terminal) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	if cmd != "" {
		t.log.Debug("terminal command", zap.String("cmd", cmd), zap.String("arg", arg))
	}
	switch strings.ToLower(cmd) {
	case "":
	case "q", "quit":
		return true
	case "h", "help", "?":
		t.println(services.MsgHelp)
		t.println(help)
	case "m", "menu":
		t.println(services.FormatMenu(t.session.Catalog()))
	case "v", "cart":
		t.showCart()
	case "c", "clear":
		t.println(services.MessageClear(t.session.Clear()))
	case "n", "name":
		t.session.SetCustomerName(arg)
		t.println(services.MessageCustomer(t.session.CustomerName()))
	case "r", "rm", "remove":
		n, err := strconv.Atoi(arg)
		if err != nil {
			t.println("Usage: r <cart line number>")
			return false
		}
		it, err := t.session.Remove(n - 1)
		if err != nil {
			t.println(services.MessageError(err))
			return false
		}
		t.println(services.MessageRemoved(it))
		t.showCart()
	case "o", "order":
		t.completeOrder(ctx)
	default:
		n, err := strconv.Atoi(cmd)
		if err != nil {
			t.println("Unknown command, press 'h' for help")
			return false
		}
		it, err := t.session.Add(n - 1)
		if err != nil {
			t.println(services.MessageError(err))
			return false
		}
		t.println(services.MessageAdded(it))
		t.showCart()
	}
	return false
}

func (t *Terminal) showCart() {
	snap := t.session.Snapshot()
	t.println(services.FormatCart(snap.Entries, snap.Total))
}

func (t *Terminal) completeOrder(ctx context.Context) {
	c, err := t.session.CompleteOrder(ctx, t.session.CustomerName())
	if err != nil {
		t.println(services.MessageError(err))
		return
	}
	t.println(c.Receipt)
	t.println(services.MessageCompleted(c))
}

func (t *Terminal) print(s string) {
	fmt.Fprint(t.out, s)
}

func (t *Terminal) println(s string) {
	fmt.Fprintln(t.out, s)
}
