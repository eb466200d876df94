package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/passgate/internal/client/passcode"
	"golang.org/x/term"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

// makeRaw and restoreTerm are test seams for the x/term calls.
var (
	makeRaw     = term.MakeRaw
	restoreTerm = term.Restore
	isTerminal  = term.IsTerminal
)

// loginView reads keystrokes one at a time and feeds them to a fresh passcode
// controller until it navigates away or the user presses Ctrl-C.
func (a *App) loginView(ctx context.Context) error {
	restore := a.enterRaw(ctx)
	defer restore()

	view := &termView{w: a.out}
	ctrl := passcode.NewController(a.authService, a.labels, a, view, a.logger)

	fmt.Fprint(a.out, "\r\nEnter your passcode (Ctrl-C to quit)\r\n")
	view.render(ctrl.Machine())

	for a.view == viewLogin {
		b, err := a.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.quit()
				return nil
			}
			return err
		}

		switch b {
		case keyCtrlC, keyCtrlD:
			fmt.Fprint(a.out, "\r\n")
			a.quit()
			return nil
		case keyBackspace, keyDelete:
			ctrl.Backspace(ctx)
		case '\r', '\n':
			continue
		default:
			ctrl.Type(ctx, string(b))
		}
		view.render(ctrl.Machine())
	}

	fmt.Fprint(a.out, "\r\n")
	a.justLoggedIn = a.view == viewDashboard
	return nil
}

// enterRaw switches stdin to raw mode when it is a terminal and returns the
// function that undoes it.
func (a *App) enterRaw(ctx context.Context) func() {
	if a.fd < 0 || !isTerminal(a.fd) {
		return func() {}
	}
	state, err := makeRaw(a.fd)
	if err != nil {
		a.logger.Warn(ctx, "raw mode unavailable", "error", err)
		return func() {}
	}
	return func() { _ = restoreTerm(a.fd, state) }
}

// termView draws the six slots on a single line. Filled slots are masked.
type termView struct {
	w     io.Writer
	focus int
	err   bool
}

func (v *termView) FocusSlot(slot int)    { v.focus = slot }
func (v *termView) SetError(visible bool) { v.err = visible }

func (v *termView) render(m *passcode.Machine) {
	var b strings.Builder
	b.WriteString("\r\033[K")
	for i, s := range m.Slots() {
		c := "_"
		if s != "" {
			c = "*"
		}
		if i == v.focus && m.State() != passcode.Done {
			b.WriteString("[" + c + "]")
		} else {
			b.WriteString(" " + c + " ")
		}
	}
	if v.err {
		b.WriteString("  wrong passcode")
	}
	fmt.Fprint(v.w, b.String())
}

// Logout drops the session and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	a.Navigate(ctx, viewLogin)
	return nil
}
