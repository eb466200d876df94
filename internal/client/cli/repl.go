package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/passgate/internal/client/session"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	active() bool
	quit()
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Add(ctx context.Context) error
	Update(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a until the
// dashboard is left (logout, expired session) or the user quits.
//
//	help            show available commands
//	list | l        list all records
//	search <text>   records whose name or ISIN contains text
//	add             create a record (interactive)
//	update <id>     edit a record (interactive)
//	logout          end the session
//	exit | quit     leave the program
//
// Command errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for a.active() {
		fmt.Fprintf(w, "passgate %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.quit()
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, "Available commands: (l)ist, search <text>, add, update <id>, logout, exit")
		case "l", "list":
			_ = a.List(ctx)
		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))
		case "add":
			_ = a.Add(ctx)
		case "update":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: update <id>")
				continue
			}
			_ = a.Update(ctx, args[0])
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			a.quit()
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func (a *App) active() bool {
	return a.view == viewDashboard
}

// dashboard greets the user and runs the record REPL.
func (a *App) dashboard(ctx context.Context) {
	name, err := a.authService.Name(ctx)
	if err != nil {
		a.logger.Warn(ctx, "read label", "error", err)
		name = session.DefaultLabel
	}
	fmt.Fprintln(a.out, greeting(a.now(), name))
	runREPL(ctx, a, func() string { return name }, a.reader, a.out)
}

func greeting(now time.Time, name string) string {
	part := "Evening"
	switch h := now.Hour(); {
	case h < 12:
		part = "Morning"
	case h < 18:
		part = "Afternoon"
	}
	return fmt.Sprintf("%s, %s", part, name)
}
