package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/passgate/internal/client/client"
	"github.com/dmitrijs2005/passgate/internal/client/config"
	"github.com/dmitrijs2005/passgate/internal/client/guard"
	"github.com/dmitrijs2005/passgate/internal/client/passcode"
	"github.com/dmitrijs2005/passgate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/passgate/internal/client/services"
	"github.com/dmitrijs2005/passgate/internal/client/session"
	"github.com/dmitrijs2005/passgate/internal/logging"
)

// sessionNotKept explains a guard denial right after a successful login.
const sessionNotKept = "Signed in, but the session was not kept. A server with Secure cookies " +
	"needs an https server URL; for local plain-http use start the server with -dev."

const (
	viewLogin     = guard.Login
	viewDashboard = passcode.Dashboard
	viewQuit      = "quit"
)

type App struct {
	logger        logging.Logger
	authService   services.AuthService
	recordService services.RecordService
	labels        *session.LabelStore
	guard         *guard.Guard
	db            *sql.DB

	fd     int
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	view   string
	loaded bool
	// justLoggedIn is set when the login view hands over to the dashboard.
	justLoggedIn bool
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	var logger logging.Logger = logging.Nop()
	if c.Verbose {
		logger = logging.NewConsoleLogger(os.Stderr)
	}

	db, err := client.InitDatabase(ctx, c.SessionDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing session store: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	labels := session.NewLabelStore(metadata.NewSQLiteRepository(db))
	as := services.NewAuthService(apiClient, labels)
	rs := services.NewRecordService(apiClient)

	a := newApp(as, rs, labels, logger, os.Stdin, os.Stdout)
	a.db = db
	a.fd = int(os.Stdin.Fd())
	return a, nil
}

func newApp(as services.AuthService, rs services.RecordService, labels *session.LabelStore, l logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		logger:        l.With("module", "cli"),
		authService:   as,
		recordService: rs,
		labels:        labels,
		fd:            -1,
		reader:        bufio.NewReader(in),
		out:           out,
		now:           time.Now,
	}
	a.guard = guard.New(as, a, l)
	return a
}

// Navigate switches the active view. It satisfies both the guard and the
// passcode navigator.
func (a *App) Navigate(ctx context.Context, target string) {
	if a.view != target {
		a.logger.Debug(ctx, "navigate", "from", a.view, "to", target)
	}
	a.view = target
}

// Run starts on the dashboard, as a reload of a protected page would, and
// switches between views until the user quits.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to passgate (type 'help' for commands)")
	a.view = viewDashboard

	for {
		switch a.view {
		case viewLogin:
			if err := a.loginView(ctx); err != nil {
				return err
			}
		case viewDashboard:
			fresh := a.justLoggedIn
			a.justLoggedIn = false
			if !a.enterDashboard(ctx) {
				if fresh {
					fmt.Fprintln(a.out, sessionNotKept)
				}
				continue
			}
			a.dashboard(ctx)
		default:
			return nil
		}
	}
}

// enterDashboard runs the guard. The first entry is a load, later ones are
// activations; both ask the server.
func (a *App) enterDashboard(ctx context.Context) bool {
	if !a.loaded {
		if !a.guard.CanLoad(ctx) {
			return false
		}
		a.loaded = true
		return true
	}
	return a.guard.CanActivate(ctx)
}

func (a *App) quit() {
	a.view = viewQuit
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
