// Package server wires configuration, storage, token signing and the HTTP
// and gRPC listeners into one runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/logging"
	"github.com/dmitrijs2005/passgate/internal/server/auth"
	"github.com/dmitrijs2005/passgate/internal/server/config"
	"github.com/dmitrijs2005/passgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/passgate/internal/server/rest"
	"github.com/dmitrijs2005/passgate/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/passgate/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	authService   *services.AuthService
	recordService *services.RecordService
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout)
}

func newApp(c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(c.LogFormat, logOut)

	secret := c.SecretKey
	if secret == "" {
		var err error
		secret, err = common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		logger.Warn(context.Background(), "No secret key configured, using a random one; sessions will not survive a restart")
	}

	key, err := auth.NewSigningKey(secret)
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}
	codec := auth.NewCodec(key)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		repomanager:   rm,
		authService:   services.NewAuthService(db, rm, codec),
		recordService: services.NewRecordService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.recordService, app.restOptions())

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// restOptions derives transport options from config. The cookie lives as
// long as the token it carries.
func (app *App) restOptions() rest.Options {
	return rest.Options{
		AllowedOrigins:    app.config.AllowedOrigins,
		CookieInsecure:    app.config.CookieInsecure,
		AcceptCookieToken: app.config.AcceptCookieToken,
		CookieMaxAge:      common.SessionTTL,
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewAdminServer(app.config.EndpointAddrGRPC, app.logger, app.authService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run migrates the schema when configured, then serves until SIGINT/SIGTERM
// or a listener failure.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	if app.config.CookieInsecure {
		app.logger.Warn(ctx, "Session cookie is not Secure/HttpOnly; use only for local development")
	}

	if app.config.RunMigrations {
		if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return nil
}
