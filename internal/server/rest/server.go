// Package rest exposes the passgate HTTP API: passcode authentication,
// session verification and the company record routes guarded by it.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/passgate/internal/logging"
	"github.com/dmitrijs2005/passgate/internal/server/metrics"
	"github.com/dmitrijs2005/passgate/internal/server/models"
	"github.com/dmitrijs2005/passgate/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxBodyBytes    = 50 << 10
	shutdownTimeout = 5 * time.Second
)

type AuthService interface {
	Authenticate(ctx context.Context, key string) (*services.Session, error)
	VerifyBearer(header string) (string, error)
	VerifyToken(token string) (string, error)
}

type RecordService interface {
	Create(ctx context.Context, rec *models.CompanyRecord) (*models.CompanyRecord, error)
	List(ctx context.Context) ([]models.CompanyRecord, error)
	Search(ctx context.Context, query string) ([]models.CompanyRecord, error)
	Update(ctx context.Context, rec *models.CompanyRecord) (*models.CompanyRecord, error)
}

// Options tune transport behaviour that is not business logic.
type Options struct {
	AllowedOrigins []string
	// CookieInsecure drops Secure and HttpOnly from the session cookie.
	CookieInsecure bool
	// AcceptCookieToken lets protected routes read the session cookie when
	// no Authorization header is present.
	AcceptCookieToken bool
	// CookieMaxAge is the session cookie lifetime; it should match the token TTL.
	CookieMaxAge time.Duration
}

type Server struct {
	address string
	logger  logging.Logger
	auth    AuthService
	records RecordService
	opts    Options
	engine  *gin.Engine
}

func NewServer(address string, l logging.Logger, as AuthService, rs RecordService, opts Options) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "rest_server"),
		auth:    as,
		records: rs,
		opts:    opts,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	metrics.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(s.logger))
	r.Use(requestMetrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     normalizeOrigins(s.opts.AllowedOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(limitBody(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/authenticate")
	authGroup.POST("/auth", s.authenticate)
	authGroup.GET("/autoLogin", s.requireSession("autoLogin"), s.autoLogin)

	recordsGroup := r.Group("/companyRecords", s.requireSession("companyRecords"))
	recordsGroup.POST("/create", s.createRecord)
	recordsGroup.POST("/search", s.searchRecords)
	recordsGroup.GET("/fetch", s.fetchRecords)
	recordsGroup.POST("/update", s.updateRecord)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// normalizeOrigins keeps the origins cors accepts; an empty result falls
// back to the local development frontend.
func normalizeOrigins(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" || strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://") {
			result = append(result, o)
		}
	}
	if len(result) == 0 {
		return []string{"http://localhost:3000"}
	}
	return result
}
