package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-web/api"
	"github.com/metinatakli/cinex-web/internal/backend"
	"github.com/metinatakli/cinex-web/internal/booking"
	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/metinatakli/cinex-web/internal/payment"
	appvalidator "github.com/metinatakli/cinex-web/internal/validator"
	"github.com/metinatakli/cinex-web/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

var _ api.ServerInterface = (*Application)(nil)

// Backend is the reservation API as seen by the shell.
type Backend interface {
	domain.RoomLoader
	domain.RoomLister
	domain.ReservationGateway
	domain.ReservationReader
	domain.AuthGateway
}

type Application struct {
	config         Config
	logger         *slog.Logger
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager

	rooms        domain.RoomLoader
	roomLister   domain.RoomLister
	reservations domain.ReservationReader
	auth         domain.AuthGateway
	payments     domain.PaymentProcessor

	views     *booking.Registry
	submitter *booking.Submitter

	now func() time.Time
}

func Run() error {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if cfg.DisplayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_, err = api.Load(context.Background())
	if err != nil {
		return err
	}

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(
			logger.Handler(),
			otelslog.NewHandler(serviceName),
		))
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	validator := appvalidator.NewValidator()

	client := backend.New(cfg.Backend.URL, validator,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithRetries(cfg.Backend.Retries),
		backend.WithLogger(logger),
	)

	app := NewApp(
		cfg,
		logger,
		redisClient,
		validator,
		NewSessionManager(redisClient),
		client,
		payment.NewSimulatedProcessor(cfg.Booking.PaymentDelay, logger),
	)

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	gateway Backend,
	payments domain.PaymentProcessor) *Application {

	cache := backend.NewRoomCache(gateway, redisClient, cfg.Booking.RoomCacheTTL, logger)

	submitter := booking.NewSubmitter(gateway,
		booking.WithInvalidator(cache),
		booking.WithIdempotencyKeys(cfg.Booking.IdempotencyKeys),
		booking.WithLogger(logger),
	)

	return &Application{
		config:         cfg,
		logger:         logger,
		redis:          redisClient,
		validator:      validator,
		sessionManager: sessionManager,
		rooms:          cache,
		roomLister:     gateway,
		reservations:   gateway,
		auth:           gateway,
		payments:       payments,
		views:          booking.NewRegistry(),
		submitter:      submitter,
		now:            time.Now,
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: app.config.writeTimeout(),
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	sweepCtx, stopSweeping := context.WithCancel(context.Background())
	defer stopSweeping()

	go app.sweepViews(sweepCtx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "backend", app.config.Backend.URL)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

// sweepViews closes room views nobody touched for longer than the configured
// idle timeout.
func (app *Application) sweepViews(ctx context.Context) {
	interval := app.config.Booking.ViewIdleTimeout / 2
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n := app.views.Sweep(now, app.config.Booking.ViewIdleTimeout)
			if n > 0 {
				app.logger.Info("closed idle room views", "count", n)
			}
		}
	}
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestUserSession)

	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{app.authenticateSecuredOperation},
		ErrorHandlerFunc: app.invalidParamResponse,
	})
}
