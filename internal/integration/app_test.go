package integration_test

import (
	"log/slog"
	"os"

	"github.com/metinatakli/cinex-web/internal/app"
	"github.com/metinatakli/cinex-web/internal/backend"
	"github.com/metinatakli/cinex-web/internal/payment"
	appvalidator "github.com/metinatakli/cinex-web/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App     *app.Application
	Redis   *redis.Client
	Backend *fakeBackend
}

func newTestApp(cfg app.Config, fake *fakeBackend) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	validator := appvalidator.NewValidator()

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	client := backend.New(cfg.Backend.URL, validator,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithRetries(cfg.Backend.Retries),
		backend.WithLogger(logger),
	)

	application := app.NewApp(
		cfg,
		logger,
		redisClient,
		validator,
		sessionManager,
		client,
		payment.NewSimulatedProcessor(cfg.Booking.PaymentDelay, logger),
	)

	return &TestApp{
		App:     application,
		Redis:   redisClient,
		Backend: fake,
	}, nil
}
