package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DisplayVersion   bool
	Backend          BackendConfig
	Redis            RedisConfig
	Booking          BookingConfig
}

type BackendConfig struct {
	URL     string
	Timeout time.Duration
	Retries uint
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type BookingConfig struct {
	TicketPrice     decimal.Decimal
	PaymentDelay    time.Duration
	MaxSeats        int
	IdempotencyKeys bool
	ViewIdleTimeout time.Duration
	RoomCacheTTL    time.Duration
}

// LoadConfig parses command line flags. Every flag defaults to its CINEX_*
// environment variable; a .env file in the working directory is read first
// when present.
func LoadConfig(args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("cinex-web", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", envInt("CINEX_PORT", 4000), "server port")
	fs.StringVar(&cfg.Env, "env", envStr("CINEX_ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envStr("CINEX_OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.Backend.URL, "backend-url", envStr("CINEX_BACKEND_URL", "http://localhost:3000/api"), "Reservation backend base URL")
	fs.DurationVar(&cfg.Backend.Timeout, "backend-timeout", envDuration("CINEX_BACKEND_TIMEOUT", 10*time.Second), "Reservation backend request timeout")
	fs.UintVar(&cfg.Backend.Retries, "backend-retries", uint(envInt("CINEX_BACKEND_RETRIES", 3)), "Attempts for idempotent backend reads")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envStr("CINEX_REDIS_URL", "localhost:6379"), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("CINEX_REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("CINEX_REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("CINEX_REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	cfg.Booking.TicketPrice = decimal.RequireFromString("8.50")
	if v := os.Getenv("CINEX_TICKET_PRICE"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CINEX_TICKET_PRICE: %w", err)
		}
		cfg.Booking.TicketPrice = price
	}

	fs.Func("ticket-price", "Price of one seat (default 8.50)", func(s string) error {
		price, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		if price.IsNegative() {
			return fmt.Errorf("must not be negative")
		}
		cfg.Booking.TicketPrice = price
		return nil
	})
	fs.DurationVar(&cfg.Booking.PaymentDelay, "payment-delay", envDuration("CINEX_PAYMENT_DELAY", 1500*time.Millisecond), "Simulated payment processing time")
	fs.IntVar(&cfg.Booking.MaxSeats, "max-seats", envInt("CINEX_MAX_SEATS", 0), "Maximum seats per reservation (0 = unlimited)")
	fs.BoolVar(&cfg.Booking.IdempotencyKeys, "idempotency-keys", envBool("CINEX_IDEMPOTENCY_KEYS", false), "Send an Idempotency-Key with every reservation")
	fs.DurationVar(&cfg.Booking.ViewIdleTimeout, "view-idle-timeout", envDuration("CINEX_VIEW_IDLE_TIMEOUT", 30*time.Minute), "Close room views idle for longer than this")
	fs.DurationVar(&cfg.Booking.RoomCacheTTL, "room-cache-ttl", envDuration("CINEX_ROOM_CACHE_TTL", 30*time.Second), "How long room descriptors stay cached")

	fs.BoolVar(&cfg.DisplayVersion, "version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, err
	}

	if cfg.Backend.URL == "" {
		return Config{}, fmt.Errorf("backend-url must be set")
	}

	return cfg, nil
}

// submissionTimeout bounds one reservation submission: the simulated payment
// followed by a single backend request. Zero means unbounded.
func (cfg Config) submissionTimeout() time.Duration {
	if cfg.Backend.Timeout <= 0 {
		return 0
	}
	return cfg.Booking.PaymentDelay + cfg.Backend.Timeout + time.Second
}

// writeTimeout leaves room for the slowest submission to still deliver its
// answer.
func (cfg Config) writeTimeout() time.Duration {
	return max(10*time.Second, cfg.submissionTimeout()+5*time.Second)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}
