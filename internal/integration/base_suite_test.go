package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinex-web/internal/app"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const cacheImageName = "redis:7"

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	cacheContainer *RedisContainer
	backendServer  *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.cacheContainer = redisContainer

	fake := newFakeBackend()
	s.backendServer = httptest.NewServer(fake.Handler())

	cfg := app.Config{
		Port: 4000,
		Env:  "test",
		Backend: app.BackendConfig{
			URL:     s.backendServer.URL + "/api",
			Timeout: 5 * time.Second,
			Retries: 2,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Booking: app.BookingConfig{
			TicketPrice:     decimal.RequireFromString("8.50"),
			PaymentDelay:    10 * time.Millisecond,
			MaxSeats:        4,
			IdempotencyKeys: true,
			ViewIdleTimeout: 30 * time.Minute,
			RoomCacheTTL:    time.Minute,
		},
	}

	testApp, err := newTestApp(cfg, fake)
	if err != nil {
		log.Printf("cannot initialize app: %s", err)
		return
	}

	s.app = testApp
}

// SetupTest starts every test from the seed data with no sessions or cached
// rooms.
func (s *BaseSuite) SetupTest() {
	s.Require().NotNil(s.app, "test app was not initialized")

	s.app.Backend.reset()
	s.Require().NoError(s.app.Redis.FlushAll(context.Background()).Err())
}

func (s *BaseSuite) TearDownSuite() {
	if s.backendServer != nil {
		s.backendServer.Close()
	}
	if s.app != nil {
		s.app.Redis.Close()
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	Cookies          func(t testing.TB, app *TestApp) []*http.Cookie
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		var cookies []*http.Cookie
		if s.Cookies != nil {
			cookies = s.Cookies(t, testApp)
		}

		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, cookies)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
