// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/config"
	"github.com/subscription-tracker/backend/internal/infra/db"
	"github.com/subscription-tracker/backend/internal/infra/dependency"
	"github.com/subscription-tracker/backend/internal/integration/cache"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/subscription-tracker/backend/internal/integration/persistence/model"
	"github.com/subscription-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	resendEmailPath = "/emails"
)

// suite holds the resources shared by every scenario.
type suite struct {
	db       *mock.Db
	redis    *mock.Redis
	resend   *mock.ApiMock
	clock    *mock.Clock
	injector *dependency.Injector
	server   *httptest.Server
}

var shared *suite

// InitializeTestSuite starts the API once, backed by sqlite, miniredis and a
// mocked email provider.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db: mock.NewDb(map[string]any{
				"subscriptions": &model.SubscriptionModel{},
				"notifications": &model.NotificationModel{},
				"user_settings": &model.UserSettingsModel{},
				"categories":    &model.CategoryModel{},
				"email_queue":   &model.EmailQueueModel{},
			}),
			redis:  mock.NewRedis(),
			resend: mock.NewApiServer(),
			clock:  mock.NewClock(),
		}
		s.resend.Start()

		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("AUTH_JWT_SECRET", testJWTSecret)
		_ = os.Setenv("RESEND_API_KEY", "re_test_key")
		_ = os.Setenv("RESEND_BASE_URL", s.resend.GetUrl())
		cfg := config.Load()

		database := db.NewDatabase(s.db.DbConn)
		injector, err := dependency.NewInjector(cfg, s.db.DbConn, dependency.Options{
			Clock: s.clock,
			Cache: cache.NewRedisBillingDateCache(s.redis.Client),
			HealthChecks: []controller.HealthCheck{
				{Name: "database", Probe: database.Ping},
				{Name: "redis", Optional: true, Probe: func(ctx context.Context) error { return s.redis.Client.Ping(ctx).Err() }},
			},
		})
		if err != nil {
			panic(fmt.Sprintf("failed to build injector: %v", err))
		}
		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.resend.Close()
		shared.redis.Close()
	})
}

// testContext is the per-scenario state.
type testContext struct {
	*suite
	client      *http.Client
	headers     map[string]string
	accessToken string
	users       map[string]uuid.UUID // email -> user id
	currentUser uuid.UUID
	vars        map[string]string // placeholder values, e.g. {{subscription:Netflix}}
	response    *response
}

type response struct {
	status int
	body   any
}

func newTestContext() *testContext {
	return &testContext{
		suite:  shared,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *testContext) before() error {
	if shared == nil {
		return fmt.Errorf("test suite was not initialized")
	}
	t.suite = shared
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.users = make(map[string]uuid.UUID)
	t.currentUser = uuid.Nil
	t.vars = make(map[string]string)
	t.response = nil

	t.clock.Reset()
	t.resend.Clear()
	if err := t.redis.Clear(); err != nil {
		return err
	}
	return t.db.ClearDB()
}
