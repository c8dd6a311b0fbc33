package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subscription-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/subscription-tracker/backend/internal/application/usecase/analytics"
	"github.com/subscription-tracker/backend/internal/application/usecase/billingdate"
	"github.com/subscription-tracker/backend/internal/application/usecase/category"
	"github.com/subscription-tracker/backend/internal/application/usecase/notification"
	"github.com/subscription-tracker/backend/internal/application/usecase/settings"
	"github.com/subscription-tracker/backend/internal/application/usecase/subscription"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/middleware"
)

var testNow = time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	userID        uuid.UUID
	subscriptions *adaptertest.SubscriptionRepository
	notifications *adaptertest.NotificationRepository
	settings      *adaptertest.UserSettingsRepository
	categories    *adaptertest.CategoryRepository
	cache         *adaptertest.BillingDateCache
	engine        *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		userID:        uuid.New(),
		subscriptions: adaptertest.NewSubscriptionRepository(),
		notifications: adaptertest.NewNotificationRepository(),
		settings:      adaptertest.NewUserSettingsRepository(),
		categories:    adaptertest.NewCategoryRepository(),
		cache:         adaptertest.NewBillingDateCache(),
	}
	clock := adaptertest.FixedClock{T: testNow}

	subs := NewSubscriptionController(
		subscription.NewListSubscriptionsUseCase(f.subscriptions),
		subscription.NewCreateSubscriptionUseCase(f.subscriptions),
		subscription.NewGetSubscriptionUseCase(f.subscriptions, clock),
		subscription.NewUpdateSubscriptionUseCase(f.subscriptions),
		subscription.NewDeleteSubscriptionUseCase(f.subscriptions),
		subscription.NewUpcomingSubscriptionsUseCase(f.subscriptions, clock),
		7,
	)
	bill := NewBillingController(
		billingdate.NewGetNextBillingDateUseCase(f.cache, clock),
		billingdate.NewProjectBillingDatesUseCase(clock),
	)
	an := NewAnalyticsController(
		analytics.NewGetSummaryUseCase(f.subscriptions, clock),
		analytics.NewTotalByFrequencyUseCase(f.subscriptions, clock),
		analytics.NewCategoryBreakdownUseCase(f.subscriptions, clock),
		analytics.NewTopSubscriptionsUseCase(f.subscriptions, clock),
		5,
	)
	cat := NewCategoryController(
		category.NewListCategoriesUseCase(f.categories),
		category.NewCreateCategoryUseCase(f.categories),
		category.NewDeleteCategoryUseCase(f.categories, f.subscriptions),
	)
	notif := NewNotificationController(
		notification.NewListNotificationsUseCase(f.notifications),
		notification.NewMarkReadUseCase(f.notifications),
		notification.NewMarkAllReadUseCase(f.notifications),
		notification.NewDeleteNotificationUseCase(f.notifications),
	)
	set := NewSettingsController(
		settings.NewGetSettingsUseCase(f.settings),
		settings.NewUpdateSettingsUseCase(f.settings),
	)

	r := gin.New()
	r.POST("/rpc/get_next_billing_date", bill.GetNextBillingDate)
	r.POST("/rpc/project_billing_dates", bill.ProjectBillingDates)

	authed := r.Group("/", func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			c.Set(string(middleware.UserIDKey), f.userID)
			c.Set(string(middleware.UserEmailKey), "ana@example.com")
		}
		c.Next()
	})
	authed.GET("/subscriptions", subs.List)
	authed.POST("/subscriptions", subs.Create)
	authed.GET("/subscriptions/upcoming", subs.Upcoming)
	authed.GET("/subscriptions/:id", subs.Get)
	authed.PATCH("/subscriptions/:id", subs.Update)
	authed.DELETE("/subscriptions/:id", subs.Delete)
	authed.GET("/analytics/summary", an.Summary)
	authed.GET("/analytics/total", an.Total)
	authed.GET("/analytics/categories", an.Breakdown)
	authed.GET("/analytics/top", an.Top)
	authed.GET("/categories", cat.List)
	authed.POST("/categories", cat.Create)
	authed.DELETE("/categories/:id", cat.Delete)
	authed.GET("/notifications", notif.List)
	authed.POST("/notifications/read-all", notif.MarkAllRead)
	authed.POST("/notifications/:id/read", notif.MarkRead)
	authed.DELETE("/notifications/:id", notif.Delete)
	authed.GET("/settings", set.Get)
	authed.PATCH("/settings", set.Update)

	f.engine = r
	return f
}

func (f *fixture) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) seed(name, amount, date, period, category string) *entity.Subscription {
	d, _ := time.Parse("2006-01-02", date)
	s := entity.NewSubscription(f.userID, name, decimal.RequireFromString(amount), d, period)
	s.Category = category
	f.subscriptions.Subs[s.ID] = s
	return s
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSubscriptionController_CreateAndGet(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/subscriptions", map[string]any{
		"name":           "Netflix",
		"amount":         "39.9",
		"billing_date":   "2025-01-31",
		"renewal_period": "Mensal",
		"category":       "Streaming",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.SubscriptionResponse](t, w)
	assert.Equal(t, "39.90", created.Amount)
	assert.Equal(t, "2025-01-31", created.BillingDate)
	assert.Equal(t, "Mensal", created.RenewalPeriod)
	assert.True(t, created.Active)

	w = f.do(http.MethodGet, "/subscriptions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[dto.SubscriptionDetailResponse](t, w)
	assert.Equal(t, "monthly", detail.Period)
	assert.Equal(t, "2025-02-28", detail.NextBillingDate)
	assert.Equal(t, 18, detail.DaysUntil)
	assert.Equal(t, []string{"2025-02-28", "2025-03-31", "2025-04-30"}, detail.UpcomingDates)
}

func TestSubscriptionController_Errors(t *testing.T) {
	f := newFixture(t)
	other := entity.NewSubscription(uuid.New(), "Spotify", decimal.NewFromInt(20), testNow, "Mensal")
	f.subscriptions.Subs[other.ID] = other

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"negative amount", http.MethodPost, "/subscriptions", map[string]any{
			"name": "X", "amount": -1, "billing_date": "2025-01-01", "renewal_period": "Mensal",
		}, http.StatusBadRequest, string(domainerror.ErrCodeInvalidSubscriptionAmount)},
		{"bad date", http.MethodPost, "/subscriptions", map[string]any{
			"name": "X", "amount": 1, "billing_date": "31/01/2025", "renewal_period": "Mensal",
		}, http.StatusBadRequest, string(domainerror.ErrCodeInvalidSubscriptionDate)},
		{"missing fields", http.MethodPost, "/subscriptions", map[string]any{"name": "X"},
			http.StatusBadRequest, string(domainerror.ErrCodeMissingSubscriptionFields)},
		{"not found", http.MethodGet, "/subscriptions/" + uuid.NewString(), nil,
			http.StatusNotFound, string(domainerror.ErrCodeSubscriptionNotFound)},
		{"not owner", http.MethodDelete, "/subscriptions/" + other.ID.String(), nil,
			http.StatusForbidden, string(domainerror.ErrCodeUnauthorizedSubscription)},
		{"empty update", http.MethodPatch, "/subscriptions/" + other.ID.String(), map[string]any{},
			http.StatusBadRequest, string(domainerror.ErrCodeNoSubscriptionFieldsToSave)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, w).Code)
		})
	}

	t.Run("malformed id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/subscriptions/nope", nil).Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := f.do(http.MethodGet, "/subscriptions", nil, "X-Anonymous", "1")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeMissingToken), decode[dto.ErrorResponse](t, w).Code)
	})
}

func TestSubscriptionController_UpdateDeleteAndUpcoming(t *testing.T) {
	f := newFixture(t)
	netflix := f.seed("Netflix", "39.90", "2025-01-12", "Mensal", "Streaming")
	f.seed("Gym", "99.00", "2025-01-25", "Mensal", "Saúde e Bem-Estar")

	w := f.do(http.MethodPatch, "/subscriptions/"+netflix.ID.String(), map[string]any{"amount": "44.90"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "44.90", decode[dto.SubscriptionResponse](t, w).Amount)

	w = f.do(http.MethodGet, "/subscriptions/upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	upcoming := decode[dto.UpcomingResponse](t, w)
	assert.Equal(t, "2025-02-10", upcoming.Today)
	require.Len(t, upcoming.Charges, 1)
	assert.Equal(t, "Netflix", upcoming.Charges[0].Subscription.Name)
	assert.Equal(t, 2, upcoming.Charges[0].DaysUntil)

	w = f.do(http.MethodGet, "/subscriptions/upcoming?days=30", nil)
	assert.Len(t, decode[dto.UpcomingResponse](t, w).Charges, 2)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/subscriptions/upcoming?days=x", nil).Code)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/subscriptions/"+netflix.ID.String(), nil).Code)

	w = f.do(http.MethodGet, "/subscriptions", nil)
	assert.Len(t, decode[dto.SubscriptionListResponse](t, w).Subscriptions, 1)
}

func TestBillingController(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/rpc/get_next_billing_date", map[string]any{
		"initial_date":        "2024-01-31",
		"renewal_period_text": "Mensal",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	next := decode[dto.NextBillingDateResponse](t, w)
	assert.Equal(t, "2025-02-28", next.NextBillingDate)
	assert.Equal(t, "monthly", next.Period)
	assert.Equal(t, "2025-02-10", next.Today)
	assert.True(t, next.PeriodRecognized)

	w = f.do(http.MethodPost, "/rpc/get_next_billing_date", map[string]any{
		"initial_date":        "2025-01-15",
		"renewal_period_text": "Bimestral",
	})
	require.Equal(t, http.StatusOK, w.Code)
	fallback := decode[dto.NextBillingDateResponse](t, w)
	assert.Equal(t, "2025-02-15", fallback.NextBillingDate)
	assert.Equal(t, "monthly", fallback.Period)
	assert.False(t, fallback.PeriodRecognized)

	w = f.do(http.MethodPost, "/rpc/get_next_billing_date", map[string]any{
		"initial_date":        "2024-02-29",
		"renewal_period_text": "Anual",
		"today":               "2025-03-01",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-02-28", decode[dto.NextBillingDateResponse](t, w).NextBillingDate)

	w = f.do(http.MethodPost, "/rpc/get_next_billing_date", map[string]any{
		"initial_date":        "not-a-date",
		"renewal_period_text": "Mensal",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidDate), decode[dto.ErrorResponse](t, w).Code)

	w = f.do(http.MethodPost, "/rpc/get_next_billing_date", map[string]any{"renewal_period_text": "Mensal"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeMissingBillingField), decode[dto.ErrorResponse](t, w).Code)

	w = f.do(http.MethodPost, "/rpc/project_billing_dates", map[string]any{
		"initial_date":        "2025-02-01",
		"renewal_period_text": "Semanal",
		"count":               2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"2025-02-15", "2025-02-22"}, decode[dto.ProjectBillingDatesResponse](t, w).Dates)

	w = f.do(http.MethodPost, "/rpc/project_billing_dates", map[string]any{
		"initial_date":        "2025-02-01",
		"renewal_period_text": "Semanal",
		"count":               1000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidCount), decode[dto.ErrorResponse](t, w).Code)
}

func TestAnalyticsController(t *testing.T) {
	f := newFixture(t)
	f.seed("Netflix", "39.90", "2025-01-05", "Mensal", "Streaming")
	f.seed("Domain", "120.00", "2024-06-01", "Anual", "Utilitários")

	w := f.do(http.MethodGet, "/analytics/summary", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decode[dto.SummaryResponse](t, w)
	assert.Equal(t, "49.90", summary.Monthly)
	assert.Equal(t, "598.80", summary.Yearly)
	assert.Equal(t, 2, summary.ActiveCount)

	w = f.do(http.MethodGet, "/analytics/total?frequency=yearly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "598.80", decode[dto.TotalResponse](t, w).Total)

	w = f.do(http.MethodGet, "/analytics/total?frequency=fortnightly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidFrequency), decode[dto.ErrorResponse](t, w).Code)

	w = f.do(http.MethodGet, "/analytics/summary?reference_date=2025-13-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/analytics/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	breakdown := decode[dto.CategoryBreakdownResponse](t, w)
	require.Len(t, breakdown.Categories, 2)
	assert.Equal(t, "Streaming", breakdown.Categories[0].Category)
	assert.Equal(t, "79.96", breakdown.Categories[0].Percentage)

	w = f.do(http.MethodGet, "/analytics/top?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	top := decode[dto.TopSubscriptionsResponse](t, w)
	require.Len(t, top.Subscriptions, 1)
	assert.Equal(t, "Netflix", top.Subscriptions[0].Subscription.Name)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/analytics/top?limit=0", nil).Code)
}

func TestCategoryController(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[dto.CategoryListResponse](t, w).Categories, len(entity.DefaultCategories))

	w = f.do(http.MethodPost, "/categories", map[string]any{"name": "Academia"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.CategoryResponse](t, w)
	require.NotNil(t, created.ID)

	w = f.do(http.MethodPost, "/categories", map[string]any{"name": "streaming"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeCategoryNameExists), decode[dto.ErrorResponse](t, w).Code)

	f.seed("Smart Fit", "99.90", "2025-01-01", "Mensal", "Academia")
	w = f.do(http.MethodDelete, "/categories/"+*created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	deleted := decode[dto.DeleteCategoryResponse](t, w)
	assert.Equal(t, int64(1), deleted.ReassignedCount)
	assert.Equal(t, entity.FallbackCategory, deleted.ReassignedTo)

	w = f.do(http.MethodDelete, "/categories/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationController(t *testing.T) {
	f := newFixture(t)
	mine := entity.NewNotification(f.userID, nil, "Renovação Hoje", "Netflix")
	theirs := entity.NewNotification(uuid.New(), nil, "Renovação Hoje", "Spotify")
	f.notifications.Notifications[mine.ID] = mine
	f.notifications.Notifications[theirs.ID] = theirs

	w := f.do(http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.NotificationListResponse](t, w)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, int64(1), list.UnreadCount)

	w = f.do(http.MethodPost, "/notifications/"+theirs.ID.String()+"/read", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeUnauthorizedNotification), decode[dto.ErrorResponse](t, w).Code)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodPost, "/notifications/"+mine.ID.String()+"/read", nil).Code)
	assert.True(t, f.notifications.Notifications[mine.ID].IsRead)

	w = f.do(http.MethodPost, "/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decode[dto.MarkAllReadResponse](t, w).Updated)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/notifications/"+mine.ID.String(), nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/notifications/"+mine.ID.String(), nil).Code)
}

func TestSettingsController(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.SettingsResponse](t, w)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, entity.DefaultReminderDays, got.ReminderDays)
	assert.Equal(t, "BRL", got.Currency)

	w = f.do(http.MethodPatch, "/settings", map[string]any{"reminder_days": 7, "currency": "usd", "theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[dto.SettingsResponse](t, w)
	assert.Equal(t, 7, got.ReminderDays)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "dark", got.Theme)

	w = f.do(http.MethodPatch, "/settings", map[string]any{"reminder_days": 40})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidReminderDays), decode[dto.ErrorResponse](t, w).Code)

	w = f.do(http.MethodPatch, "/settings", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeMissingSettingsFields), decode[dto.ErrorResponse](t, w).Code)
}

func TestHealthController(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("down") }

	run := func(checks ...HealthCheck) (*httptest.ResponseRecorder, HealthResponse) {
		r := gin.New()
		r.GET("/health", NewHealthController(checks...).Check)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		var body HealthResponse
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		return w, body
	}

	w, body := run(HealthCheck{Name: "database", Probe: ok}, HealthCheck{Name: "redis", Optional: true, Probe: down})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "disconnected", body.Dependencies["redis"])

	w, body = run(HealthCheck{Name: "database", Probe: down})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", body.Status)
}
