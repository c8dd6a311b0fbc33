package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/email/templates"
)

var netflixID = uuid.MustParse("5f0c1a4e-8a34-4a55-9d6e-2b1f1c9b7a01")

func reminderInput(days int) adapter.QueueSubscriptionReminderInput {
	return adapter.QueueSubscriptionReminderInput{
		SubscriptionID:   netflixID,
		UserEmail:        "ana@example.com",
		UserName:         "Ana",
		SubscriptionName: "Netflix",
		Amount:           decimal.RequireFromString("39.9"),
		Currency:         "BRL",
		BillingDate:      time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
		DaysUntil:        days,
		PeriodLabel:      "Mensal",
	}
}

func onlyJob(t *testing.T, queue *adaptertest.EmailQueueRepository) *entity.EmailJob {
	t.Helper()
	require.Len(t, queue.Jobs, 1)
	for _, j := range queue.Jobs {
		return j
	}
	return nil
}

func TestService_QueueSubscriptionReminder(t *testing.T) {
	queue := adaptertest.NewEmailQueueRepository()
	svc := NewService(queue, "https://app.example.com/")

	require.NoError(t, svc.QueueSubscriptionReminder(context.Background(), reminderInput(2)))

	job := onlyJob(t, queue)
	assert.Equal(t, entity.TemplateSubscriptionReminder, job.TemplateType)
	assert.Equal(t, entity.EmailStatusPending, job.Status)
	assert.Equal(t, "Lembrete: Netflix renova em 2 dias", job.Subject)
	assert.Equal(t, "R$ 39.90", job.StringData("amount"))
	assert.Equal(t, "12/02/2025", job.StringData("billing_date"))
	assert.Equal(t, "2", job.StringData("days_until"))
	assert.Equal(t, "https://app.example.com", job.StringData("app_url"))
}

func TestService_QueuesOneReminderPerCharge(t *testing.T) {
	ctx := context.Background()
	queue := adaptertest.NewEmailQueueRepository()
	svc := NewService(queue, "")

	require.NoError(t, svc.QueueSubscriptionReminder(ctx, reminderInput(2)))
	assert.Equal(t, entity.ReminderDedupKey(netflixID, "ana@example.com", time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)), onlyJob(t, queue).DedupKey)

	// A later run for the same charge, one day closer.
	err := svc.QueueSubscriptionReminder(ctx, reminderInput(1))
	assert.ErrorIs(t, err, domainerror.ErrReminderAlreadyQueued)
	assert.Len(t, queue.Jobs, 1)

	// The next charge is a different email.
	next := reminderInput(2)
	next.BillingDate = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.QueueSubscriptionReminder(ctx, next))
	assert.Len(t, queue.Jobs, 2)
}

func TestService_RequeuesAfterFailedDelivery(t *testing.T) {
	ctx := context.Background()
	queue := adaptertest.NewEmailQueueRepository()
	svc := NewService(queue, "")

	require.NoError(t, svc.QueueSubscriptionReminder(ctx, reminderInput(2)))
	onlyJob(t, queue).MarkFailed(errors.New("422 invalid to"), true)

	require.NoError(t, svc.QueueSubscriptionReminder(ctx, reminderInput(1)))
	assert.Len(t, queue.Jobs, 2)
}

func TestService_RejectsMissingRecipient(t *testing.T) {
	queue := adaptertest.NewEmailQueueRepository()
	input := reminderInput(0)
	input.UserEmail = " "

	err := NewService(queue, "").QueueSubscriptionReminder(context.Background(), input)
	assert.ErrorIs(t, err, domainerror.ErrMissingRecipient)
	assert.Empty(t, queue.Jobs)
}

func TestReminderSubject(t *testing.T) {
	assert.Equal(t, "Lembrete: Spotify renova hoje", reminderSubject("Spotify", 0))
	assert.Equal(t, "Lembrete: Spotify renova amanhã", reminderSubject("Spotify", 1))
	assert.Equal(t, "Lembrete: Spotify renova em 5 dias", reminderSubject("Spotify", 5))
}

func newTestWorker(t *testing.T, queue *adaptertest.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorker_SendsQueuedReminder(t *testing.T) {
	ctx := context.Background()
	queue := adaptertest.NewEmailQueueRepository()
	sender := NewMockEmailSender()
	require.NoError(t, NewService(queue, "").QueueSubscriptionReminder(ctx, reminderInput(2)))

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "Netflix")
	assert.Contains(t, sent[0].Text, "R$ 39.90")

	job := onlyJob(t, queue)
	assert.Equal(t, entity.EmailStatusSent, job.Status)
	assert.Equal(t, "mock-1", job.ResendID)
	assert.NotNil(t, job.ProcessedAt)
}

func TestWorker_TemporaryFailureIsRetried(t *testing.T) {
	ctx := context.Background()
	queue := adaptertest.NewEmailQueueRepository()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("503 service unavailable"), false)
	require.NoError(t, NewService(queue, "").QueueSubscriptionReminder(ctx, reminderInput(1)))

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	job := onlyJob(t, queue)
	assert.Equal(t, entity.EmailStatusPending, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.True(t, job.ScheduledAt.After(time.Now().UTC()))
}

func TestWorker_PermanentFailureStops(t *testing.T) {
	ctx := context.Background()
	queue := adaptertest.NewEmailQueueRepository()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("422 validation error"), true)
	require.NoError(t, NewService(queue, "").QueueSubscriptionReminder(ctx, reminderInput(1)))

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	job := onlyJob(t, queue)
	assert.Equal(t, entity.EmailStatusFailed, job.Status)
	assert.Equal(t, 1, job.Attempts)
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	ctx := context.Background()
	queue := adaptertest.NewEmailQueueRepository()
	sender := NewMockEmailSender()
	job := entity.NewEmailJob("password_reset", "ana@example.com", "Ana", "Reset", nil)
	require.NoError(t, queue.Create(ctx, job))

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	assert.Equal(t, entity.EmailStatusFailed, job.Status)
	assert.Empty(t, sender.Sent())
}

func TestWorker_PurgesOldSentJobs(t *testing.T) {
	ctx := context.Background()
	queue := adaptertest.NewEmailQueueRepository()
	old := entity.NewEmailJob(entity.TemplateSubscriptionReminder, "a@example.com", "", "s", nil)
	old.MarkSent("r-1")
	processed := time.Now().UTC().AddDate(0, 0, -45)
	old.ProcessedAt = &processed
	recent := entity.NewEmailJob(entity.TemplateSubscriptionReminder, "b@example.com", "", "s", nil)
	recent.MarkSent("r-2")
	require.NoError(t, queue.Create(ctx, old))
	require.NoError(t, queue.Create(ctx, recent))

	w := newTestWorker(t, queue, NewMockEmailSender())
	w.tick(ctx)

	assert.Len(t, queue.Jobs, 1)
	assert.Contains(t, queue.Jobs, recent.ID)
}

func TestIsPermanentError(t *testing.T) {
	assert.True(t, isPermanentError(errors.New("401 Unauthorized")))
	assert.True(t, isPermanentError(errors.New("validation_error: invalid `to` field")))
	assert.False(t, isPermanentError(errors.New("429 rate limit exceeded")))
	assert.False(t, isPermanentError(nil))
}

func TestResendClient_SendsThroughBaseURL(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_123"}`))
	}))
	defer server.Close()

	client := NewResendClient("re_key", "Subscription Tracker", "noreply@example.com")
	require.NoError(t, client.SetBaseURL(server.URL))

	res, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "ana@example.com",
		Name:    "Ana",
		Subject: "Lembrete: Netflix renova amanhã",
		HTML:    "<p>oi</p>",
		Text:    "oi",
	})
	require.NoError(t, err)
	assert.Equal(t, "re_123", res.ResendID)
	assert.Equal(t, "Subscription Tracker <noreply@example.com>", got["from"])
	assert.Equal(t, []any{"Ana <ana@example.com>"}, got["to"])
	assert.Equal(t, "Lembrete: Netflix renova amanhã", got["subject"])
}

func TestResendClient_ClassifiesFailures(t *testing.T) {
	status := http.StatusUnprocessableEntity
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusUnprocessableEntity {
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
			return
		}
		_, _ = w.Write([]byte(`{"statusCode":503,"name":"application_error","message":"try again later"}`))
	}))
	defer server.Close()

	client := NewResendClient("re_key", "Subscription Tracker", "noreply@example.com")
	require.NoError(t, client.SetBaseURL(server.URL+"/"))

	_, err := client.Send(context.Background(), adapter.SendEmailInput{To: "bad", Subject: "x", HTML: "x"})
	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.True(t, emailErr.IsPermanent())

	status = http.StatusServiceUnavailable
	_, err = client.Send(context.Background(), adapter.SendEmailInput{To: "ana@example.com", Subject: "x", HTML: "x"})
	require.ErrorAs(t, err, &emailErr)
	assert.Equal(t, domainerror.ErrCodeTemporaryEmailFailure, emailErr.Code)
}

func TestResendClient_RejectsBadBaseURL(t *testing.T) {
	client := NewResendClient("re_key", "n", "e@example.com")
	assert.Error(t, client.SetBaseURL("not a url"))
}
