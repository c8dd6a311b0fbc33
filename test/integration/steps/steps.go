package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	"github.com/subscription-tracker/backend/internal/integration/adapters"
	"github.com/subscription-tracker/backend/internal/integration/persistence"
)

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// User setup steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^my reminders are sent (\d+) days? ahead$`, test.myRemindersAreSentDaysAhead)
	ctx.Given(`^my notifications are disabled$`, test.myNotificationsAreDisabled)

	// Data setup steps
	ctx.Given(`^I have the following subscriptions:$`, test.iHaveTheFollowingSubscriptions)

	// External API steps
	ctx.Given(`^the email provider answers with status (\d+)$`, test.theEmailProviderAnswersWithStatus)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I remember the response field "([^"]*)" as "([^"]*)"$`, test.iRememberTheResponseFieldAs)

	// Background job steps
	ctx.When(`^the reminder job runs$`, test.theReminderJobRuns)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Side effect assertion steps
	ctx.Then(`^the email provider should have received (\d+) requests?$`, test.theEmailProviderShouldHaveReceivedRequests)
	ctx.Then(`^the email provider request (\d+) field "([^"]*)" should be "([^"]*)"$`, test.theEmailProviderRequestFieldShouldBe)
	ctx.Then(`^the billing cache should contain (\d+) keys?$`, test.theBillingCacheShouldContainKeys)
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("test server is not running: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (t *testContext) todayIs(date string) error {
	d, err := billing.ParseDate(date)
	if err != nil {
		return err
	}
	t.clock.Set(d.Add(9 * time.Hour))
	return nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	userID, ok := t.users[email]
	if !ok {
		userID = uuid.New()
		t.users[email] = userID
	}
	t.currentUser = userID

	token, err := adapters.IssueAccessToken(testJWTSecret, userID, email, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	t.vars["user_id"] = userID.String()
	return nil
}

// settings loads the current user's settings, creating the defaults on first use.
func (t *testContext) settings(ctx context.Context) (*entity.UserSettings, error) {
	if t.currentUser == uuid.Nil {
		return nil, errors.New("no user is logged in")
	}
	repo := persistence.NewUserSettingsRepository(t.db.DbConn)
	s, err := repo.FindByUserID(ctx, t.currentUser)
	if err == nil {
		return s, nil
	}

	email := ""
	for e, id := range t.users {
		if id == t.currentUser {
			email = e
		}
	}
	return entity.NewUserSettings(t.currentUser, email), nil
}

func (t *testContext) saveSettings(update func(*entity.UserSettings)) error {
	ctx := context.Background()
	s, err := t.settings(ctx)
	if err != nil {
		return err
	}
	update(s)
	return persistence.NewUserSettingsRepository(t.db.DbConn).Save(ctx, s)
}

func (t *testContext) myRemindersAreSentDaysAhead(days int) error {
	return t.saveSettings(func(s *entity.UserSettings) {
		s.NotificationEnabled = true
		s.ReminderDays = days
	})
}

func (t *testContext) myNotificationsAreDisabled() error {
	return t.saveSettings(func(s *entity.UserSettings) {
		s.NotificationEnabled = false
	})
}

// iHaveTheFollowingSubscriptions inserts one subscription per table row.
// Columns: name, amount, billing_date, renewal_period and optionally
// category and active.
func (t *testContext) iHaveTheFollowingSubscriptions(table *godog.Table) error {
	if t.currentUser == uuid.Nil {
		return errors.New("no user is logged in")
	}
	if len(table.Rows) < 2 {
		return errors.New("subscription table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	repo := persistence.NewSubscriptionRepository(t.db.DbConn)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i]] = cell.Value
		}

		amount, err := decimal.NewFromString(values["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", values["amount"], err)
		}
		date, err := billing.ParseDate(values["billing_date"])
		if err != nil {
			return err
		}

		sub := entity.NewSubscription(t.currentUser, values["name"], amount, date, values["renewal_period"])
		sub.Category = values["category"]
		if active, ok := values["active"]; ok && active != "" {
			sub.Active, err = strconv.ParseBool(active)
			if err != nil {
				return fmt.Errorf("invalid active flag %q: %w", active, err)
			}
		}

		if err := repo.Create(context.Background(), sub); err != nil {
			return err
		}
		t.vars["subscription:"+sub.Name] = sub.ID.String()
	}
	return nil
}

func (t *testContext) theEmailProviderAnswersWithStatus(status int) error {
	body := map[string]any{"id": "re_" + uuid.NewString()}
	switch {
	case status == http.StatusUnprocessableEntity:
		body = map[string]any{"statusCode": status, "name": "validation_error", "message": "Invalid `to` field"}
	case status >= 400:
		body = map[string]any{"statusCode": status, "name": "application_error", "message": "try again later"}
	}
	t.resend.SetResponse(-1, http.MethodPost, resendEmailPath, status, body)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iRememberTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.vars[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with remembered values.
func (t *testContext) replacePlaceholders(content string) string {
	for name, value := range t.vars {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = parsed

	if id, ok := parsed["id"].(string); ok {
		t.vars["last_id"] = id
	}
	return nil
}

func (t *testContext) theReminderJobRuns() error {
	_, err := t.injector.Reminders.Execute(context.Background())
	return err
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	if actual := fmt.Sprintf("%v", value); actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) countRows(table string, criteria map[string]any) (int, error) {
	m, ok := t.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(m).Elem()
	rows := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(rows.Interface()).Error; err != nil {
		return 0, err
	}
	return rows.Elem().Len(), nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.countRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := t.countRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceivedRequests(count int) error {
	got := len(t.resend.Requests(http.MethodPost, resendEmailPath))
	if got != count {
		return fmt.Errorf("expected %d email requests, got %d", count, got)
	}
	return nil
}

func (t *testContext) theEmailProviderRequestFieldShouldBe(index int, field, expected string) error {
	body := t.resend.GetRequestBody(http.MethodPost, resendEmailPath, index-1)
	if body == nil {
		return fmt.Errorf("email request %d was not received", index)
	}
	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in email request: %v", field, body)
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("email field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theBillingCacheShouldContainKeys(count int) error {
	keys, err := t.redis.Keys("billing:next:*")
	if err != nil {
		return err
	}
	if len(keys) != count {
		return fmt.Errorf("expected %d cached billing dates, got %d (%v)", count, len(keys), keys)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, part := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(part); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[part]
	}
	return field
}
