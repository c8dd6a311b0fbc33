package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_SubscriptionReminder(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, text, err := r.Render("subscription_reminder", ReminderData{
		UserName:         "Ana",
		SubscriptionName: "Netflix <HD>",
		Amount:           "R$ 39.90",
		BillingDate:      "12/02/2025",
		DaysUntil:        "2",
		PeriodLabel:      "Mensal",
		AppURL:           "https://app.example.com",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Netflix &lt;HD&gt;")
	assert.Contains(t, html, "R$ 39.90")
	assert.Contains(t, html, "Renovação em 2 dia(s)")
	assert.Contains(t, html, `href="https://app.example.com"`)

	assert.Contains(t, text, "Olá, Ana!")
	assert.Contains(t, text, "Netflix <HD> será cobrada em 12/02/2025")
	assert.Contains(t, text, "Frequência: Mensal")
}

func TestRenderer_ReminderDueToday(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, text, err := r.Render("subscription_reminder", ReminderData{
		SubscriptionName: "Spotify",
		Amount:           "R$ 21.90",
		BillingDate:      "10/02/2025",
		DaysUntil:        "0",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Renovação hoje")
	assert.Contains(t, text, "Olá!")
	assert.Contains(t, text, "Spotify é renovada hoje")
	assert.NotContains(t, text, "Frequência")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, _, err = r.Render("password_reset", ReminderData{})
	assert.Error(t, err)
}
