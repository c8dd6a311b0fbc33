package entity

import (
	"time"

	"github.com/google/uuid"
)

// Theme is the app color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	// DefaultReminderDays is how many days ahead reminders are sent.
	DefaultReminderDays = 3
	// MaxReminderDays bounds the reminder lead time.
	MaxReminderDays = 30
	// DefaultCurrency is the currency code new users start with.
	DefaultCurrency = "BRL"
)

// SupportedCurrencies lists the currency codes users may pick.
var SupportedCurrencies = []string{"BRL", "USD", "EUR", "GBP", "JPY", "CAD", "AUD", "ARS", "CLP", "MXN"}

// UserSettings holds per-user preferences for reminders and display.
type UserSettings struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Email               string
	FullName            string
	NotificationEnabled bool
	ReminderDays        int
	Theme               Theme
	Currency            string
	BackupEnabled       bool
	PushToken           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewUserSettings creates settings with the defaults applied.
func NewUserSettings(userID uuid.UUID, email string) *UserSettings {
	now := time.Now().UTC()

	return &UserSettings{
		ID:                  uuid.New(),
		UserID:              userID,
		Email:               email,
		NotificationEnabled: true,
		ReminderDays:        DefaultReminderDays,
		Theme:               ThemeLight,
		Currency:            DefaultCurrency,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// IsSupportedCurrency reports whether code is in SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
