package dto

import (
	"time"

	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// UpdateSettingsRequest represents the request body for a settings update.
type UpdateSettingsRequest struct {
	NotificationEnabled *bool   `json:"notification_enabled,omitempty"`
	ReminderDays        *int    `json:"reminder_days,omitempty"`
	Currency            *string `json:"currency,omitempty"`
	Theme               *string `json:"theme,omitempty"`
	BackupEnabled       *bool   `json:"backup_enabled,omitempty"`
	PushToken           *string `json:"push_token,omitempty"`
	Email               *string `json:"email,omitempty" binding:"omitempty,email"`
	FullName            *string `json:"full_name,omitempty" binding:"omitempty,max=100"`
}

// SettingsResponse represents user settings in API responses.
type SettingsResponse struct {
	UserID              string    `json:"user_id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name"`
	NotificationEnabled bool      `json:"notification_enabled"`
	ReminderDays        int       `json:"reminder_days"`
	Theme               string    `json:"theme"`
	Currency            string    `json:"currency"`
	BackupEnabled       bool      `json:"backup_enabled"`
	HasPushToken        bool      `json:"has_push_token"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToSettingsResponse converts a domain UserSettings entity.
func ToSettingsResponse(s *entity.UserSettings) SettingsResponse {
	return SettingsResponse{
		UserID:              s.UserID.String(),
		Email:               s.Email,
		FullName:            s.FullName,
		NotificationEnabled: s.NotificationEnabled,
		ReminderDays:        s.ReminderDays,
		Theme:               string(s.Theme),
		Currency:            s.Currency,
		BackupEnabled:       s.BackupEnabled,
		HasPushToken:        s.PushToken != "",
		UpdatedAt:           s.UpdatedAt,
	}
}
