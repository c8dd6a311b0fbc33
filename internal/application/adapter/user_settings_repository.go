package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// UserSettingsRepository defines the interface for user settings persistence operations.
type UserSettingsRepository interface {
	// FindByUserID retrieves the settings of a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)

	// Save inserts or updates the settings of a user.
	Save(ctx context.Context, settings *entity.UserSettings) error

	// FindWithNotificationsEnabled retrieves every user that wants reminders.
	FindWithNotificationsEnabled(ctx context.Context) ([]*entity.UserSettings, error)
}
