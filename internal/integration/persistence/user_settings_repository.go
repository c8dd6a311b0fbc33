package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/persistence/model"
)

// userSettingsRepository implements the adapter.UserSettingsRepository interface.
type userSettingsRepository struct {
	db *gorm.DB
}

// NewUserSettingsRepository creates a new user settings repository instance.
func NewUserSettingsRepository(db *gorm.DB) adapter.UserSettingsRepository {
	return &userSettingsRepository{
		db: db,
	}
}

// FindByUserID retrieves the settings of a user.
func (r *userSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	var settingsModel model.UserSettingsModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSettingsNotFound
		}
		return nil, result.Error
	}
	return settingsModel.ToEntity(), nil
}

// Save inserts the settings or overwrites the existing row of the same user.
func (r *userSettingsRepository) Save(ctx context.Context, settings *entity.UserSettings) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "full_name", "notification_enabled", "reminder_days",
				"theme", "currency", "backup_enabled", "push_token", "updated_at",
			}),
		}).
		Create(model.UserSettingsFromEntity(settings))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindWithNotificationsEnabled retrieves every user that wants reminders.
func (r *userSettingsRepository) FindWithNotificationsEnabled(ctx context.Context) ([]*entity.UserSettings, error) {
	var models []model.UserSettingsModel
	result := r.db.WithContext(ctx).
		Where("notification_enabled = ?", true).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	settings := make([]*entity.UserSettings, len(models))
	for i := range models {
		settings[i] = models[i].ToEntity()
	}
	return settings, nil
}
