package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// UpdateSettingsInput represents the input for a partial settings update.
type UpdateSettingsInput struct {
	UserID              uuid.UUID
	TokenEmail          string
	NotificationEnabled *bool
	ReminderDays        *int
	Currency            *string
	Theme               *string
	BackupEnabled       *bool
	PushToken           *string
	Email               *string
	FullName            *string
}

func (in UpdateSettingsInput) isEmpty() bool {
	return in.NotificationEnabled == nil && in.ReminderDays == nil && in.Currency == nil &&
		in.Theme == nil && in.BackupEnabled == nil && in.PushToken == nil &&
		in.Email == nil && in.FullName == nil
}

// UpdateSettingsOutput represents the output of a settings update.
type UpdateSettingsOutput struct {
	Settings *entity.UserSettings
}

// UpdateSettingsUseCase handles settings updates.
type UpdateSettingsUseCase struct {
	settingsRepo adapter.UserSettingsRepository
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(settingsRepo adapter.UserSettingsRepository) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

// Execute validates and applies the update.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input.isEmpty() {
		return nil, domainerror.NewNotificationError(
			domainerror.ErrCodeMissingSettingsFields,
			"at least one field must be provided",
			nil,
		)
	}

	if input.ReminderDays != nil && (*input.ReminderDays < 0 || *input.ReminderDays > entity.MaxReminderDays) {
		return nil, domainerror.NewNotificationError(
			domainerror.ErrCodeInvalidReminderDays,
			fmt.Sprintf("reminder_days must be between 0 and %d", entity.MaxReminderDays),
			domainerror.ErrInvalidReminderDays,
		)
	}

	var currency string
	if input.Currency != nil {
		currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
		if !entity.IsSupportedCurrency(currency) {
			return nil, domainerror.NewNotificationError(
				domainerror.ErrCodeUnsupportedCurrency,
				fmt.Sprintf("currency must be one of %s", strings.Join(entity.SupportedCurrencies, ", ")),
				domainerror.ErrUnsupportedCurrency,
			)
		}
	}

	if input.Theme != nil {
		theme := entity.Theme(*input.Theme)
		if theme != entity.ThemeLight && theme != entity.ThemeDark {
			return nil, domainerror.NewNotificationError(
				domainerror.ErrCodeInvalidTheme,
				"theme must be 'light' or 'dark'",
				domainerror.ErrInvalidTheme,
			)
		}
	}

	settings, err := loadOrCreate(ctx, uc.settingsRepo, input.UserID, input.TokenEmail)
	if err != nil {
		return nil, err
	}

	if input.NotificationEnabled != nil {
		settings.NotificationEnabled = *input.NotificationEnabled
	}
	if input.ReminderDays != nil {
		settings.ReminderDays = *input.ReminderDays
	}
	if input.Currency != nil {
		settings.Currency = currency
	}
	if input.Theme != nil {
		settings.Theme = entity.Theme(*input.Theme)
	}
	if input.BackupEnabled != nil {
		settings.BackupEnabled = *input.BackupEnabled
	}
	if input.PushToken != nil {
		settings.PushToken = *input.PushToken
	}
	if input.Email != nil {
		settings.Email = strings.TrimSpace(*input.Email)
	}
	if input.FullName != nil {
		settings.FullName = strings.TrimSpace(*input.FullName)
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := uc.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save user settings: %w", err)
	}

	return &UpdateSettingsOutput{Settings: settings}, nil
}
