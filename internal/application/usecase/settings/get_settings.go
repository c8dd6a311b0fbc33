// Package settings contains user settings use cases.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// GetSettingsInput represents the input for reading user settings.
type GetSettingsInput struct {
	UserID uuid.UUID
	Email  string // Taken from the access token, used when creating defaults
}

// GetSettingsOutput represents the output of reading user settings.
type GetSettingsOutput struct {
	Settings *entity.UserSettings
}

// GetSettingsUseCase returns a user's settings, creating defaults on first access.
type GetSettingsUseCase struct {
	settingsRepo adapter.UserSettingsRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingsRepo adapter.UserSettingsRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

// Execute returns the settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*GetSettingsOutput, error) {
	settings, err := loadOrCreate(ctx, uc.settingsRepo, input.UserID, input.Email)
	if err != nil {
		return nil, err
	}
	return &GetSettingsOutput{Settings: settings}, nil
}

func loadOrCreate(ctx context.Context, repo adapter.UserSettingsRepository, userID uuid.UUID, email string) (*entity.UserSettings, error) {
	settings, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domainerror.ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to find user settings: %w", err)
	}

	settings = entity.NewUserSettings(userID, email)
	if err := repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to create user settings: %w", err)
	}
	return settings, nil
}
