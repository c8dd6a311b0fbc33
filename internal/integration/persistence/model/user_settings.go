package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// UserSettingsModel represents the user_settings table in the database.
type UserSettingsModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Email               string    `gorm:"type:varchar(255)"`
	FullName            string    `gorm:"type:varchar(255)"`
	NotificationEnabled bool      `gorm:"not null;default:true;index"`
	ReminderDays        int       `gorm:"not null;default:3"`
	Theme               string    `gorm:"type:varchar(10);not null;default:'light'"`
	Currency            string    `gorm:"type:varchar(3);not null;default:'BRL'"`
	BackupEnabled       bool      `gorm:"not null;default:false"`
	PushToken           string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserSettingsModel.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToEntity converts a UserSettingsModel to a domain UserSettings entity.
func (m *UserSettingsModel) ToEntity() *entity.UserSettings {
	return &entity.UserSettings{
		ID:                  m.ID,
		UserID:              m.UserID,
		Email:               m.Email,
		FullName:            m.FullName,
		NotificationEnabled: m.NotificationEnabled,
		ReminderDays:        m.ReminderDays,
		Theme:               entity.Theme(m.Theme),
		Currency:            m.Currency,
		BackupEnabled:       m.BackupEnabled,
		PushToken:           m.PushToken,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// UserSettingsFromEntity creates a UserSettingsModel from a domain UserSettings entity.
func UserSettingsFromEntity(s *entity.UserSettings) *UserSettingsModel {
	return &UserSettingsModel{
		ID:                  s.ID,
		UserID:              s.UserID,
		Email:               s.Email,
		FullName:            s.FullName,
		NotificationEnabled: s.NotificationEnabled,
		ReminderDays:        s.ReminderDays,
		Theme:               string(s.Theme),
		Currency:            s.Currency,
		BackupEnabled:       s.BackupEnabled,
		PushToken:           s.PushToken,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
