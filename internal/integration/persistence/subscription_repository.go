// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/persistence/model"
)

// subscriptionRepository implements the adapter.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance.
func NewSubscriptionRepository(db *gorm.DB) adapter.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create stores a new subscription.
func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	result := r.db.WithContext(ctx).Create(model.SubscriptionFromEntity(subscription))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a subscription by its ID.
func (r *subscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	var subscriptionModel model.SubscriptionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&subscriptionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSubscriptionNotFound
		}
		return nil, result.Error
	}
	return subscriptionModel.ToEntity(), nil
}

// FindByUserID retrieves every subscription of a user, ordered by name.
func (r *subscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindActiveByUserID retrieves the active subscriptions of a user, ordered by name.
func (r *subscriptionRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ? AND active = ?", userID, true))
}

func (r *subscriptionRepository) find(query *gorm.DB) ([]*entity.Subscription, error) {
	var models []model.SubscriptionModel
	result := query.Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	subscriptions := make([]*entity.Subscription, len(models))
	for i := range models {
		subscriptions[i] = models[i].ToEntity()
	}
	return subscriptions, nil
}

// UpdateFields writes the set fields of a subscription.
func (r *subscriptionRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields entity.SubscriptionFields) error {
	result := r.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("id = ?", id).
		Updates(model.SubscriptionFieldsToColumns(fields))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSubscriptionNotFound
	}
	return nil
}

// Delete removes a subscription by its ID.
func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SubscriptionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSubscriptionNotFound
	}
	return nil
}

// ReassignCategory moves every subscription of a user from one category to another.
func (r *subscriptionRepository) ReassignCategory(ctx context.Context, userID uuid.UUID, from, to string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("user_id = ? AND category = ?", userID, from).
		Update("category", to)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
