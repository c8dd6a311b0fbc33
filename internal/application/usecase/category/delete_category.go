package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryOutput reports how many subscriptions were moved to the fallback category.
type DeleteCategoryOutput struct {
	ReassignedCount int64
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo     adapter.CategoryRepository
	subscriptionRepo adapter.SubscriptionRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	subscriptionRepo adapter.SubscriptionRepository,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:     categoryRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute deletes a custom category and moves its subscriptions to "Outro".
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"you are not authorized to delete this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	if entity.IsDefaultCategory(category.Name) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeDefaultCategoryProtected,
			"default categories cannot be deleted",
			domainerror.ErrDefaultCategoryProtected,
		)
	}

	reassigned, err := uc.subscriptionRepo.ReassignCategory(ctx, input.UserID, category.Name, entity.FallbackCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to reassign subscriptions: %w", err)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{
		ReassignedCount: reassigned,
	}, nil
}
