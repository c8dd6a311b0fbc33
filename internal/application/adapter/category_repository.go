package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for custom category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUserID retrieves the custom categories of a user, ordered by name.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByName checks, case-insensitively, whether the user already has a category with this name.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
