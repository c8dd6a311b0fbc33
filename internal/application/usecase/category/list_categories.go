// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
}

// CategoryItem is a category as shown to a user.
type CategoryItem struct {
	ID        *uuid.UUID // Nil for default categories
	Name      string
	IsDefault bool
	Color     string
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []CategoryItem
}

// ListCategoriesUseCase handles listing default and custom categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute returns the union of default and custom categories in Portuguese collation order.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	custom, err := uc.categoryRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	byName := make(map[string]CategoryItem, len(entity.DefaultCategories)+len(custom))
	names := make([]string, 0, len(entity.DefaultCategories)+len(custom))
	for _, name := range entity.DefaultCategories {
		byName[name] = CategoryItem{Name: name, IsDefault: true, Color: billing.CategoryColor(name)}
		names = append(names, name)
	}
	for _, c := range custom {
		if _, exists := byName[c.Name]; exists {
			continue
		}
		id := c.ID
		byName[c.Name] = CategoryItem{ID: &id, Name: c.Name, Color: billing.CategoryColor(c.Name)}
		names = append(names, c.Name)
	}

	collate.New(language.BrazilianPortuguese, collate.IgnoreCase).SortStrings(names)

	items := make([]CategoryItem, 0, len(names))
	for _, name := range names {
		items = append(items, byName[name])
	}

	return &ListCategoriesOutput{
		Categories: items,
	}, nil
}
