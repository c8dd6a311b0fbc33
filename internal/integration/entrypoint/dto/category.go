package dto

import (
	"github.com/subscription-tracker/backend/internal/application/usecase/category"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        *string `json:"id"`
	Name      string  `json:"name"`
	IsDefault bool    `json:"is_default"`
	Color     string  `json:"color"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// DeleteCategoryResponse reports the subscriptions moved to the fallback category.
type DeleteCategoryResponse struct {
	ReassignedCount int64  `json:"reassigned_count"`
	ReassignedTo    string `json:"reassigned_to"`
}

// ToCategoryResponse converts a custom Category entity.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	id := cat.ID.String()
	return CategoryResponse{
		ID:    &id,
		Name:  cat.Name,
		Color: billing.CategoryColor(cat.Name),
	}
}

// ToCategoryListResponse converts a ListCategoriesOutput.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	items := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		item := CategoryResponse{
			Name:      c.Name,
			IsDefault: c.IsDefault,
			Color:     c.Color,
		}
		if c.ID != nil {
			id := c.ID.String()
			item.ID = &id
		}
		items[i] = item
	}
	return CategoryListResponse{Categories: items}
}
