package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FallbackCategory receives the subscriptions of a deleted custom category.
const FallbackCategory = "Outro"

// DefaultCategories are available to every user and cannot be deleted.
var DefaultCategories = []string{
	"Entretenimento",
	"Streaming",
	"Música",
	"Jogos",
	"Produtividade",
	"Utilitários",
	"Compras",
	"Alimentação",
	"Saúde e Bem-Estar",
	"Finanças",
	"Educação",
	FallbackCategory,
}

// Category is a user-defined subscription category.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewCategory creates a new custom Category entity.
func NewCategory(userID uuid.UUID, name string) *Category {
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// IsDefaultCategory reports whether name matches a built-in category, ignoring case.
func IsDefaultCategory(name string) bool {
	for _, c := range DefaultCategories {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
