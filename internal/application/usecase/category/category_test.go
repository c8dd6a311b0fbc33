package category

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subscription-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

func TestListCategories(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewCategoryRepository(
		entity.NewCategory(userID, "Academia"),
		entity.NewCategory(uuid.New(), "Someone else's"),
	)

	out, err := NewListCategoriesUseCase(repo).Execute(context.Background(), ListCategoriesInput{UserID: userID})
	require.NoError(t, err)

	require.Len(t, out.Categories, len(entity.DefaultCategories)+1)
	assert.Equal(t, "Academia", out.Categories[0].Name)
	assert.False(t, out.Categories[0].IsDefault)
	assert.NotNil(t, out.Categories[0].ID)
	assert.Equal(t, "Alimentação", out.Categories[1].Name)
	assert.True(t, out.Categories[1].IsDefault)
	assert.Nil(t, out.Categories[1].ID)

	for _, c := range out.Categories {
		assert.True(t, strings.HasPrefix(c.Color, "#"))
	}
}

func TestCreateCategory(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a custom category", func(t *testing.T) {
		repo := adaptertest.NewCategoryRepository()
		out, err := NewCreateCategoryUseCase(repo).Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: " Academia "})
		require.NoError(t, err)
		assert.Equal(t, "Academia", out.Category.Name)
		assert.Len(t, repo.Categories, 1)
	})

	cases := []struct {
		name     string
		existing *entity.Category
		input    string
		code     domainerror.CategoryErrorCode
	}{
		{"blank", nil, "   ", domainerror.ErrCodeCategoryNameRequired},
		{"too long", nil, strings.Repeat("ç", MaxCategoryNameLength+1), domainerror.ErrCodeCategoryNameTooLong},
		{"clashes with a default", nil, "streaming", domainerror.ErrCodeCategoryNameExists},
		{"clashes with a custom one", entity.NewCategory(userID, "Academia"), "ACADEMIA", domainerror.ErrCodeCategoryNameExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := adaptertest.NewCategoryRepository()
			if tc.existing != nil {
				repo = adaptertest.NewCategoryRepository(tc.existing)
			}

			_, err := NewCreateCategoryUseCase(repo).Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: tc.input})

			var catErr *domainerror.CategoryError
			require.True(t, errors.As(err, &catErr))
			assert.Equal(t, tc.code, catErr.Code)
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	userID := uuid.New()

	t.Run("reassigns subscriptions to the fallback category", func(t *testing.T) {
		category := entity.NewCategory(userID, "Academia")
		gym := entity.NewSubscription(userID, "Gym", decimal.NewFromInt(90), time.Now(), "Mensal")
		gym.Category = "Academia"
		music := entity.NewSubscription(userID, "Spotify", decimal.NewFromInt(20), time.Now(), "Mensal")
		music.Category = "Música"
		subs := adaptertest.NewSubscriptionRepository(gym, music)
		categories := adaptertest.NewCategoryRepository(category)

		out, err := NewDeleteCategoryUseCase(categories, subs).Execute(context.Background(), DeleteCategoryInput{UserID: userID, CategoryID: category.ID})
		require.NoError(t, err)

		assert.Equal(t, int64(1), out.ReassignedCount)
		assert.Equal(t, entity.FallbackCategory, subs.Subs[gym.ID].Category)
		assert.Equal(t, "Música", subs.Subs[music.ID].Category)
		assert.Empty(t, categories.Categories)
	})

	t.Run("refuses other owners", func(t *testing.T) {
		category := entity.NewCategory(uuid.New(), "Academia")
		categories := adaptertest.NewCategoryRepository(category)

		_, err := NewDeleteCategoryUseCase(categories, adaptertest.NewSubscriptionRepository()).
			Execute(context.Background(), DeleteCategoryInput{UserID: userID, CategoryID: category.ID})
		assert.ErrorIs(t, err, domainerror.ErrNotAuthorizedToModifyCategory)
		assert.Len(t, categories.Categories, 1)
	})

	t.Run("protects default names", func(t *testing.T) {
		category := entity.NewCategory(userID, "Outro")
		_, err := NewDeleteCategoryUseCase(adaptertest.NewCategoryRepository(category), adaptertest.NewSubscriptionRepository()).
			Execute(context.Background(), DeleteCategoryInput{UserID: userID, CategoryID: category.ID})
		assert.ErrorIs(t, err, domainerror.ErrDefaultCategoryProtected)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := NewDeleteCategoryUseCase(adaptertest.NewCategoryRepository(), adaptertest.NewSubscriptionRepository()).
			Execute(context.Background(), DeleteCategoryInput{UserID: userID, CategoryID: uuid.New()})
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	})
}
