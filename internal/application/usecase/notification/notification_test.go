package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subscription-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

func notificationAt(userID uuid.UUID, title string, at time.Time) *entity.Notification {
	n := entity.NewNotification(userID, nil, title, "msg")
	n.NotificationDate = at
	return n
}

func TestListNotifications(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	old := notificationAt(userID, "old", base)
	recent := notificationAt(userID, "recent", base.Add(48*time.Hour))
	read := notificationAt(userID, "read", base.Add(24*time.Hour))
	read.IsRead = true
	repo := adaptertest.NewNotificationRepository(old, recent, read, notificationAt(uuid.New(), "other", base))

	out, err := NewListNotificationsUseCase(repo).Execute(context.Background(), ListNotificationsInput{UserID: userID})
	require.NoError(t, err)

	require.Len(t, out.Notifications, 3)
	assert.Equal(t, "recent", out.Notifications[0].Title)
	assert.Equal(t, "old", out.Notifications[2].Title)
	assert.Equal(t, int64(2), out.UnreadCount)

	limited, err := NewListNotificationsUseCase(repo).Execute(context.Background(), ListNotificationsInput{UserID: userID, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited.Notifications, 1)
}

func TestMarkRead(t *testing.T) {
	userID := uuid.New()
	n := entity.NewNotification(userID, nil, "t", "m")
	repo := adaptertest.NewNotificationRepository(n)
	uc := NewMarkReadUseCase(repo)

	err := uc.Execute(context.Background(), MarkReadInput{UserID: uuid.New(), NotificationID: n.ID})
	assert.ErrorIs(t, err, domainerror.ErrUnauthorizedNotificationAccess)
	assert.False(t, repo.Notifications[n.ID].IsRead)

	require.NoError(t, uc.Execute(context.Background(), MarkReadInput{UserID: userID, NotificationID: n.ID}))
	assert.True(t, repo.Notifications[n.ID].IsRead)

	require.NoError(t, uc.Execute(context.Background(), MarkReadInput{UserID: userID, NotificationID: n.ID}))

	err = uc.Execute(context.Background(), MarkReadInput{UserID: userID, NotificationID: uuid.New()})
	var notErr *domainerror.NotificationError
	require.True(t, errors.As(err, &notErr))
	assert.Equal(t, domainerror.ErrCodeNotificationNotFound, notErr.Code)
}

func TestMarkAllRead(t *testing.T) {
	userID := uuid.New()
	other := entity.NewNotification(uuid.New(), nil, "t", "m")
	repo := adaptertest.NewNotificationRepository(
		entity.NewNotification(userID, nil, "a", "m"),
		entity.NewNotification(userID, nil, "b", "m"),
		other,
	)

	out, err := NewMarkAllReadUseCase(repo).Execute(context.Background(), MarkAllReadInput{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Updated)
	assert.False(t, repo.Notifications[other.ID].IsRead)

	again, err := NewMarkAllReadUseCase(repo).Execute(context.Background(), MarkAllReadInput{UserID: userID})
	require.NoError(t, err)
	assert.Zero(t, again.Updated)
}

func TestDeleteNotification(t *testing.T) {
	userID := uuid.New()
	n := entity.NewNotification(userID, nil, "t", "m")
	repo := adaptertest.NewNotificationRepository(n)
	uc := NewDeleteNotificationUseCase(repo)

	assert.ErrorIs(t, uc.Execute(context.Background(), DeleteNotificationInput{UserID: uuid.New(), NotificationID: n.ID}),
		domainerror.ErrUnauthorizedNotificationAccess)
	require.NoError(t, uc.Execute(context.Background(), DeleteNotificationInput{UserID: userID, NotificationID: n.ID}))
	assert.Empty(t, repo.Notifications)
}
