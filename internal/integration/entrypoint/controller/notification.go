package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subscription-tracker/backend/internal/application/usecase/notification"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/dto"
)

// NotificationController handles in-app notification endpoints.
type NotificationController struct {
	listUseCase        *notification.ListNotificationsUseCase
	markReadUseCase    *notification.MarkReadUseCase
	markAllReadUseCase *notification.MarkAllReadUseCase
	deleteUseCase      *notification.DeleteNotificationUseCase
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(
	listUseCase *notification.ListNotificationsUseCase,
	markReadUseCase *notification.MarkReadUseCase,
	markAllReadUseCase *notification.MarkAllReadUseCase,
	deleteUseCase *notification.DeleteNotificationUseCase,
) *NotificationController {
	return &NotificationController{
		listUseCase:        listUseCase,
		markReadUseCase:    markReadUseCase,
		markAllReadUseCase: markAllReadUseCase,
		deleteUseCase:      deleteUseCase,
	}
}

// List handles GET /notifications requests.
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := notification.ListNotificationsInput{UserID: userID}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be an integer",
			})
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		internalError(ctx, "Failed to list notifications", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationListResponse(output))
}

// MarkRead handles POST /notifications/:id/read requests.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	notificationID, ok := pathID(ctx, "notification")
	if !ok {
		return
	}

	err := c.markReadUseCase.Execute(ctx.Request.Context(), notification.MarkReadInput{
		UserID:         userID,
		NotificationID: notificationID,
	})
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all requests.
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.markAllReadUseCase.Execute(ctx.Request.Context(), notification.MarkAllReadInput{UserID: userID})
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: output.Updated})
}

// Delete handles DELETE /notifications/:id requests.
func (c *NotificationController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	notificationID, ok := pathID(ctx, "notification")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), notification.DeleteNotificationInput{
		UserID:         userID,
		NotificationID: notificationID,
	})
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *NotificationController) handleNotificationError(ctx *gin.Context, err error) {
	var notErr *domainerror.NotificationError
	if errors.As(err, &notErr) {
		status := http.StatusInternalServerError
		switch notErr.Code {
		case domainerror.ErrCodeNotificationNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeUnauthorizedNotification:
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: notErr.Message,
			Code:  string(notErr.Code),
		})
		return
	}

	internalError(ctx, "Notification request failed", err)
}
