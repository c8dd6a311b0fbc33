package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/middleware"
)

// currentUser returns the authenticated user id, writing a 401 when absent.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id path parameter, writing a 400 when malformed.
func pathID(ctx *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + what + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// handleBillingError writes billing errors as 400 responses. It reports
// whether err was a billing error.
func handleBillingError(ctx *gin.Context, err error) bool {
	var billErr *domainerror.BillingError
	if !errors.As(err, &billErr) {
		return false
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: billErr.Message,
		Code:  string(billErr.Code),
	})
	return true
}

func internalError(ctx *gin.Context, message string, err error) {
	slog.Error(message, "error", err, "path", ctx.FullPath())
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
