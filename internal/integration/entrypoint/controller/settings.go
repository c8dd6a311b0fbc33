package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subscription-tracker/backend/internal/application/usecase/settings"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/middleware"
)

// SettingsController handles user settings endpoints.
type SettingsController struct {
	getUseCase    *settings.GetSettingsUseCase
	updateUseCase *settings.UpdateSettingsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	email, _ := middleware.GetUserEmailFromContext(ctx)

	output, err := c.getUseCase.Execute(ctx.Request.Context(), settings.GetSettingsInput{
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		c.handleSettingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output.Settings))
}

// Update handles PATCH /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	email, _ := middleware.GetUserEmailFromContext(ctx)

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), settings.UpdateSettingsInput{
		UserID:              userID,
		TokenEmail:          email,
		NotificationEnabled: req.NotificationEnabled,
		ReminderDays:        req.ReminderDays,
		Currency:            req.Currency,
		Theme:               req.Theme,
		BackupEnabled:       req.BackupEnabled,
		PushToken:           req.PushToken,
		Email:               req.Email,
		FullName:            req.FullName,
	})
	if err != nil {
		c.handleSettingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output.Settings))
}

func (c *SettingsController) handleSettingsError(ctx *gin.Context, err error) {
	var setErr *domainerror.NotificationError
	if errors.As(err, &setErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: setErr.Message,
			Code:  string(setErr.Code),
		})
		return
	}

	internalError(ctx, "Settings request failed", err)
}
