package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subscription-tracker/backend/internal/application/usecase/subscription"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/dto"
)

// SubscriptionController handles subscription endpoints.
type SubscriptionController struct {
	listUseCase     *subscription.ListSubscriptionsUseCase
	createUseCase   *subscription.CreateSubscriptionUseCase
	getUseCase      *subscription.GetSubscriptionUseCase
	updateUseCase   *subscription.UpdateSubscriptionUseCase
	deleteUseCase   *subscription.DeleteSubscriptionUseCase
	upcomingUseCase *subscription.UpcomingSubscriptionsUseCase
	upcomingWindow  int
}

// NewSubscriptionController creates a new subscription controller instance.
func NewSubscriptionController(
	listUseCase *subscription.ListSubscriptionsUseCase,
	createUseCase *subscription.CreateSubscriptionUseCase,
	getUseCase *subscription.GetSubscriptionUseCase,
	updateUseCase *subscription.UpdateSubscriptionUseCase,
	deleteUseCase *subscription.DeleteSubscriptionUseCase,
	upcomingUseCase *subscription.UpcomingSubscriptionsUseCase,
	upcomingWindow int,
) *SubscriptionController {
	return &SubscriptionController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		upcomingUseCase: upcomingUseCase,
		upcomingWindow:  upcomingWindow,
	}
}

// List handles GET /subscriptions requests.
func (c *SubscriptionController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := subscription.ListSubscriptionsInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active_only") == "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		internalError(ctx, "Failed to list subscriptions", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionListResponse(output.Subscriptions))
}

// Create handles POST /subscriptions requests.
func (c *SubscriptionController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingSubscriptionFields),
			Details: err.Error(),
		})
		return
	}

	input := subscription.CreateSubscriptionInput{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Amount:        *req.Amount,
		BillingDate:   req.BillingDate,
		RenewalPeriod: req.RenewalPeriod,
		Category:      req.Category,
		Color:         req.Color,
		LogoURL:       req.LogoURL,
		PaymentMethod: req.PaymentMethod,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSubscriptionResponse(output.Subscription))
}

// Get handles GET /subscriptions/:id requests.
func (c *SubscriptionController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	subscriptionID, ok := pathID(ctx, "subscription")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), subscription.GetSubscriptionInput{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionDetailResponse(output))
}

// Update handles PATCH /subscriptions/:id requests.
func (c *SubscriptionController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	subscriptionID, ok := pathID(ctx, "subscription")
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	input := subscription.UpdateSubscriptionInput{
		UserID:         userID,
		SubscriptionID: subscriptionID,
		Name:           req.Name,
		Description:    req.Description,
		Amount:         req.Amount,
		BillingDate:    req.BillingDate,
		RenewalPeriod:  req.RenewalPeriod,
		Category:       req.Category,
		Color:          req.Color,
		LogoURL:        req.LogoURL,
		PaymentMethod:  req.PaymentMethod,
		Active:         req.Active,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionResponse(output.Subscription))
}

// Delete handles DELETE /subscriptions/:id requests.
func (c *SubscriptionController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	subscriptionID, ok := pathID(ctx, "subscription")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), subscription.DeleteSubscriptionInput{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Upcoming handles GET /subscriptions/upcoming requests.
func (c *SubscriptionController) Upcoming(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	window := c.upcomingWindow
	if raw := ctx.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "days must be a non-negative integer",
			})
			return
		}
		window = days
	}

	output, err := c.upcomingUseCase.Execute(ctx.Request.Context(), subscription.UpcomingSubscriptionsInput{
		UserID:     userID,
		WindowDays: window,
	})
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpcomingResponse(output))
}

// handleSubscriptionError handles subscription errors and returns appropriate HTTP responses.
func (c *SubscriptionController) handleSubscriptionError(ctx *gin.Context, err error) {
	var subErr *domainerror.SubscriptionError
	if errors.As(err, &subErr) {
		ctx.JSON(c.getStatusCodeForSubscriptionError(subErr.Code), dto.ErrorResponse{
			Error: subErr.Message,
			Code:  string(subErr.Code),
		})
		return
	}
	if handleBillingError(ctx, err) {
		return
	}

	internalError(ctx, "Subscription request failed", err)
}

// getStatusCodeForSubscriptionError maps subscription error codes to HTTP status codes.
func (c *SubscriptionController) getStatusCodeForSubscriptionError(code domainerror.SubscriptionErrorCode) int {
	switch code {
	case domainerror.ErrCodeSubscriptionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedSubscription:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidSubscriptionAmount,
		domainerror.ErrCodeSubscriptionNameRequired,
		domainerror.ErrCodeSubscriptionNameTooLong,
		domainerror.ErrCodeRenewalPeriodRequired,
		domainerror.ErrCodeInvalidSubscriptionDate,
		domainerror.ErrCodeMissingSubscriptionFields,
		domainerror.ErrCodeNoSubscriptionFieldsToSave:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
