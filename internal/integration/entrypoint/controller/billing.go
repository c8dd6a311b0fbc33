package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subscription-tracker/backend/internal/application/usecase/billingdate"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/dto"
)

// BillingController exposes the billing date procedures.
type BillingController struct {
	nextUseCase    *billingdate.GetNextBillingDateUseCase
	projectUseCase *billingdate.ProjectBillingDatesUseCase
}

// NewBillingController creates a new billing controller instance.
func NewBillingController(
	nextUseCase *billingdate.GetNextBillingDateUseCase,
	projectUseCase *billingdate.ProjectBillingDatesUseCase,
) *BillingController {
	return &BillingController{
		nextUseCase:    nextUseCase,
		projectUseCase: projectUseCase,
	}
}

// GetNextBillingDate handles POST /rpc/get_next_billing_date requests.
func (c *BillingController) GetNextBillingDate(ctx *gin.Context) {
	var req dto.NextBillingDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.nextUseCase.Execute(ctx.Request.Context(), billingdate.GetNextBillingDateInput{
		InitialDate:   req.InitialDate,
		RenewalPeriod: req.RenewalPeriod,
		Today:         req.Today,
	})
	if err != nil {
		if !handleBillingError(ctx, err) {
			internalError(ctx, "Next billing date failed", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNextBillingDateResponse(output))
}

// ProjectBillingDates handles POST /rpc/project_billing_dates requests.
func (c *BillingController) ProjectBillingDates(ctx *gin.Context) {
	var req dto.ProjectBillingDatesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.projectUseCase.Execute(ctx.Request.Context(), billingdate.ProjectBillingDatesInput{
		InitialDate:   req.InitialDate,
		RenewalPeriod: req.RenewalPeriod,
		Today:         req.Today,
		Count:         req.Count,
	})
	if err != nil {
		if !handleBillingError(ctx, err) {
			internalError(ctx, "Billing projection failed", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectBillingDatesResponse(output))
}
