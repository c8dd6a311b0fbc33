package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subscription-tracker/backend/internal/application/usecase/analytics"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles spending analytics endpoints. Every handler
// accepts an optional reference_date (YYYY-MM-DD) choosing the month.
type AnalyticsController struct {
	summaryUseCase   *analytics.GetSummaryUseCase
	totalUseCase     *analytics.TotalByFrequencyUseCase
	breakdownUseCase *analytics.CategoryBreakdownUseCase
	topUseCase       *analytics.TopSubscriptionsUseCase
	topLimit         int
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	summaryUseCase *analytics.GetSummaryUseCase,
	totalUseCase *analytics.TotalByFrequencyUseCase,
	breakdownUseCase *analytics.CategoryBreakdownUseCase,
	topUseCase *analytics.TopSubscriptionsUseCase,
	topLimit int,
) *AnalyticsController {
	return &AnalyticsController{
		summaryUseCase:   summaryUseCase,
		totalUseCase:     totalUseCase,
		breakdownUseCase: breakdownUseCase,
		topUseCase:       topUseCase,
		topLimit:         topLimit,
	}
}

// Summary handles GET /analytics/summary requests.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), analytics.GetSummaryInput{
		UserID:        userID,
		ReferenceDate: ctx.Query("reference_date"),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// Total handles GET /analytics/total?frequency= requests.
func (c *AnalyticsController) Total(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.totalUseCase.Execute(ctx.Request.Context(), analytics.TotalByFrequencyInput{
		UserID:        userID,
		Frequency:     ctx.DefaultQuery("frequency", "monthly"),
		ReferenceDate: ctx.Query("reference_date"),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTotalResponse(output))
}

// Breakdown handles GET /analytics/categories requests.
func (c *AnalyticsController) Breakdown(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), analytics.CategoryBreakdownInput{
		UserID:        userID,
		ReferenceDate: ctx.Query("reference_date"),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// Top handles GET /analytics/top requests.
func (c *AnalyticsController) Top(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	limit := c.topLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	output, err := c.topUseCase.Execute(ctx.Request.Context(), analytics.TopSubscriptionsInput{
		UserID:        userID,
		Limit:         limit,
		ReferenceDate: ctx.Query("reference_date"),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTopSubscriptionsResponse(output))
}

func (c *AnalyticsController) handleAnalyticsError(ctx *gin.Context, err error) {
	if handleBillingError(ctx, err) {
		return
	}
	internalError(ctx, "Analytics request failed", err)
}
