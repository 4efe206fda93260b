// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brokerdash/backend/internal/application/usecase/dashboard"
	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
	"github.com/brokerdash/backend/internal/integration/entrypoint/dto"
	"github.com/brokerdash/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	listOperationsUseCase    *dashboard.ListOperationsUseCase
	getTotalsUseCase         *dashboard.GetTotalsUseCase
	getTypeBreakdownUseCase  *dashboard.GetTypeBreakdownUseCase
	getGroupSummaryUseCase   *dashboard.GetGroupSummaryUseCase
	getSeriesUseCase         *dashboard.GetSeriesUseCase
	getKPIsUseCase           *dashboard.GetKPIsUseCase
	getRankingUseCase        *dashboard.GetRankingUseCase
	getExpenseSummaryUseCase *dashboard.GetExpenseSummaryUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	listOperationsUseCase *dashboard.ListOperationsUseCase,
	getTotalsUseCase *dashboard.GetTotalsUseCase,
	getTypeBreakdownUseCase *dashboard.GetTypeBreakdownUseCase,
	getGroupSummaryUseCase *dashboard.GetGroupSummaryUseCase,
	getSeriesUseCase *dashboard.GetSeriesUseCase,
	getKPIsUseCase *dashboard.GetKPIsUseCase,
	getRankingUseCase *dashboard.GetRankingUseCase,
	getExpenseSummaryUseCase *dashboard.GetExpenseSummaryUseCase,
) *DashboardController {
	return &DashboardController{
		listOperationsUseCase:    listOperationsUseCase,
		getTotalsUseCase:         getTotalsUseCase,
		getTypeBreakdownUseCase:  getTypeBreakdownUseCase,
		getGroupSummaryUseCase:   getGroupSummaryUseCase,
		getSeriesUseCase:         getSeriesUseCase,
		getKPIsUseCase:           getKPIsUseCase,
		getRankingUseCase:        getRankingUseCase,
		getExpenseSummaryUseCase: getExpenseSummaryUseCase,
	}
}

// ListOperations handles GET /dashboard/operations requests.
func (c *DashboardController) ListOperations(ctx *gin.Context) {
	user, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	input := dashboard.ListOperationsInput{
		User:   user,
		Status: ctx.Query("status"),
		Year:   ctx.Query("year"),
		Month:  ctx.Query("month"),
		Type:   ctx.Query("type"),
	}

	output, err := c.listOperationsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOperationsResponse(output, user))
}

// GetTotals handles GET /dashboard/totals requests.
func (c *DashboardController) GetTotals(ctx *gin.Context) {
	user, year, ok := c.parseReportRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getTotalsUseCase.Execute(ctx.Request.Context(), dashboard.GetTotalsInput{User: user, Year: year})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTotalsResponse(output, user.CurrencySymbol))
}

// GetTypeBreakdown handles GET /dashboard/types requests.
func (c *DashboardController) GetTypeBreakdown(ctx *gin.Context) {
	user, year, ok := c.parseReportRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getTypeBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetTypeBreakdownInput{User: user, Year: year})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTypeBreakdownResponse(output))
}

// GetGroupSummary handles GET /dashboard/groups requests.
func (c *DashboardController) GetGroupSummary(ctx *gin.Context) {
	user, year, ok := c.parseReportRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getGroupSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetGroupSummaryInput{User: user, Year: year})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupSummaryResponse(output))
}

// GetSeries handles GET /dashboard/series requests.
func (c *DashboardController) GetSeries(ctx *gin.Context) {
	user, year, ok := c.parseReportRequest(ctx)
	if !ok {
		return
	}

	input := dashboard.GetSeriesInput{
		User:  user,
		Year:  year,
		Field: ctx.Query("field"),
		Mode:  ctx.Query("mode"),
	}

	output, err := c.getSeriesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSeriesResponse(output))
}

// GetKPIs handles GET /dashboard/kpis requests.
func (c *DashboardController) GetKPIs(ctx *gin.Context) {
	user, year, ok := c.parseReportRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getKPIsUseCase.Execute(ctx.Request.Context(), dashboard.GetKPIsInput{User: user, Year: year})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKPIsResponse(output))
}

// GetRanking handles GET /dashboard/ranking requests.
func (c *DashboardController) GetRanking(ctx *gin.Context) {
	user, year, ok := c.parseReportRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getRankingUseCase.Execute(ctx.Request.Context(), dashboard.GetRankingInput{User: user, Year: year})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRankingResponse(output))
}

// GetExpenseSummary handles GET /dashboard/expenses requests.
func (c *DashboardController) GetExpenseSummary(ctx *gin.Context) {
	user, year, ok := c.parseReportRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getExpenseSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetExpenseSummaryInput{User: user, Year: year})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseSummaryResponse(output))
}

func (c *DashboardController) requireUser(ctx *gin.Context) (*entity.UserContext, bool) {
	user, ok := middleware.GetUserContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return nil, false
	}
	return user, true
}

// parseReportRequest resolves the authenticated user and the optional year
// query parameter. A missing year means the current year.
func (c *DashboardController) parseReportRequest(ctx *gin.Context) (*entity.UserContext, *int, bool) {
	user, ok := c.requireUser(ctx)
	if !ok {
		return nil, nil, false
	}

	yearStr := strings.TrimSpace(ctx.Query("year"))
	if yearStr == "" {
		return user, nil, true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "year must be a four-digit year",
			Code:  string(domainerror.ErrCodeInvalidYear),
		})
		return nil, nil, false
	}
	return user, &year, true
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(c.getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	var anlErr *domainerror.AnalyticsError
	if errors.As(err, &anlErr) {
		slog.Error("Analytics contract violation", "code", anlErr.Code, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  string(anlErr.Code),
		})
		return
	}

	slog.Error("Dashboard request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func (c *DashboardController) getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidStatus,
		domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidOperationType,
		domainerror.ErrCodeInvalidSeriesField,
		domainerror.ErrCodeInvalidSeriesMode:
		return http.StatusBadRequest
	case domainerror.ErrCodeDashboardForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
