package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/internal/application/usecase/report"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

// ReportController handles report endpoints.
type ReportController struct {
	generateUseCase *report.GenerateReportUseCase
	monthlyUseCase  *report.MonthlyReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	generateUseCase *report.GenerateReportUseCase,
	monthlyUseCase *report.MonthlyReportUseCase,
) *ReportController {
	return &ReportController{
		generateUseCase: generateUseCase,
		monthlyUseCase:  monthlyUseCase,
	}
}

// Generate handles GET /reports requests.
// Query: from (inclusive), to (exclusive), currency (defaults to the main currency).
func (c *ReportController) Generate(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	from, ok := dateQuery(ctx, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(ctx, "to")
	if !ok {
		return
	}

	generated, err := c.generateUseCase.Execute(ctx.Request.Context(), report.GenerateReportInput{
		OwnerID:        ownerID,
		From:           from,
		To:             to,
		TargetCurrency: ctx.Query("currency"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(generated))
}

// Monthly handles GET /reports/monthly/:year/:month requests.
func (c *ReportController) Monthly(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	year, yearErr := strconv.Atoi(ctx.Param("year"))
	month, monthErr := strconv.Atoi(ctx.Param("month"))
	if yearErr != nil || monthErr != nil {
		badRequest(ctx, "Year and month must be numbers", domainerror.ErrCodeInvalidDate)
		return
	}

	generated, err := c.monthlyUseCase.Execute(ctx.Request.Context(), report.MonthlyReportInput{
		OwnerID:        ownerID,
		Year:           year,
		Month:          time.Month(month),
		TargetCurrency: ctx.Query("currency"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(generated))
}
