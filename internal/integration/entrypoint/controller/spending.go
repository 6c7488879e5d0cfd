package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spendings-bot/ledger/internal/application/usecase/spending"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

// SpendingController handles spending endpoints.
type SpendingController struct {
	createUseCase  *spending.CreateSpendingUseCase
	getUseCase     *spending.GetSpendingUseCase
	deleteUseCase  *spending.DeleteSpendingUseCase
	listUseCase    *spending.ListSpendingsUseCase
	periodsUseCase *spending.ListPeriodsUseCase
}

// NewSpendingController creates a new spending controller instance.
func NewSpendingController(
	createUseCase *spending.CreateSpendingUseCase,
	getUseCase *spending.GetSpendingUseCase,
	deleteUseCase *spending.DeleteSpendingUseCase,
	listUseCase *spending.ListSpendingsUseCase,
	periodsUseCase *spending.ListPeriodsUseCase,
) *SpendingController {
	return &SpendingController{
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		deleteUseCase:  deleteUseCase,
		listUseCase:    listUseCase,
		periodsUseCase: periodsUseCase,
	}
}

// Create handles POST /spendings requests.
func (c *SpendingController) Create(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.CreateSpendingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeMissingSpendingFields)
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != "" {
		parsed, err := valueobject.ParseLedgerDate(req.OccurredAt)
		if err != nil {
			badRequest(ctx, "Invalid occurred_at date", domainerror.ErrCodeInvalidDate)
			return
		}
		occurredAt = parsed
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), spending.Draft{
		OwnerID:      ownerID,
		Amount:       req.Amount,
		CurrencyCode: req.Currency,
		CategoryName: req.Category,
		Description:  req.Description,
		OccurredAt:   occurredAt,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateSpendingResponse{
		Spending:        dto.ToSpendingResponse(output.Spending),
		CategoryCreated: output.CategoryCreated,
	})
}

// Get handles GET /spendings/:id requests.
func (c *SpendingController) Get(ctx *gin.Context) {
	ref, ok := spendingRef(ctx)
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), ref)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingResponse(found))
}

// Delete handles DELETE /spendings/:id requests.
func (c *SpendingController) Delete(ctx *gin.Context) {
	ref, ok := spendingRef(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), ref); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// List handles GET /spendings requests.
// Query: from, to, category, currency, q, amount, cursor, limit.
func (c *SpendingController) List(ctx *gin.Context) {
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

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(ctx, "Invalid limit", domainerror.ErrCodeMissingSpendingFields)
			return
		}
		limit = parsed
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), spending.ListSpendingsInput{
		OwnerID:  ownerID,
		From:     from,
		To:       to,
		Category: ctx.Query("category"),
		Currency: ctx.Query("currency"),
		Search:   ctx.Query("q"),
		Amount:   ctx.Query("amount"),
		Cursor:   ctx.Query("cursor"),
		Limit:    limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingPageResponse(output.Spendings, output.NextCursor, output.HasMore, output.Limit))
}

// Periods handles GET /spendings/periods requests.
func (c *SpendingController) Periods(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	periods, err := c.periodsUseCase.Execute(ctx.Request.Context(), ownerID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodListResponse(periods))
}

func spendingRef(ctx *gin.Context) (spending.SpendingRef, bool) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return spending.SpendingRef{}, false
	}

	spendingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Spending not found",
			Code:  string(domainerror.ErrCodeSpendingNotFound),
		})
		return spending.SpendingRef{}, false
	}

	return spending.SpendingRef{OwnerID: ownerID, SpendingID: spendingID}, true
}
