package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/application/usecase/currency"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

// CurrencyController handles currency registry endpoints.
type CurrencyController struct {
	addUseCase     *currency.AddCurrencyUseCase
	archiveUseCase *currency.ArchiveCurrencyUseCase
	restoreUseCase *currency.RestoreCurrencyUseCase
	removeUseCase  *currency.RemoveCurrencyUseCase
	listUseCase    *currency.ListCurrenciesUseCase
	setMainUseCase *currency.SetMainCurrencyUseCase
	getMainUseCase *currency.GetMainCurrencyUseCase
}

// NewCurrencyController creates a new currency controller instance.
func NewCurrencyController(
	addUseCase *currency.AddCurrencyUseCase,
	archiveUseCase *currency.ArchiveCurrencyUseCase,
	restoreUseCase *currency.RestoreCurrencyUseCase,
	removeUseCase *currency.RemoveCurrencyUseCase,
	listUseCase *currency.ListCurrenciesUseCase,
	setMainUseCase *currency.SetMainCurrencyUseCase,
	getMainUseCase *currency.GetMainCurrencyUseCase,
) *CurrencyController {
	return &CurrencyController{
		addUseCase:     addUseCase,
		archiveUseCase: archiveUseCase,
		restoreUseCase: restoreUseCase,
		removeUseCase:  removeUseCase,
		listUseCase:    listUseCase,
		setMainUseCase: setMainUseCase,
		getMainUseCase: getMainUseCase,
	}
}

// List handles GET /currencies requests.
func (c *CurrencyController) List(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), currency.ListCurrenciesInput{
		OwnerID: ownerID,
		State:   adapter.CurrencyState(ctx.Query("state")),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCurrencyListResponse(output.Currencies, output.MainCurrency))
}

// Add handles POST /currencies requests.
func (c *CurrencyController) Add(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.CurrencyCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeInvalidCurrencyCode)
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), currency.AddCurrencyInput{
		OwnerID: ownerID,
		Code:    req.Code,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	mainCurrency := ""
	if output.BecameMain {
		mainCurrency = output.Currency.Code
	}
	status := http.StatusCreated
	if output.Restored {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.AddCurrencyResponse{
		Currency:   dto.ToCurrencyResponse(output.Currency, mainCurrency),
		Restored:   output.Restored,
		BecameMain: output.BecameMain,
	})
}

// Archive handles POST /currencies/:code/archive requests.
func (c *CurrencyController) Archive(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.archiveUseCase.Execute(ctx.Request.Context(), currency.ArchiveCurrencyInput{
		OwnerID: ownerID,
		Code:    ctx.Param("code"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ArchiveCurrencyResponse{
		Currency: dto.ToCurrencyResponse(output.Currency, ""),
		NewMain:  output.NewMain,
	})
}

// Restore handles POST /currencies/:code/restore requests.
func (c *CurrencyController) Restore(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.restoreUseCase.Execute(ctx.Request.Context(), currency.RestoreCurrencyInput{
		OwnerID: ownerID,
		Code:    ctx.Param("code"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCurrencyResponse(output.Currency, ""))
}

// Remove handles DELETE /currencies/:code requests.
func (c *CurrencyController) Remove(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	err := c.removeUseCase.Execute(ctx.Request.Context(), currency.RemoveCurrencyInput{
		OwnerID: ownerID,
		Code:    ctx.Param("code"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetMain handles GET /currencies/main requests.
func (c *CurrencyController) GetMain(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	code, err := c.getMainUseCase.Execute(ctx.Request.Context(), ownerID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MainCurrencyResponse{Code: code})
}

// SetMain handles PUT /currencies/main requests.
func (c *CurrencyController) SetMain(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.CurrencyCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeInvalidCurrencyCode)
		return
	}

	output, err := c.setMainUseCase.Execute(ctx.Request.Context(), currency.SetMainCurrencyInput{
		OwnerID: ownerID,
		Code:    req.Code,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MainCurrencyResponse{Code: output.Currency.Code})
}
