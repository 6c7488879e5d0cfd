package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/internal/application/usecase/exchange"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

// ExchangeController handles exchange rate endpoints.
type ExchangeController struct {
	convertUseCase *exchange.ConvertAmountUseCase
	recordUseCase  *exchange.RecordRateUseCase
}

// NewExchangeController creates a new exchange controller instance.
func NewExchangeController(
	convertUseCase *exchange.ConvertAmountUseCase,
	recordUseCase *exchange.RecordRateUseCase,
) *ExchangeController {
	return &ExchangeController{
		convertUseCase: convertUseCase,
		recordUseCase:  recordUseCase,
	}
}

// Convert handles GET /rates/convert?amount=&from=&to=&date= requests.
func (c *ExchangeController) Convert(ctx *gin.Context) {
	if _, ok := requireOwner(ctx); !ok {
		return
	}

	at, ok := dateQuery(ctx, "date")
	if !ok {
		return
	}

	output, err := c.convertUseCase.Execute(ctx.Request.Context(), exchange.ConvertAmountInput{
		Amount: ctx.Query("amount"),
		From:   ctx.Query("from"),
		To:     ctx.Query("to"),
		At:     at,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ConversionResponse{
		Amount:    valueobject.FormatAmount(output.Amount),
		From:      output.From,
		Converted: valueobject.FormatAmount(output.Converted),
		To:        output.To,
		Date:      output.Date.Format(valueobject.DateLayout),
	})
}

// Record handles POST /rates requests.
func (c *ExchangeController) Record(ctx *gin.Context) {
	if _, ok := requireOwner(ctx); !ok {
		return
	}

	var req dto.RecordRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeInvalidCurrencyCode)
		return
	}

	date, err := valueobject.ParseLedgerDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid rate date", domainerror.ErrCodeInvalidDate)
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		badRequest(ctx, "Rate must be a number", domainerror.ErrCodeRateNotPositive)
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), exchange.RecordRateInput{
		Base:  req.Base,
		Quote: req.Quote,
		Date:  date,
		Rate:  rate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RateResponse{
		Base:  output.Rate.Base,
		Quote: output.Rate.Quote,
		Date:  output.Rate.Date.Format(valueobject.DateLayout),
		Rate:  output.Rate.Rate.String(),
	})
}
