package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/internal/application/usecase/owner"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

// OwnerController handles owner lifecycle endpoints.
type OwnerController struct {
	onboardUseCase *owner.OnboardOwnerUseCase
	deleteUseCase  *owner.DeleteOwnerDataUseCase
}

// NewOwnerController creates a new owner controller instance.
func NewOwnerController(
	onboardUseCase *owner.OnboardOwnerUseCase,
	deleteUseCase *owner.DeleteOwnerDataUseCase,
) *OwnerController {
	return &OwnerController{
		onboardUseCase: onboardUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// Onboard handles POST /owner/onboard requests.
func (c *OwnerController) Onboard(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.onboardUseCase.Execute(ctx.Request.Context(), ownerID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OnboardResponse{
		OwnerID:           output.Owner.ID,
		MainCurrency:      output.Owner.MainCurrency,
		CreatedCurrencies: output.CreatedCurrencies,
		CreatedCategories: output.CreatedCategories,
	})
}

// Delete handles DELETE /owner requests. It erases every spending, category
// and currency of the owner.
func (c *OwnerController) Delete(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	counts, err := c.deleteUseCase.Execute(ctx.Request.Context(), ownerID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteOwnerDataResponse{
		Spendings:  counts.Spendings,
		Categories: counts.Categories,
		Currencies: counts.Currencies,
	})
}
