package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/internal/application/usecase/category"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase    *category.ListCategoriesUseCase
	createUseCase  *category.CreateCategoryUseCase
	archiveUseCase *category.ArchiveCategoryUseCase
	restoreUseCase *category.RestoreCategoryUseCase
	deleteUseCase  *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	archiveUseCase *category.ArchiveCategoryUseCase,
	restoreUseCase *category.RestoreCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		archiveUseCase: archiveUseCase,
		restoreUseCase: restoreUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	includeArchived, _ := strconv.ParseBool(ctx.Query("include_archived"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		OwnerID:         ownerID,
		IncludeArchived: includeArchived,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeInvalidCategoryName)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		OwnerID: ownerID,
		Name:    req.Name,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusCreated
	if output.Restored {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.CreateCategoryResponse{
		Category: dto.ToCategoryResponse(output.Category),
		Restored: output.Restored,
	})
}

// Archive handles POST /categories/:name/archive requests.
func (c *CategoryController) Archive(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	archived, err := c.archiveUseCase.Execute(ctx.Request.Context(), category.ArchiveCategoryInput{
		OwnerID: ownerID,
		Name:    ctx.Param("name"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(archived))
}

// Restore handles POST /categories/:name/restore requests.
func (c *CategoryController) Restore(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	restored, err := c.restoreUseCase.Execute(ctx.Request.Context(), category.ArchiveCategoryInput{
		OwnerID: ownerID,
		Name:    ctx.Param("name"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(restored))
}

// Delete handles DELETE /categories/:name requests.
// With ?reassign_to=Other the category's spendings move to Other first.
func (c *CategoryController) Delete(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		OwnerID:    ownerID,
		Name:       ctx.Param("name"),
		ReassignTo: ctx.Query("reassign_to"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := dto.DeleteCategoryResponse{
		Removed: output.Removed.Name,
		Moved:   output.Moved,
	}
	if output.ReassignTo != nil {
		response.ReassignTo = output.ReassignTo.Name
	}
	ctx.JSON(http.StatusOK, response)
}
