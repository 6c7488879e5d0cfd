package dto

import (
	"time"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryResponse represents the response for category creation.
type CreateCategoryResponse struct {
	Category CategoryResponse `json:"category"`
	Restored bool             `json:"restored"`
}

// DeleteCategoryResponse represents the response for category deletion.
type DeleteCategoryResponse struct {
	Removed    string `json:"removed"`
	ReassignTo string `json:"reassigned_to,omitempty"`
	Moved      int64  `json:"moved"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Archived:  category.Archived,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse DTO.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	response := CategoryListResponse{
		Categories: make([]CategoryResponse, len(categories)),
	}
	for i, category := range categories {
		response.Categories[i] = ToCategoryResponse(category)
	}
	return response
}
