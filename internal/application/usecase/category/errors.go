package category

import (
	"errors"
	"fmt"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

func parseName(raw string) (string, error) {
	name, ok := entity.NormalizeCategoryName(raw)
	if !ok {
		return "", domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCategoryName,
			fmt.Sprintf("category name must be 1 to %d characters", entity.MaxCategoryNameLength),
			domainerror.ErrInvalidCategoryName,
		)
	}
	return name, nil
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}
	return nil
}

// translateError attaches an error code to category errors. Other errors are wrapped with action.
func translateError(err error, name, action string) error {
	switch {
	case errors.Is(err, domainerror.ErrCategoryNotFound):
		return domainerror.NewLedgerError(domainerror.ErrCodeCategoryNotFound, "category "+name+" not found", err)
	case errors.Is(err, domainerror.ErrDuplicateCategory):
		return domainerror.NewLedgerError(domainerror.ErrCodeDuplicateCategory, "category "+name+" already exists", err)
	case errors.Is(err, domainerror.ErrCategoryAlreadyArchived):
		return domainerror.NewLedgerError(domainerror.ErrCodeCategoryAlreadyArchived, "category "+name+" is already archived", err)
	case errors.Is(err, domainerror.ErrCategoryNotArchived):
		return domainerror.NewLedgerError(domainerror.ErrCodeCategoryNotArchived, "category "+name+" is not archived", err)
	case errors.Is(err, domainerror.ErrCategoryInUse):
		return domainerror.NewLedgerError(domainerror.ErrCodeCategoryInUse, "category "+name+" is used by spendings", err)
	case errors.Is(err, domainerror.ErrReassignToSameCategory):
		return domainerror.NewLedgerError(domainerror.ErrCodeReassignToSameCategory, "cannot reassign spendings to the category being removed", err)
	default:
		return fmt.Errorf("failed to %s category: %w", action, err)
	}
}
