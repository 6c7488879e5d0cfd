package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
	"github.com/spendings-bot/ledger/internal/integration/persistence/model"
)

// spendingRepository implements the adapter.SpendingRepository interface.
type spendingRepository struct {
	db *gorm.DB
}

// NewSpendingRepository creates a new spending repository instance.
func NewSpendingRepository(db *gorm.DB) adapter.SpendingRepository {
	return &spendingRepository{
		db: db,
	}
}

// likeEscaper makes user text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Create resolves references and inserts the spending in one transaction.
func (r *spendingRepository) Create(ctx context.Context, spending *entity.Spending, refs adapter.SpendingRefs) (*adapter.SpendingCreateResult, error) {
	result := &adapter.SpendingCreateResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureOwner(tx, spending.OwnerID); err != nil {
			return err
		}

		currencyModel, err := findCurrency(tx, spending.OwnerID, refs.CurrencyCode)
		if err != nil {
			return err
		}
		if currencyModel == nil {
			if !refs.CreateCurrency {
				return domainerror.ErrCurrencyNotFound
			}
			currencyModel, result.CurrencyCreated, err = ensureCurrency(tx, spending.OwnerID, refs.CurrencyCode)
			if err != nil {
				return err
			}
		}

		categoryModel, categoryCreated, err := ensureCategory(tx, spending.OwnerID, refs.CategoryName)
		if err != nil {
			return err
		}
		result.CategoryCreated = categoryCreated

		spending.CurrencyID = currencyModel.ID
		spending.CurrencyCode = currencyModel.Code
		spending.CategoryID = categoryModel.ID
		spending.CategoryName = categoryModel.Name

		return tx.Omit(clause.Associations).Create(model.SpendingFromEntity(spending)).Error
	})
	if err != nil {
		return nil, err
	}

	result.Spending = spending
	return result, nil
}

// FindByID retrieves a spending owned by ownerID.
func (r *spendingRepository) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Spending, error) {
	var spendingModel model.SpendingModel
	result := r.db.WithContext(ctx).
		Preload("Currency").
		Preload("Category").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&spendingModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSpendingNotFound
		}
		return nil, result.Error
	}
	return spendingModel.ToEntity(), nil
}

// Delete removes a spending owned by ownerID.
func (r *spendingRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SpendingModel{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSpendingNotFound
	}
	return nil
}

// List retrieves one page of spendings matching the filter.
func (r *spendingRepository) List(ctx context.Context, filter adapter.SpendingFilter, page adapter.SpendingPage) (*adapter.SpendingPageResult, error) {
	db := r.db.WithContext(ctx)
	empty := &adapter.SpendingPageResult{Spendings: []*entity.Spending{}}

	query := applyRange(db.Model(&model.SpendingModel{}).Where("owner_id = ?", filter.OwnerID), filter.Range)

	// Unknown names match nothing.
	if filter.CategoryName != "" {
		categoryModel, err := findCategory(db, filter.OwnerID, filter.CategoryName)
		if err != nil {
			return nil, err
		}
		if categoryModel == nil {
			return empty, nil
		}
		query = query.Where("category_id = ?", categoryModel.ID)
	}
	if filter.CurrencyCode != "" {
		currencyModel, err := findCurrency(db, filter.OwnerID, filter.CurrencyCode)
		if err != nil {
			return nil, err
		}
		if currencyModel == nil {
			return empty, nil
		}
		query = query.Where("currency_id = ?", currencyModel.ID)
	}

	if filter.Search != "" {
		searchPattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		query = query.Where(`LOWER(description) LIKE ? ESCAPE '\'`, searchPattern)
	}
	if filter.Amount != nil {
		query = query.Where("amount = ?", *filter.Amount)
	}

	if page.After != nil {
		query = query.Where(
			"occurred_at < ? OR (occurred_at = ? AND id < ?)",
			page.After.OccurredAt, page.After.OccurredAt, page.After.ID,
		)
	}

	var spendingModels []model.SpendingModel
	err := query.
		Preload("Currency").
		Preload("Category").
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(page.Limit + 1).
		Find(&spendingModels).Error
	if err != nil {
		return nil, err
	}

	hasMore := len(spendingModels) > page.Limit
	if hasMore {
		spendingModels = spendingModels[:page.Limit]
	}

	spendings := make([]*entity.Spending, len(spendingModels))
	for i, sm := range spendingModels {
		spendings[i] = sm.ToEntity()
	}

	result := &adapter.SpendingPageResult{
		Spendings: spendings,
		HasMore:   hasMore,
	}
	if hasMore {
		last := spendings[len(spendings)-1]
		result.NextCursor = &valueobject.SpendingCursor{OccurredAt: last.OccurredAt, ID: last.ID}
	}
	return result, nil
}

// FindInRange retrieves every spending in the range in chronological order.
func (r *spendingRepository) FindInRange(ctx context.Context, ownerID string, dateRange valueobject.DateRange) ([]*entity.Spending, error) {
	query := applyRange(r.db.WithContext(ctx).Where("owner_id = ?", ownerID), dateRange)

	var spendingModels []model.SpendingModel
	err := query.
		Preload("Currency").
		Preload("Category").
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&spendingModels).Error
	if err != nil {
		return nil, err
	}

	spendings := make([]*entity.Spending, len(spendingModels))
	for i, sm := range spendingModels {
		spendings[i] = sm.ToEntity()
	}
	return spendings, nil
}

// ListPeriods returns the calendar months that contain spendings, newest first.
func (r *spendingRepository) ListPeriods(ctx context.Context, ownerID string) ([]entity.Period, error) {
	var occurrences []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.SpendingModel{}).
		Where("owner_id = ?", ownerID).
		Order("occurred_at DESC").
		Pluck("occurred_at", &occurrences).Error
	if err != nil {
		return nil, err
	}

	periods := []entity.Period{}
	for _, occurredAt := range occurrences {
		u := occurredAt.UTC()
		n := len(periods)
		if n > 0 && periods[n-1].Year == u.Year() && periods[n-1].Month == u.Month() {
			periods[n-1].Count++
			continue
		}
		periods = append(periods, entity.Period{Year: u.Year(), Month: u.Month(), Count: 1})
	}
	return periods, nil
}

// applyRange restricts a query to the half-open range [From, To).
func applyRange(query *gorm.DB, dateRange valueobject.DateRange) *gorm.DB {
	if dateRange.HasFrom() {
		query = query.Where("occurred_at >= ?", dateRange.From)
	}
	if dateRange.HasTo() {
		query = query.Where("occurred_at < ?", dateRange.To)
	}
	return query
}
