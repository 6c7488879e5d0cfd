package owner

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
	"github.com/spendings-bot/ledger/internal/integration/persistence"
	"github.com/spendings-bot/ledger/internal/testutil"
)

func TestOnboardOwner_IsIdempotent(t *testing.T) {
	database := testutil.NewDatabase(t)
	ownerRepo := persistence.NewOwnerRepository(database.DB())
	uc := NewOnboardOwnerUseCase(ownerRepo)
	ctx := context.Background()

	first, err := uc.Execute(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCurrencies, first.CreatedCurrencies)
	assert.ElementsMatch(t, entity.DefaultCategories, first.CreatedCategories)
	assert.Equal(t, "USD", first.Owner.MainCurrency)

	second, err := uc.Execute(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, second.CreatedCurrencies)
	assert.Empty(t, second.CreatedCategories)
	assert.Equal(t, "USD", second.Owner.MainCurrency)

	_, err = uc.Execute(ctx, "")
	assert.Equal(t, domainerror.ErrCodeMissingOwner, domainerror.CodeOf(err))
}

func TestDeleteOwnerData_KeepsRatesAndOtherOwners(t *testing.T) {
	database := testutil.NewDatabase(t)
	ownerRepo := persistence.NewOwnerRepository(database.DB())
	spendingRepo := persistence.NewSpendingRepository(database.DB())
	rateRepo := persistence.NewExchangeRateRepository(database.DB())
	publisher := &testutil.RecordingPublisher{}
	ctx := context.Background()
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	onboard := NewOnboardOwnerUseCase(ownerRepo)
	for _, id := range []string{"alice", "bob"} {
		_, err := onboard.Execute(ctx, id)
		require.NoError(t, err)
		_, err = spendingRepo.Create(ctx, entity.NewSpending(id, decimal.NewFromInt(5), "", day), adapter.SpendingRefs{CurrencyCode: "USD", CategoryName: "Food"})
		require.NoError(t, err)
	}
	require.NoError(t, rateRepo.Save(ctx, entity.NewExchangeRate("EUR", "USD", day, decimal.RequireFromString("1.1"))))

	counts, err := NewDeleteOwnerDataUseCase(ownerRepo, publisher).Execute(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Spendings)
	assert.EqualValues(t, len(entity.DefaultCategories), counts.Categories)
	assert.EqualValues(t, len(entity.DefaultCurrencies), counts.Currencies)
	assert.Equal(t, []entity.LedgerEventType{entity.EventOwnerDataDeleted}, publisher.Types())

	alice, err := ownerRepo.FindByID(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, alice)

	rate, err := rateRepo.Find(ctx, "EUR", "USD", day)
	require.NoError(t, err)
	require.NotNil(t, rate)

	remaining, err := spendingRepo.FindInRange(ctx, "bob", valueobject.DateRange{})
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
