package category

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/persistence"
	"github.com/spendings-bot/ledger/internal/testutil"
)

const owner = "owner-1"

type fixture struct {
	create       *CreateCategoryUseCase
	remove       *DeleteCategoryUseCase
	archive      *ArchiveCategoryUseCase
	restore      *RestoreCategoryUseCase
	list         *ListCategoriesUseCase
	spendingRepo adapter.SpendingRepository
	publisher    *testutil.RecordingPublisher
}

func newFixture(t *testing.T) *fixture {
	database := testutil.NewDatabase(t)
	categoryRepo := persistence.NewCategoryRepository(database.DB())
	publisher := &testutil.RecordingPublisher{}

	_, err := persistence.NewCurrencyRepository(database.DB()).Add(context.Background(), owner, "USD")
	require.NoError(t, err)

	return &fixture{
		create:       NewCreateCategoryUseCase(categoryRepo),
		remove:       NewDeleteCategoryUseCase(categoryRepo, publisher),
		archive:      NewArchiveCategoryUseCase(categoryRepo),
		restore:      NewRestoreCategoryUseCase(categoryRepo),
		list:         NewListCategoriesUseCase(categoryRepo),
		spendingRepo: persistence.NewSpendingRepository(database.DB()),
		publisher:    publisher,
	}
}

func (f *fixture) spend(t *testing.T, category string) {
	t.Helper()
	spending := entity.NewSpending(owner, decimal.NewFromInt(1), "", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	_, err := f.spendingRepo.Create(context.Background(), spending, adapter.SpendingRefs{CurrencyCode: "USD", CategoryName: category})
	require.NoError(t, err)
}

func names(categories []*entity.Category) []string {
	result := make([]string, len(categories))
	for i, c := range categories {
		result[i] = c.Name
	}
	return result
}

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	output, err := f.create.Execute(ctx, CreateCategoryInput{OwnerID: owner, Name: "  Pet   care "})
	require.NoError(t, err)
	assert.Equal(t, "Pet care", output.Category.Name)
	assert.False(t, output.Restored)

	_, err = f.create.Execute(ctx, CreateCategoryInput{OwnerID: owner, Name: "Pet care"})
	assert.Equal(t, domainerror.ErrCodeDuplicateCategory, domainerror.CodeOf(err))
	assert.Equal(t, domainerror.ClassNotPermitted, domainerror.Classify(err))

	_, err = f.create.Execute(ctx, CreateCategoryInput{OwnerID: owner, Name: strings.Repeat("a", entity.MaxCategoryNameLength+1)})
	assert.Equal(t, domainerror.ErrCodeInvalidCategoryName, domainerror.CodeOf(err))

	_, err = f.create.Execute(ctx, CreateCategoryInput{OwnerID: owner, Name: " "})
	assert.Equal(t, domainerror.ErrCodeInvalidCategoryName, domainerror.CodeOf(err))
}

func TestDeleteCategory_InUseWithoutReassignment(t *testing.T) {
	f := newFixture(t)
	f.spend(t, "Food")

	_, err := f.remove.Execute(context.Background(), DeleteCategoryInput{OwnerID: owner, Name: "Food"})
	assert.Equal(t, domainerror.ErrCodeCategoryInUse, domainerror.CodeOf(err))
	assert.Empty(t, f.publisher.Types())
}

func TestDeleteCategory_Reassigns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.spend(t, "Food")
	f.spend(t, "Food")
	f.spend(t, "Travel")

	output, err := f.remove.Execute(ctx, DeleteCategoryInput{OwnerID: owner, Name: "Food", ReassignTo: "Groceries"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, output.Moved)
	assert.Equal(t, "Groceries", output.ReassignTo.Name)
	assert.Equal(t, []entity.LedgerEventType{entity.EventCategoryRemoved}, f.publisher.Types())

	listed, err := f.list.Execute(ctx, ListCategoriesInput{OwnerID: owner})
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Travel"}, names(listed.Categories))
}

func TestDeleteCategory_ReassignToItselfIsInvalid(t *testing.T) {
	f := newFixture(t)
	f.spend(t, "Food")

	_, err := f.remove.Execute(context.Background(), DeleteCategoryInput{OwnerID: owner, Name: "Food", ReassignTo: " Food "})
	assert.Equal(t, domainerror.ErrCodeReassignToSameCategory, domainerror.CodeOf(err))
	assert.Equal(t, domainerror.ClassInvalid, domainerror.Classify(err))
}

func TestDeleteCategory_Unused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.remove.Execute(ctx, DeleteCategoryInput{OwnerID: owner, Name: "Ghost"})
	assert.Equal(t, domainerror.ErrCodeCategoryNotFound, domainerror.CodeOf(err))

	_, err = f.create.Execute(ctx, CreateCategoryInput{OwnerID: owner, Name: "Gifts"})
	require.NoError(t, err)
	output, err := f.remove.Execute(ctx, DeleteCategoryInput{OwnerID: owner, Name: "Gifts"})
	require.NoError(t, err)
	assert.Nil(t, output.ReassignTo)
	assert.Zero(t, output.Moved)
}

func TestArchiveAndRestoreCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.spend(t, "Food")

	archived, err := f.archive.Execute(ctx, ArchiveCategoryInput{OwnerID: owner, Name: "Food"})
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	_, err = f.archive.Execute(ctx, ArchiveCategoryInput{OwnerID: owner, Name: "Food"})
	assert.Equal(t, domainerror.ErrCodeCategoryAlreadyArchived, domainerror.CodeOf(err))

	active, err := f.list.Execute(ctx, ListCategoriesInput{OwnerID: owner})
	require.NoError(t, err)
	assert.Empty(t, active.Categories)

	all, err := f.list.Execute(ctx, ListCategoriesInput{OwnerID: owner, IncludeArchived: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Food"}, names(all.Categories))

	restored, err := f.restore.Execute(ctx, ArchiveCategoryInput{OwnerID: owner, Name: "Food"})
	require.NoError(t, err)
	assert.False(t, restored.Archived)

	_, err = f.restore.Execute(ctx, ArchiveCategoryInput{OwnerID: owner, Name: "Food"})
	assert.Equal(t, domainerror.ErrCodeCategoryNotArchived, domainerror.CodeOf(err))
}

func TestCreateCategory_RestoresArchived(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, CreateCategoryInput{OwnerID: owner, Name: "Books"})
	require.NoError(t, err)
	_, err = f.archive.Execute(ctx, ArchiveCategoryInput{OwnerID: owner, Name: "Books"})
	require.NoError(t, err)

	output, err := f.create.Execute(ctx, CreateCategoryInput{OwnerID: owner, Name: "Books"})
	require.NoError(t, err)
	assert.True(t, output.Restored)
	assert.False(t, output.Category.Archived)
}
