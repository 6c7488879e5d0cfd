package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

func TestReadRows_HeaderDrivenAndCaseInsensitive(t *testing.T) {
	input := "Category, AMOUNT ,Date,Currency,Notes\n" +
		"Food,12.50,2024-03-01,usd,ignored\n" +
		"\n" +
		"Travel,\"1,5\",01/03/2024,EUR,\n"

	records, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2, records[0].Line)
	assert.NoError(t, records[0].Err)
	assert.Equal(t, entity.LedgerRow{Date: "2024-03-01", Amount: "12.50", Currency: "usd", Category: "Food"}, records[0].Row)

	assert.Equal(t, 4, records[1].Line, "blank lines still count")
	assert.Equal(t, "1,5", records[1].Row.Amount)
	assert.Empty(t, records[1].Row.Description)
}

func TestReadRows_MissingColumnFailsWholeFile(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"no currency column", "date,amount,category\n2024-03-01,1,Food\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ReadRows(strings.NewReader(tt.input))
			assert.Nil(t, records)
			assert.Equal(t, domainerror.ErrCodeImportMalformed, domainerror.CodeOf(err))
			assert.Equal(t, domainerror.ClassInvalid, domainerror.Classify(err))
		})
	}
}

func TestReadRows_ShortRowIsRejectedNotFatal(t *testing.T) {
	input := "date,amount,currency,category,description\n" +
		"2024-03-01,1\n" +
		"2024-03-02,2,USD,Food,lunch\n"

	records, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.EqualError(t, records[0].Err, "incomplete row")
	assert.NoError(t, records[1].Err)
	assert.Equal(t, "lunch", records[1].Row.Description)
}

func TestWriteRows_RoundTrip(t *testing.T) {
	rows := []entity.LedgerRow{
		{Date: "2024-03-01", Amount: "12.50", Currency: "USD", Category: "Food", Description: "tacos, extra \"salsa\""},
		{Date: "2024-03-01T10:15:00Z", Amount: "3.00", Currency: "EUR", Category: "Transport"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "date,amount,currency,category,description\n"))

	records, err := ReadRows(&buf)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for i, record := range records {
		assert.NoError(t, record.Err)
		assert.Equal(t, rows[i], record.Row)
	}
}
