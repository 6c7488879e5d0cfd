// Package csvio reads and writes ledger rows as CSV.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// Column names, in export order.
const (
	ColumnDate        = "date"
	ColumnAmount      = "amount"
	ColumnCurrency    = "currency"
	ColumnCategory    = "category"
	ColumnDescription = "description"
)

// Header is the header row written on export.
var Header = []string{ColumnDate, ColumnAmount, ColumnCurrency, ColumnCategory, ColumnDescription}

var requiredColumns = []string{ColumnDate, ColumnAmount, ColumnCurrency, ColumnCategory}

// Record is one data row read from a file. Err is set when the row itself could
// not be decoded; such rows are still returned so the caller can reject them.
type Record struct {
	Line int
	Row  entity.LedgerRow
	Err  error
}

// ReadRows decodes a ledger CSV. Columns are located by header name, ignoring
// case and surrounding space; description is optional. A missing header or
// required column fails the whole file.
func ReadRows(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Short rows are rejected per row
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("file is empty", err)
		}
		return nil, malformed("failed to read CSV header", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, malformed(
			"CSV header must include "+strings.Join(requiredColumns, ", ")+" columns",
			fmt.Errorf("missing columns: %s", strings.Join(missing, ", ")),
		)
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("failed to read CSV: %w", err)
			}
			records = append(records, Record{Line: parseErr.StartLine, Err: fmt.Errorf("unreadable row: %w", parseErr.Err)})
			continue
		}

		line, _ := reader.FieldPos(0)
		record := Record{Line: line}
		get := func(name string) (string, bool) {
			i, ok := columns[name]
			if !ok || i >= len(fields) {
				return "", false
			}
			return strings.TrimSpace(fields[i]), true
		}

		complete := true
		var ok bool
		if record.Row.Date, ok = get(ColumnDate); !ok {
			complete = false
		}
		if record.Row.Amount, ok = get(ColumnAmount); !ok {
			complete = false
		}
		if record.Row.Currency, ok = get(ColumnCurrency); !ok {
			complete = false
		}
		if record.Row.Category, ok = get(ColumnCategory); !ok {
			complete = false
		}
		record.Row.Description, _ = get(ColumnDescription)
		if !complete {
			record.Err = errors.New("incomplete row")
		}
		records = append(records, record)
	}
	return records, nil
}

// WriteRows encodes rows with a header line.
func WriteRows(w io.Writer, rows []entity.LedgerRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Date, row.Amount, row.Currency, row.Category, row.Description}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func malformed(message string, err error) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeImportMalformed,
		message,
		fmt.Errorf("%w: %w", domainerror.ErrImportMalformed, err),
	)
}
