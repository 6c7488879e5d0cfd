package controller

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/internal/application/usecase/transfer"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/csvio"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

// MaxImportSize bounds an uploaded import file.
const MaxImportSize = 5 << 20

// TransferController handles ledger export and import endpoints.
type TransferController struct {
	exportUseCase *transfer.ExportLedgerUseCase
	importUseCase *transfer.ImportLedgerUseCase
}

// NewTransferController creates a new transfer controller instance.
func NewTransferController(
	exportUseCase *transfer.ExportLedgerUseCase,
	importUseCase *transfer.ImportLedgerUseCase,
) *TransferController {
	return &TransferController{
		exportUseCase: exportUseCase,
		importUseCase: importUseCase,
	}
}

// Export handles GET /export requests. The file is CSV unless ?format=json.
func (c *TransferController) Export(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	from, ok := dateQuery(ctx, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(ctx, "to")
	if !ok {
		return
	}

	rows, err := c.exportUseCase.Execute(ctx.Request.Context(), transfer.ExportLedgerInput{
		OwnerID: ownerID,
		From:    from,
		To:      to,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	if ctx.Query("format") == "json" {
		ctx.JSON(http.StatusOK, dto.ToExportResponse(rows))
		return
	}

	filename := fmt.Sprintf("spendings-%s.csv", time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := csvio.WriteRows(ctx.Writer, rows); err != nil {
		_ = ctx.Error(err)
	}
}

// Import handles POST /import requests. It accepts a multipart "file" field,
// a raw text/csv body, or a JSON body of rows.
func (c *TransferController) Import(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxImportSize)

	rows, err := c.readImportRows(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	result, err := c.importUseCase.Execute(ctx.Request.Context(), transfer.ImportLedgerInput{
		OwnerID: ownerID,
		Rows:    rows,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportResponse(result))
}

func (c *TransferController) readImportRows(ctx *gin.Context) ([]transfer.ImportRow, error) {
	contentType := ctx.ContentType()

	switch {
	case strings.HasPrefix(contentType, "multipart/"):
		header, err := ctx.FormFile("file")
		if err != nil {
			return nil, malformedImport("missing file field", err)
		}
		file, err := header.Open()
		if err != nil {
			return nil, malformedImport("unreadable file", err)
		}
		defer file.Close()
		return readCSVRows(file)

	case contentType == "application/json":
		var req dto.ImportRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return nil, malformedImport("invalid JSON body", err)
		}
		rows := make([]transfer.ImportRow, len(req.Rows))
		for i, row := range req.Rows {
			rows[i] = transfer.ImportRow{Line: i + 1, Row: row.ToEntity()}
		}
		return rows, nil

	default:
		return readCSVRows(ctx.Request.Body)
	}
}

func readCSVRows(r io.Reader) ([]transfer.ImportRow, error) {
	records, err := csvio.ReadRows(r)
	if err != nil {
		return nil, err
	}

	rows := make([]transfer.ImportRow, len(records))
	for i, record := range records {
		rows[i] = transfer.ImportRow{Line: record.Line, Row: record.Row, Err: record.Err}
	}
	return rows, nil
}

func malformedImport(message string, err error) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeImportMalformed,
		message,
		fmt.Errorf("%w: %w", domainerror.ErrImportMalformed, err),
	)
}
