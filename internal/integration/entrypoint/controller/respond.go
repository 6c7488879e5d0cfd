package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/middleware"
)

// requireOwner returns the authenticated owner or writes a 401 response.
func requireOwner(ctx *gin.Context) (string, bool) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Owner not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", false
	}
	return ownerID, true
}

// respondError writes the HTTP response for a use case error.
func respondError(ctx *gin.Context, err error) {
	class := domainerror.Classify(err)
	status := statusForClass(class)

	if class == domainerror.ClassInternal {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(status, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  string(domainerror.ErrCodeInternal),
		})
		return
	}

	response := dto.ErrorResponse{Error: err.Error()}
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		response.Error = ledgerErr.Message
		response.Code = string(ledgerErr.Code)
	}
	ctx.JSON(status, response)
}

// statusForClass maps an error class to an HTTP status code.
func statusForClass(class domainerror.Class) int {
	switch class {
	case domainerror.ClassNotFound:
		return http.StatusNotFound
	case domainerror.ClassNotPermitted:
		return http.StatusConflict
	case domainerror.ClassInvalid:
		return http.StatusBadRequest
	case domainerror.ClassUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// badRequest writes a 400 response with the given code.
func badRequest(ctx *gin.Context, message string, code domainerror.ErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// dateQuery parses an optional date query parameter. It writes a 400 response
// and returns false when the value is present but malformed.
func dateQuery(ctx *gin.Context, name string) (time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := valueobject.ParseLedgerDate(raw)
	if err != nil {
		badRequest(ctx, "Invalid "+name+" date", domainerror.ErrCodeInvalidDate)
		return time.Time{}, false
	}
	return t, true
}
