package valueobject

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var errMalformedCursor = errors.New("malformed cursor")

// SpendingCursor is the keyset position of the last spending on a page,
// ordered by occurred_at DESC, id DESC.
type SpendingCursor struct {
	OccurredAt time.Time
	ID         uuid.UUID
}

// Encode returns the opaque string form of the cursor.
func (c SpendingCursor) Encode() string {
	raw := strconv.FormatInt(c.OccurredAt.UnixMicro(), 10) + ":" + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeSpendingCursor parses a cursor produced by Encode.
func DecodeSpendingCursor(token string) (SpendingCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return SpendingCursor{}, errMalformedCursor
	}
	micros, id, ok := strings.Cut(string(raw), ":")
	if !ok {
		return SpendingCursor{}, errMalformedCursor
	}
	usec, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return SpendingCursor{}, errMalformedCursor
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return SpendingCursor{}, errMalformedCursor
	}
	return SpendingCursor{OccurredAt: time.UnixMicro(usec).UTC(), ID: parsedID}, nil
}
