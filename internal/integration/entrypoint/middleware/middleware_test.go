package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/adapters"
	"github.com/spendings-bot/ledger/internal/integration/cache"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withOwner stands in for the auth middleware.
func withOwner(ownerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(OwnerIDKey), ownerID)
		c.Next()
	}
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var response dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestAuthenticate(t *testing.T) {
	tokens := adapters.NewServiceTokenService("test-secret", "spendings-bot")
	auth := NewAuthMiddleware(tokens)

	engine := gin.New()
	engine.GET("/whoami", auth.Authenticate(), func(c *gin.Context) {
		ownerID, _ := GetOwnerIDFromContext(c)
		c.String(http.StatusOK, ownerID)
	})

	valid, err := tokens.GenerateToken(context.Background(), "owner-42", time.Hour)
	require.NoError(t, err)
	foreign, err := adapters.NewServiceTokenService("other-secret", "spendings-bot").
		GenerateToken(context.Background(), "owner-42", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   domainerror.ErrorCode
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "wrong secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "owner-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantCode != "" {
				assert.Equal(t, string(tt.wantCode), decodeError(t, recorder).Code)
			} else {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestRateLimiter_PerOwnerBudget(t *testing.T) {
	limiter := NewRateLimiterWithConfig(0.001, 2)

	engine := gin.New()
	engine.GET("/ping", func(c *gin.Context) {
		c.Set(string(OwnerIDKey), c.Query("owner"))
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func(owner string) int {
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping?owner="+owner, nil))
		return recorder.Code
	}

	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusTooManyRequests, call("alice"))

	// Another owner has its own budget
	assert.Equal(t, http.StatusNoContent, call("bob"))

	limiter.Reset()
	assert.Equal(t, http.StatusNoContent, call("alice"))
}

func TestIdempotency_ReplaysRepeatedRequests(t *testing.T) {
	server := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	defer client.Close()

	store := cache.NewRedisIdempotencyStore(client)

	calls := 0
	handler := func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	}

	engine := gin.New()
	engine.POST("/spendings", withOwner("alice"), Idempotency(store, time.Minute), handler)
	engine.GET("/spendings", withOwner("alice"), Idempotency(store, time.Minute), handler)

	post := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/spendings", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)
		return recorder
	}

	first := post("tap-1")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.JSONEq(t, `{"call":1}`, first.Body.String())
	assert.Empty(t, first.Header().Get(IdempotencyReplayHeader))

	replayed := post("tap-1")
	assert.Equal(t, http.StatusCreated, replayed.Code)
	assert.JSONEq(t, `{"call":1}`, replayed.Body.String())
	assert.Equal(t, "true", replayed.Header().Get(IdempotencyReplayHeader))
	assert.Equal(t, 1, calls)

	fresh := post("tap-2")
	assert.JSONEq(t, `{"call":2}`, fresh.Body.String())

	// No key means no deduplication
	post("")
	post("")
	assert.Equal(t, 4, calls)

	req := httptest.NewRequest(http.MethodGet, "/spendings", nil)
	req.Header.Set(IdempotencyKeyHeader, "tap-1")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	assert.JSONEq(t, fmt.Sprintf(`{"call":%d}`, 5), recorder.Body.String())
}

func TestIdempotency_NilStorePassesThrough(t *testing.T) {
	calls := 0
	engine := gin.New()
	engine.POST("/x", withOwner("alice"), Idempotency(nil, time.Minute), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(IdempotencyKeyHeader, "same")
		engine.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
}
