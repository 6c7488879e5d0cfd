package adapter

import (
	"context"
	"time"
)

// ServiceClaims represents the claims of a front end service token.
type ServiceClaims struct {
	OwnerID   string
	ExpiresAt time.Time
}

// TokenService defines the interface for service token operations.
type TokenService interface {
	// GenerateToken issues a token acting on behalf of ownerID.
	GenerateToken(ctx context.Context, ownerID string, ttl time.Duration) (string, error)

	// ValidateToken validates a token and returns its claims.
	ValidateToken(ctx context.Context, token string) (*ServiceClaims, error)
}
