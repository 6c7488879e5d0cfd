package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// defaultServiceTokenDuration is used when GenerateToken gets no TTL.
const defaultServiceTokenDuration = time.Hour

// serviceTokenService implements the adapter.TokenService interface with HS256 JWTs.
// The subject claim carries the owner's external identifier.
type serviceTokenService struct {
	secret []byte
	issuer string
}

// NewServiceTokenService creates a new service token service instance.
func NewServiceTokenService(secret, issuer string) adapter.TokenService {
	return &serviceTokenService{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// GenerateToken issues a token acting on behalf of ownerID.
func (s *serviceTokenService) GenerateToken(ctx context.Context, ownerID string, ttl time.Duration) (string, error) {
	if ownerID == "" {
		return "", domainerror.ErrMissingOwner
	}
	if ttl <= 0 {
		ttl = defaultServiceTokenDuration
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.issuer,
		Subject:   ownerID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a token and returns its claims.
func (s *serviceTokenService) ValidateToken(ctx context.Context, tokenString string) (*adapter.ServiceClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domainerror.ErrInvalidToken
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &adapter.ServiceClaims{
		OwnerID:   claims.Subject,
		ExpiresAt: expiresAt,
	}, nil
}
