package error

import "errors"

// Service authentication errors.
var (
	// ErrInvalidToken is returned when a service token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a service token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

const (
	ErrCodeMissingToken ErrorCode = "AUTH-010001"
	ErrCodeInvalidToken ErrorCode = "AUTH-010002"
	ErrCodeExpiredToken ErrorCode = "AUTH-010003"
	ErrCodeRateLimited  ErrorCode = "AUTH-010004"
)
