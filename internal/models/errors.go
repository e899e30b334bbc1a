package models

import "errors"

// Common errors
var (
	ErrNotFound     = errors.New("resource not found") // General not found
	ErrIdeaNotFound = errors.New("idea not found")

	// Auth errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Scene breakdown errors
	ErrVersionNotFound   = errors.New("scene breakdown version not found")
	ErrInsufficientCoins = errors.New("insufficient coins")

	// Generation gateway errors. Handlers map these to 429 / 503 / 500.
	ErrGenerationRateLimited = errors.New("generation rate limit exceeded")
	ErrGenerationUnavailable = errors.New("generation service unavailable")
	ErrGenerationFailed      = errors.New("failed to generate scene breakdown")

	// Generic errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
