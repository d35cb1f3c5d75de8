package utils

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")

	ErrItineraryNotFound      = errors.New("itinerary not found")
	ErrGeneratorNotConfigured = errors.New("generator api key not configured")
	ErrGenerationFailed       = errors.New("itinerary generation failed")
	ErrTicketExpired          = errors.New("staged preferences ticket invalid or expired")
)
