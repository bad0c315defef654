package domain

import "errors"

// Error taxonomy shared by services; handlers map these to HTTP status
// codes with errors.Is, so services can wrap them with context via
// fmt.Errorf("...: %w", ErrX).
var (
	ErrValidation         = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("not allowed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidState       = errors.New("invalid state for this action")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrQuotaExceeded      = errors.New("monthly request quota exceeded")
)
