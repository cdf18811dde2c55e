package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain errors surfaced to the HTTP boundary. Controllers map these to
// status codes; anything else becomes a logged 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient available quantity")
	ErrRequestNotPending  = errors.New("request is not pending")
	ErrRequestNotActive   = errors.New("request is not active")
	ErrActiveBorrowExists = errors.New("user already has an active borrow for this item")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicatePhone     = errors.New("phone number already registered")
	ErrDuplicateQRCode    = errors.New("qr code already in use")
)

// ValidationError carries a caller-visible message for malformed input or a
// counter-invariant violation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// mapNotFound converts gorm's record-not-found into the domain sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
