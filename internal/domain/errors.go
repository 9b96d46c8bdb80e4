package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicate       = errors.New("duplicate resource")
	ErrConflict        = errors.New("conflict with current state")
	ErrStaleWrite      = errors.New("product changed since it was read")
	ErrFuturePurchase  = errors.New("purchase date is in the future")
	ErrNonPositiveQty  = errors.New("quantity must be greater than zero")
)
