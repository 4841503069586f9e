package entities

import "errors"

// Every fallible engine operation reports one of these kinds, usually wrapped
// with the offending identifier via fmt.Errorf("%w"). Match with errors.Is.
var (
	ErrDuplicateID     = errors.New("duplicate id")
	ErrNotFound        = errors.New("not found")
	ErrCarUnavailable  = errors.New("car unavailable")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidDate     = errors.New("invalid date")
	ErrAlreadyClosed   = errors.New("rental already closed")
	ErrInvalidRate     = errors.New("invalid rate")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDriver   = errors.New("invalid driver id")
)
