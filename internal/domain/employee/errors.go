package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrUnauthorized        = errors.New("unauthorized to access this employee")
	ErrInvalidActivation   = errors.New("cannot activate a month that has not started")
	ErrReadingOutsideRange = errors.New("reading date cannot be in the future")
)
