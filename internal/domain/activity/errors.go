package activity

import "errors"

var (
	ErrActivityNotFound = errors.New("Activity not found")
	ErrInvalidCatalog   = errors.New("Invalid activity catalog")
)
