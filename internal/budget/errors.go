package budget

import "errors"

var (
	ErrNotFound        = errors.New("budget category not found")
	ErrDuplicate       = errors.New("budget category already exists")
	ErrLastCategory    = errors.New("cannot delete the last category")
	ErrInvalidName     = errors.New("category name is required")
	ErrInvalidLimit    = errors.New("limit must be a non-negative amount")
	ErrInvalidDuration = errors.New("duration must be between 1 and 12 months")
)
