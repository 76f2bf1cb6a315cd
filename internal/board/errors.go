package board

import "errors"

// Board-related errors
var (
	// Validation errors
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name cannot exceed 50 characters")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrTitleTooLong    = errors.New("title cannot exceed 120 characters")
	ErrInvalidColor    = errors.New("color must be a #RRGGBB value")
	ErrInvalidPriority = errors.New("unknown priority")
	ErrInvalidPosition = errors.New("position must be 1 or greater")
	ErrInvalidOrder    = errors.New("order must be 1 or greater")
	ErrNoResponsible   = errors.New("responsible user is required")
	ErrEmptyReorder    = errors.New("reorder requires at least one column")
)
