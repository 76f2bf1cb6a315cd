package models

import "errors"

// Domain errors shared across services. Cross-unit access reports
// ErrNotFound rather than a permission error so that ids belonging to
// other offices are indistinguishable from ids that do not exist.
var (
	ErrNotFound       = errors.New("not found")
	ErrColumnHasCards = errors.New("cannot delete column with cards")
)
