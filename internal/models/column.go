package models

import "time"

// Column is a Kanban lane owned by a single unit.
// SortOrder is dense ascending within the unit, starting at 1.
type Column struct {
	ID        int
	UnitID    int
	Name      string
	Color     string
	SortOrder int
	CreatedAt time.Time
}
