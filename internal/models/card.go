package models

import "time"

// Card is a unit of work placed in exactly one column.
// Position is dense ascending within the column, starting at 1.
type Card struct {
	ID            int
	ColumnID      int
	Title         string
	Description   string
	CaseID        *int
	TaskID        *int
	Priority      Priority
	DueDate       *time.Time
	ResponsibleID int
	Position      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CardSummary is the board read-model view of a card: the card fields the
// frontend renders plus the linked case/task/responsible expansions.
type CardSummary struct {
	ID              int
	ColumnID        int
	Title           string
	Description     string
	Priority        Priority
	DueDate         *time.Time
	Position        int
	CaseID          *int
	CaseNumber      string
	CaseTitle       string
	TaskID          *int
	TaskTitle       string
	ResponsibleID   int
	ResponsibleName string
}
