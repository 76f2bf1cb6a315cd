package models

// BoardColumn is one lane of the assembled board: the column plus its
// cards in position order.
type BoardColumn struct {
	Column
	Cards []*CardSummary
}

// Board is the full read model for one unit's Kanban view.
type Board struct {
	Columns  []*BoardColumn
	Counters BoardCounters
}

// BoardCounters are the aggregate figures shown in the board header.
type BoardCounters struct {
	TotalCards  int
	UrgentCards int
	DueSoon     int // due date within the next 3 days
}
