package board

import (
	"context"
	"database/sql"
	"time"

	"github.com/juridesk/juridesk/internal/models"
)

// dueSoonWindow is how far ahead a due date counts toward the "due soon"
// board counter.
const dueSoonWindow = 3 * 24 * time.Hour

// GetBoard assembles the unit's board: columns by sort order, each with
// its cards by position, cards expanded with their linked case, task and
// responsible summaries, plus the aggregate counters.
func (s *service) GetBoard(ctx context.Context, unitID int) (*models.Board, error) {
	columns, err := s.loadColumns(ctx, unitID)
	if err != nil {
		return nil, err
	}

	cards, err := s.loadCardSummaries(ctx, unitID)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[int][]*models.CardSummary, len(columns))
	for _, c := range cards {
		byColumn[c.ColumnID] = append(byColumn[c.ColumnID], c)
	}

	board := &models.Board{Columns: make([]*models.BoardColumn, 0, len(columns))}
	for _, col := range columns {
		board.Columns = append(board.Columns, &models.BoardColumn{
			Column: *col,
			Cards:  byColumn[col.ID],
		})
	}

	now := time.Now()
	for _, c := range cards {
		board.Counters.TotalCards++
		if c.Priority == models.PriorityUrgent {
			board.Counters.UrgentCards++
		}
		if c.DueDate != nil && !c.DueDate.Before(now) && c.DueDate.Before(now.Add(dueSoonWindow)) {
			board.Counters.DueSoon++
		}
	}

	return board, nil
}

func (s *service) loadColumns(ctx context.Context, unitID int) ([]*models.Column, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unit_id, name, color, sort_order, created_at
		 FROM board_columns
		 WHERE unit_id = ?
		 ORDER BY sort_order`,
		unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*models.Column
	for rows.Next() {
		col := &models.Column{}
		if err := rows.Scan(&col.ID, &col.UnitID, &col.Name, &col.Color, &col.SortOrder, &col.CreatedAt); err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (s *service) loadCardSummaries(ctx context.Context, unitID int) ([]*models.CardSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.column_id, c.title, c.description, c.priority, c.due_date, c.position,
		        c.case_id, COALESCE(cs.number, ''), COALESCE(cs.title, ''),
		        c.task_id, COALESCE(ot.title, ''),
		        c.responsible_id, u.name
		 FROM board_cards c
		 JOIN board_columns col ON col.id = c.column_id
		 JOIN users u ON u.id = c.responsible_id
		 LEFT JOIN cases cs ON cs.id = c.case_id
		 LEFT JOIN office_tasks ot ON ot.id = c.task_id
		 WHERE col.unit_id = ?
		 ORDER BY c.column_id, c.position`,
		unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.CardSummary
	for rows.Next() {
		c := &models.CardSummary{}
		var caseID, taskID sql.NullInt64
		var dueDate sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.ColumnID, &c.Title, &c.Description, &c.Priority, &dueDate, &c.Position,
			&caseID, &c.CaseNumber, &c.CaseTitle,
			&taskID, &c.TaskTitle,
			&c.ResponsibleID, &c.ResponsibleName,
		); err != nil {
			return nil, err
		}
		if caseID.Valid {
			v := int(caseID.Int64)
			c.CaseID = &v
		}
		if taskID.Valid {
			v := int(taskID.Int64)
			c.TaskID = &v
		}
		if dueDate.Valid {
			d := dueDate.Time
			c.DueDate = &d
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
