package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/juridesk/juridesk/internal/database"
	"github.com/juridesk/juridesk/internal/models"
)

func (s *service) validateCreateCard(req CreateCardRequest) error {
	if req.Title == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > 120 {
		return ErrTitleTooLong
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	if req.ResponsibleID <= 0 {
		return ErrNoResponsible
	}
	return nil
}

// GetCard retrieves one card, scoped to the unit through its column.
func (s *service) GetCard(ctx context.Context, unitID, cardID int) (*models.Card, error) {
	card := &models.Card{}
	var caseID, taskID sql.NullInt64
	var dueDate sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.column_id, c.title, c.description, c.case_id, c.task_id,
		        c.priority, c.due_date, c.responsible_id, c.position, c.created_at, c.updated_at
		 FROM board_cards c
		 JOIN board_columns col ON col.id = c.column_id
		 WHERE c.id = ? AND col.unit_id = ?`,
		cardID, unitID,
	).Scan(
		&card.ID, &card.ColumnID, &card.Title, &card.Description, &caseID, &taskID,
		&card.Priority, &dueDate, &card.ResponsibleID, &card.Position,
		&card.CreatedAt, &card.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if caseID.Valid {
		v := int(caseID.Int64)
		card.CaseID = &v
	}
	if taskID.Valid {
		v := int(taskID.Int64)
		card.TaskID = &v
	}
	if dueDate.Valid {
		d := dueDate.Time
		card.DueDate = &d
	}
	return card, nil
}

// CreateCard creates a card at the end of the target column: its position
// is the column's current max position plus one.
func (s *service) CreateCard(ctx context.Context, unitID int, req CreateCardRequest) (*models.Card, error) {
	if err := s.validateCreateCard(req); err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	var cardID int64
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := columnInUnit(ctx, tx, unitID, req.ColumnID); err != nil {
			return err
		}
		if err := refsInUnit(ctx, tx, unitID, req.CaseID, req.TaskID, req.ResponsibleID); err != nil {
			return err
		}

		var maxPos int
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), 0) FROM board_cards WHERE column_id = ?`,
			req.ColumnID,
		).Scan(&maxPos)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO board_cards
			 (column_id, title, description, case_id, task_id, priority, due_date, responsible_id, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			req.ColumnID, req.Title, req.Description,
			nullableInt(req.CaseID), nullableInt(req.TaskID),
			string(priority), req.DueDate, req.ResponsibleID, maxPos+1,
		)
		if err != nil {
			return err
		}
		cardID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("creating card: %w", err)
	}

	return s.GetCard(ctx, unitID, int(cardID))
}

// UpdateCard updates card fields. Position and column are never touched
// here; movement goes through MoveCard so ordering stays dense.
func (s *service) UpdateCard(ctx context.Context, unitID, cardID int, req UpdateCardRequest) error {
	if req.Title != nil {
		if *req.Title == "" {
			return ErrEmptyTitle
		}
		if len(*req.Title) > 120 {
			return ErrTitleTooLong
		}
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	if req.ResponsibleID != nil && *req.ResponsibleID <= 0 {
		return ErrNoResponsible
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := cardInUnit(ctx, tx, unitID, cardID); err != nil {
			return err
		}
		if err := refsInUnit(ctx, tx, unitID, req.CaseID, req.TaskID, 0); err != nil {
			return err
		}
		if req.ResponsibleID != nil {
			if err := refsInUnit(ctx, tx, unitID, nil, nil, *req.ResponsibleID); err != nil {
				return err
			}
		}

		set := func(query string, arg any) error {
			_, err := tx.ExecContext(ctx, query, arg, cardID)
			return err
		}
		if req.Title != nil {
			if err := set(`UPDATE board_cards SET title = ? WHERE id = ?`, *req.Title); err != nil {
				return err
			}
		}
		if req.Description != nil {
			if err := set(`UPDATE board_cards SET description = ? WHERE id = ?`, *req.Description); err != nil {
				return err
			}
		}
		if req.CaseID != nil {
			if err := set(`UPDATE board_cards SET case_id = ? WHERE id = ?`, *req.CaseID); err != nil {
				return err
			}
		}
		if req.TaskID != nil {
			if err := set(`UPDATE board_cards SET task_id = ? WHERE id = ?`, *req.TaskID); err != nil {
				return err
			}
		}
		if req.Priority != nil {
			if err := set(`UPDATE board_cards SET priority = ? WHERE id = ?`, string(*req.Priority)); err != nil {
				return err
			}
		}
		if req.ClearDueDate {
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_cards SET due_date = NULL WHERE id = ?`, cardID); err != nil {
				return err
			}
		} else if req.DueDate != nil {
			if err := set(`UPDATE board_cards SET due_date = ? WHERE id = ?`, *req.DueDate); err != nil {
				return err
			}
		}
		if req.ResponsibleID != nil {
			if err := set(`UPDATE board_cards SET responsible_id = ? WHERE id = ?`, *req.ResponsibleID); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE board_cards SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, cardID)
		return err
	})
}

// DeleteCard removes a card and closes the gap it leaves: every remaining
// card in the column with a higher position shifts down by one.
func (s *service) DeleteCard(ctx context.Context, unitID, cardID int) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		columnID, position, err := cardLocation(ctx, tx, unitID, cardID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM board_cards WHERE id = ?`, cardID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE board_cards SET position = position - 1
			 WHERE column_id = ? AND position > ?`,
			columnID, position)
		return err
	})
}

// MoveCard moves a card to destPosition in destColumnID as one atomic
// renumbering. Cross-column: the source column closes the gap left behind
// and the destination column opens a slot. Same-column: only the positions
// between source and destination shift. A destination position past the end
// of the column is taken as-is, the shift step simply has nothing to move.
// Repeating a move with identical arguments is a no-op.
func (s *service) MoveCard(ctx context.Context, unitID, cardID, destColumnID, destPosition int) error {
	if destPosition < 1 {
		return ErrInvalidPosition
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		sourceColumnID, sourcePosition, err := cardLocation(ctx, tx, unitID, cardID)
		if err != nil {
			return err
		}
		if err := columnInUnit(ctx, tx, unitID, destColumnID); err != nil {
			return err
		}

		switch {
		case destColumnID != sourceColumnID:
			// Close the gap in the source column.
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_cards SET position = position - 1
				 WHERE column_id = ? AND position > ?`,
				sourceColumnID, sourcePosition); err != nil {
				return err
			}
			// Open a slot in the destination column.
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_cards SET position = position + 1
				 WHERE column_id = ? AND position >= ?`,
				destColumnID, destPosition); err != nil {
				return err
			}

		case destPosition > sourcePosition:
			// Moving forward: everything in (source, dest] shifts down.
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_cards SET position = position - 1
				 WHERE column_id = ? AND position > ? AND position <= ?`,
				sourceColumnID, sourcePosition, destPosition); err != nil {
				return err
			}

		case destPosition < sourcePosition:
			// Moving backward: everything in [dest, source) shifts up.
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_cards SET position = position + 1
				 WHERE column_id = ? AND position >= ? AND position < ?`,
				sourceColumnID, destPosition, sourcePosition); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE board_cards
			 SET column_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			destColumnID, destPosition, cardID)
		return err
	})
}

// cardLocation returns the card's column and position, scoped to the unit.
func cardLocation(ctx context.Context, tx *sql.Tx, unitID, cardID int) (columnID, position int, err error) {
	err = tx.QueryRowContext(ctx,
		`SELECT c.column_id, c.position
		 FROM board_cards c
		 JOIN board_columns col ON col.id = c.column_id
		 WHERE c.id = ? AND col.unit_id = ?`,
		cardID, unitID,
	).Scan(&columnID, &position)
	if err == sql.ErrNoRows {
		return 0, 0, models.ErrNotFound
	}
	return columnID, position, err
}

// cardInUnit reports models.ErrNotFound unless the card's column belongs
// to the unit.
func cardInUnit(ctx context.Context, tx *sql.Tx, unitID, cardID int) error {
	_, _, err := cardLocation(ctx, tx, unitID, cardID)
	return err
}

// refsInUnit checks that the optional case/task links and the responsible
// user all belong to the unit. A responsibleID of 0 skips that check.
func refsInUnit(ctx context.Context, tx *sql.Tx, unitID int, caseID, taskID *int, responsibleID int) error {
	var id int
	if caseID != nil {
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM cases WHERE id = ? AND unit_id = ?`, *caseID, unitID).Scan(&id)
		if err == sql.ErrNoRows {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}
	}
	if taskID != nil {
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM office_tasks WHERE id = ? AND unit_id = ?`, *taskID, unitID).Scan(&id)
		if err == sql.ErrNoRows {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}
	}
	if responsibleID > 0 {
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE id = ? AND unit_id = ?`, responsibleID, unitID).Scan(&id)
		if err == sql.ErrNoRows {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
