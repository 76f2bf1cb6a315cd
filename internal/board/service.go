// Package board implements the Kanban board for a legal office: column and
// card CRUD, the position renumbering engine that keeps per-column card
// positions and per-unit column orders dense, and the board read model.
package board

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/juridesk/juridesk/internal/database"
	"github.com/juridesk/juridesk/internal/models"
)

// Service defines all board-related business operations. Every operation
// takes the calling unit's id explicitly; ids belonging to another unit
// behave exactly like ids that do not exist.
type Service interface {
	// Read operations
	GetBoard(ctx context.Context, unitID int) (*models.Board, error)
	GetColumn(ctx context.Context, unitID, columnID int) (*models.Column, error)
	GetCard(ctx context.Context, unitID, cardID int) (*models.Card, error)

	// Column operations
	CreateColumn(ctx context.Context, unitID int, req CreateColumnRequest) (*models.Column, error)
	UpdateColumn(ctx context.Context, unitID, columnID int, req UpdateColumnRequest) error
	DeleteColumn(ctx context.Context, unitID, columnID int) error
	ReorderColumns(ctx context.Context, unitID int, orders []ColumnOrder) error

	// Card operations
	CreateCard(ctx context.Context, unitID int, req CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, unitID, cardID int, req UpdateCardRequest) error
	DeleteCard(ctx context.Context, unitID, cardID int) error
	MoveCard(ctx context.Context, unitID, cardID, destColumnID, destPosition int) error
}

// CreateColumnRequest encapsulates data for creating a column.
// SortOrder nil means append to the end of the unit's board.
type CreateColumnRequest struct {
	Name      string
	Color     string
	SortOrder *int
}

// UpdateColumnRequest carries optional column field updates; nil means
// leave the field unchanged. SortOrder is set directly, without any
// renumbering of the other columns.
type UpdateColumnRequest struct {
	Name      *string
	Color     *string
	SortOrder *int
}

// ColumnOrder is one entry of a bulk column reorder.
type ColumnOrder struct {
	ID        int
	SortOrder int
}

// CreateCardRequest encapsulates all data needed to create a card.
// The card is appended to the end of the target column.
type CreateCardRequest struct {
	ColumnID      int
	Title         string
	Description   string
	CaseID        *int
	TaskID        *int
	Priority      models.Priority // empty means medium
	DueDate       *time.Time
	ResponsibleID int
}

// UpdateCardRequest carries optional card field updates; nil means leave
// the field unchanged. Position is never updated here, only via MoveCard.
type UpdateCardRequest struct {
	Title         *string
	Description   *string
	CaseID        *int
	TaskID        *int
	Priority      *models.Priority
	DueDate       *time.Time
	ClearDueDate  bool
	ResponsibleID *int
}

// service implements Service over the SQLite store.
type service struct {
	db *sql.DB
}

// NewService creates a new board service.
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (s *service) validateCreateColumn(req CreateColumnRequest) error {
	if req.Name == "" {
		return ErrEmptyName
	}
	if len(req.Name) > 50 {
		return ErrNameTooLong
	}
	if req.Color != "" && !colorRe.MatchString(req.Color) {
		return ErrInvalidColor
	}
	if req.SortOrder != nil && *req.SortOrder < 1 {
		return ErrInvalidOrder
	}
	return nil
}

// GetColumn retrieves one of the unit's columns.
func (s *service) GetColumn(ctx context.Context, unitID, columnID int) (*models.Column, error) {
	col := &models.Column{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, unit_id, name, color, sort_order, created_at
		 FROM board_columns WHERE id = ? AND unit_id = ?`,
		columnID, unitID,
	).Scan(&col.ID, &col.UnitID, &col.Name, &col.Color, &col.SortOrder, &col.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return col, nil
}

// CreateColumn creates a column for the unit. Without an explicit order it
// is appended after the unit's current last column.
func (s *service) CreateColumn(ctx context.Context, unitID int, req CreateColumnRequest) (*models.Column, error) {
	if err := s.validateCreateColumn(req); err != nil {
		return nil, err
	}
	color := req.Color
	if color == "" {
		color = "#6B7280"
	}

	col := &models.Column{UnitID: unitID, Name: req.Name, Color: color}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if req.SortOrder != nil {
			col.SortOrder = *req.SortOrder
		} else {
			var maxOrder int
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(sort_order), 0) FROM board_columns WHERE unit_id = ?`,
				unitID,
			).Scan(&maxOrder)
			if err != nil {
				return err
			}
			col.SortOrder = maxOrder + 1
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO board_columns (unit_id, name, color, sort_order) VALUES (?, ?, ?, ?)`,
			unitID, col.Name, col.Color, col.SortOrder,
		)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		col.ID = int(id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating column: %w", err)
	}
	return col, nil
}

// UpdateColumn sets column fields directly. Changing sort_order here does
// not renumber the other columns; bulk reordering goes through
// ReorderColumns.
func (s *service) UpdateColumn(ctx context.Context, unitID, columnID int, req UpdateColumnRequest) error {
	if req.Name != nil {
		if *req.Name == "" {
			return ErrEmptyName
		}
		if len(*req.Name) > 50 {
			return ErrNameTooLong
		}
	}
	if req.Color != nil && !colorRe.MatchString(*req.Color) {
		return ErrInvalidColor
	}
	if req.SortOrder != nil && *req.SortOrder < 1 {
		return ErrInvalidOrder
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := columnInUnit(ctx, tx, unitID, columnID); err != nil {
			return err
		}
		if req.Name != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_columns SET name = ? WHERE id = ?`, *req.Name, columnID); err != nil {
				return err
			}
		}
		if req.Color != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_columns SET color = ? WHERE id = ?`, *req.Color, columnID); err != nil {
				return err
			}
		}
		if req.SortOrder != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_columns SET sort_order = ? WHERE id = ?`, *req.SortOrder, columnID); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteColumn removes an empty column. A column still holding cards is
// rejected with ErrColumnHasCards. The gap the deleted column leaves in
// the unit's sort orders is not closed; the frontend reorders explicitly
// when it cares.
func (s *service) DeleteColumn(ctx context.Context, unitID, columnID int) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := columnInUnit(ctx, tx, unitID, columnID); err != nil {
			return err
		}

		var cardCount int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM board_cards WHERE column_id = ?`, columnID,
		).Scan(&cardCount)
		if err != nil {
			return err
		}
		if cardCount > 0 {
			return models.ErrColumnHasCards
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM board_columns WHERE id = ?`, columnID)
		return err
	})
}

// ReorderColumns bulk-assigns sort orders inside one transaction. Every
// referenced column must belong to the unit or nothing is applied. The
// submitted orders are taken as-is; the caller is responsible for sending
// a dense permutation.
func (s *service) ReorderColumns(ctx context.Context, unitID int, orders []ColumnOrder) error {
	if len(orders) == 0 {
		return ErrEmptyReorder
	}
	for _, o := range orders {
		if o.SortOrder < 1 {
			return ErrInvalidOrder
		}
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, o := range orders {
			if err := columnInUnit(ctx, tx, unitID, o.ID); err != nil {
				return err
			}
		}
		for _, o := range orders {
			if _, err := tx.ExecContext(ctx,
				`UPDATE board_columns SET sort_order = ? WHERE id = ?`,
				o.SortOrder, o.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// columnInUnit reports models.ErrNotFound unless the column exists and
// belongs to the unit.
func columnInUnit(ctx context.Context, tx *sql.Tx, unitID, columnID int) error {
	var id int
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM board_columns WHERE id = ? AND unit_id = ?`,
		columnID, unitID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	return err
}
