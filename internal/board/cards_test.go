package board

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/juridesk/juridesk/internal/models"
	"github.com/juridesk/juridesk/internal/testutil"
)

// boardFixture is the standard card-test setup: one unit, one responsible
// user and two columns.
type boardFixture struct {
	db     *sql.DB
	svc    Service
	unitID int
	userID int
	colA   int
	colB   int
}

func newBoardFixture(t *testing.T) *boardFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	unitID := testutil.CreateTestUnit(t, db, "Office")
	return &boardFixture{
		db:     db,
		svc:    NewService(db),
		unitID: unitID,
		userID: testutil.CreateTestUser(t, db, unitID, "Ana", "ana@office.example"),
		colA:   testutil.CreateTestColumn(t, db, unitID, "Intake"),
		colB:   testutil.CreateTestColumn(t, db, unitID, "In Review"),
	}
}

func (f *boardFixture) addCard(t *testing.T, columnID int, title string) int {
	t.Helper()
	return testutil.CreateTestCard(t, f.db, columnID, f.userID, title)
}

func TestCreateCardAppendsToColumn(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateCard(ctx, f.unitID, CreateCardRequest{
		ColumnID: f.colA, Title: "Draft contract", ResponsibleID: f.userID,
	})
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	if first.Position != 1 {
		t.Errorf("First card position = %d, want 1", first.Position)
	}
	if first.Priority != models.PriorityMedium {
		t.Errorf("Default priority = %q, want medium", first.Priority)
	}

	second, err := f.svc.CreateCard(ctx, f.unitID, CreateCardRequest{
		ColumnID: f.colA, Title: "File motion", ResponsibleID: f.userID,
		Priority: models.PriorityUrgent,
	})
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("Second card position = %d, want 2", second.Position)
	}
}

func TestCreateCardLinksStayInUnit(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	other := testutil.CreateTestUnit(t, f.db, "Other Office")
	foreignCase := testutil.CreateTestCase(t, f.db, other, "0001234-56.2026", "Foreign case")
	foreignCol := testutil.CreateTestColumn(t, f.db, other, "Foreign")

	_, err := f.svc.CreateCard(ctx, f.unitID, CreateCardRequest{
		ColumnID: foreignCol, Title: "X", ResponsibleID: f.userID,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Create in foreign column error = %v, want ErrNotFound", err)
	}

	_, err = f.svc.CreateCard(ctx, f.unitID, CreateCardRequest{
		ColumnID: f.colA, Title: "X", ResponsibleID: f.userID, CaseID: &foreignCase,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Create linking foreign case error = %v, want ErrNotFound", err)
	}
}

func TestCreateCardValidation(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateCardRequest
		wantErr error
	}{
		{"empty title", CreateCardRequest{ColumnID: f.colA, ResponsibleID: f.userID}, ErrEmptyTitle},
		{"title too long", CreateCardRequest{ColumnID: f.colA, Title: string(make([]byte, 121)), ResponsibleID: f.userID}, ErrTitleTooLong},
		{"bad priority", CreateCardRequest{ColumnID: f.colA, Title: "X", ResponsibleID: f.userID, Priority: "asap"}, ErrInvalidPriority},
		{"no responsible", CreateCardRequest{ColumnID: f.colA, Title: "X"}, ErrNoResponsible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.CreateCard(ctx, f.unitID, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateCard() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateCardFields(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	cardID := f.addCard(t, f.colA, "Draft contract")
	caseID := testutil.CreateTestCase(t, f.db, f.unitID, "0001234-56.2026", "Silva v. Santos")

	title := "Draft settlement"
	priority := models.PriorityHigh
	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	err := f.svc.UpdateCard(ctx, f.unitID, cardID, UpdateCardRequest{
		Title: &title, Priority: &priority, DueDate: &due, CaseID: &caseID,
	})
	if err != nil {
		t.Fatalf("UpdateCard failed: %v", err)
	}

	card, err := f.svc.GetCard(ctx, f.unitID, cardID)
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if card.Title != title || card.Priority != priority {
		t.Errorf("Card after update = %q/%q, want %q/%q", card.Title, card.Priority, title, priority)
	}
	if card.CaseID == nil || *card.CaseID != caseID {
		t.Errorf("Card case link = %v, want %d", card.CaseID, caseID)
	}
	if card.DueDate == nil || !card.DueDate.Equal(due) {
		t.Errorf("Card due date = %v, want %v", card.DueDate, due)
	}

	// Position is out of UpdateCard's reach.
	if card.Position != 1 {
		t.Errorf("Position after update = %d, want 1", card.Position)
	}
}

func TestUpdateCardClearDueDate(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	cardID := f.addCard(t, f.colA, "Draft contract")
	testutil.SetCardDueDate(t, f.db, cardID, time.Now().Add(24*time.Hour))

	if err := f.svc.UpdateCard(ctx, f.unitID, cardID, UpdateCardRequest{ClearDueDate: true}); err != nil {
		t.Fatalf("UpdateCard failed: %v", err)
	}
	card, err := f.svc.GetCard(ctx, f.unitID, cardID)
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if card.DueDate != nil {
		t.Errorf("Due date after clear = %v, want nil", card.DueDate)
	}
}

func TestDeleteCardClosesGap(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	f.addCard(t, f.colA, "X")
	cardY := f.addCard(t, f.colA, "Y")
	f.addCard(t, f.colA, "Z")

	if err := f.svc.DeleteCard(ctx, f.unitID, cardY); err != nil {
		t.Fatalf("DeleteCard failed: %v", err)
	}

	got := cardTitles(t, f.db, f.colA)
	want := []string{"X", "Z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Column after delete = %v, want %v", got, want)
	}
}

func TestCardOtherUnitIsNotFound(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	cardID := f.addCard(t, f.colA, "X")
	other := testutil.CreateTestUnit(t, f.db, "Other Office")

	if _, err := f.svc.GetCard(ctx, other, cardID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Cross-unit GetCard error = %v, want ErrNotFound", err)
	}
	if err := f.svc.DeleteCard(ctx, other, cardID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Cross-unit DeleteCard error = %v, want ErrNotFound", err)
	}
	title := "Stolen"
	err := f.svc.UpdateCard(ctx, other, cardID, UpdateCardRequest{Title: &title})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Cross-unit UpdateCard error = %v, want ErrNotFound", err)
	}
}
