package board

import (
	"context"
	"testing"
	"time"

	"github.com/juridesk/juridesk/internal/testutil"
)

func TestGetBoardAssemblesColumnsAndCards(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	caseID := testutil.CreateTestCase(t, f.db, f.unitID, "0001234-56.2026", "Silva v. Santos")
	taskID := testutil.CreateTestOfficeTask(t, f.db, f.unitID, "Collect documents")

	card, err := f.svc.CreateCard(ctx, f.unitID, CreateCardRequest{
		ColumnID: f.colA, Title: "Draft contract", ResponsibleID: f.userID,
		CaseID: &caseID, TaskID: &taskID,
	})
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	f.addCard(t, f.colB, "File motion")

	board, err := f.svc.GetBoard(ctx, f.unitID)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}

	if len(board.Columns) != 2 {
		t.Fatalf("Board has %d columns, want 2", len(board.Columns))
	}
	if board.Columns[0].Name != "Intake" || board.Columns[1].Name != "In Review" {
		t.Errorf("Column order = %q, %q; want Intake, In Review",
			board.Columns[0].Name, board.Columns[1].Name)
	}

	cards := board.Columns[0].Cards
	if len(cards) != 1 {
		t.Fatalf("Intake has %d cards, want 1", len(cards))
	}
	got := cards[0]
	if got.ID != card.ID {
		t.Errorf("Card id = %d, want %d", got.ID, card.ID)
	}
	if got.CaseNumber != "0001234-56.2026" || got.CaseTitle != "Silva v. Santos" {
		t.Errorf("Case expansion = %q/%q, want number and title", got.CaseNumber, got.CaseTitle)
	}
	if got.TaskTitle != "Collect documents" {
		t.Errorf("Task expansion = %q, want Collect documents", got.TaskTitle)
	}
	if got.ResponsibleName != "Ana" {
		t.Errorf("Responsible expansion = %q, want Ana", got.ResponsibleName)
	}
}

func TestGetBoardOrdersCardsByPosition(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	f.addCard(t, f.colA, "first")
	f.addCard(t, f.colA, "second")
	third := f.addCard(t, f.colA, "third")

	if err := f.svc.MoveCard(ctx, f.unitID, third, f.colA, 1); err != nil {
		t.Fatalf("MoveCard failed: %v", err)
	}

	board, err := f.svc.GetBoard(ctx, f.unitID)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	titles := make([]string, 0, 3)
	for _, c := range board.Columns[0].Cards {
		titles = append(titles, c.Title)
	}
	want := []string{"third", "first", "second"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("Card order = %v, want %v", titles, want)
		}
	}
}

func TestGetBoardCounters(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	f.addCard(t, f.colA, "plain")
	urgent := f.addCard(t, f.colA, "urgent")
	soon := f.addCard(t, f.colB, "due soon")
	far := f.addCard(t, f.colB, "due later")

	testutil.SetCardPriority(t, f.db, urgent, "urgent")
	testutil.SetCardDueDate(t, f.db, soon, time.Now().Add(24*time.Hour))
	testutil.SetCardDueDate(t, f.db, far, time.Now().Add(10*24*time.Hour))

	board, err := f.svc.GetBoard(ctx, f.unitID)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if board.Counters.TotalCards != 4 {
		t.Errorf("TotalCards = %d, want 4", board.Counters.TotalCards)
	}
	if board.Counters.UrgentCards != 1 {
		t.Errorf("UrgentCards = %d, want 1", board.Counters.UrgentCards)
	}
	if board.Counters.DueSoon != 1 {
		t.Errorf("DueSoon = %d, want 1", board.Counters.DueSoon)
	}
}

func TestGetBoardIsUnitScoped(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	f.addCard(t, f.colA, "mine")

	other := testutil.CreateTestUnit(t, f.db, "Other Office")
	board, err := f.svc.GetBoard(ctx, other)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if len(board.Columns) != 0 || board.Counters.TotalCards != 0 {
		t.Errorf("Foreign unit sees %d columns / %d cards, want none",
			len(board.Columns), board.Counters.TotalCards)
	}
}
