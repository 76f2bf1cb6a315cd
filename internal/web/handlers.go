package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/juridesk/juridesk/internal/auth"
	"github.com/juridesk/juridesk/internal/board"
	"github.com/juridesk/juridesk/internal/models"
)

// ----------------------------------------------------------------------------
// Request / response shapes
// ----------------------------------------------------------------------------

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type columnRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Order *int    `json:"order"`
}

type reorderRequest struct {
	Columns []struct {
		ID    int `json:"id"`
		Order int `json:"order"`
	} `json:"columns"`
}

type cardRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	ColumnID      *int             `json:"columnId"`
	LinkedCaseID  *int             `json:"linkedCaseId"`
	LinkedTaskID  *int             `json:"linkedTaskId"`
	Priority      *models.Priority `json:"priority"`
	DueDate       *time.Time       `json:"dueDate"`
	ResponsibleID *int             `json:"responsibleId"`
}

type moveRequest struct {
	ColumnID int `json:"columnId"`
	Position int `json:"position"`
}

type columnJSON struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Order int        `json:"order"`
	Cards []cardJSON `json:"cards"`
}

type cardJSON struct {
	ID              int             `json:"id"`
	ColumnID        int             `json:"columnId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        models.Priority `json:"priority"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Position        int             `json:"position"`
	LinkedCaseID    *int            `json:"linkedCaseId,omitempty"`
	CaseNumber      string          `json:"caseNumber,omitempty"`
	CaseTitle       string          `json:"caseTitle,omitempty"`
	LinkedTaskID    *int            `json:"linkedTaskId,omitempty"`
	TaskTitle       string          `json:"taskTitle,omitempty"`
	ResponsibleID   int             `json:"responsibleId"`
	ResponsibleName string          `json:"responsibleName"`
}

type countersJSON struct {
	TotalCards  int `json:"totalCards"`
	UrgentCards int `json:"urgentCards"`
	DueSoon     int `json:"dueSoon"`
}

type boardResponse struct {
	Columns  []columnJSON `json:"columns"`
	Counters countersJSON `json:"counters"`
}

// ----------------------------------------------------------------------------
// Auth
// ----------------------------------------------------------------------------

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	if err := s.auth.Logout(r.Context(), session.Token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------------------
// Board
// ----------------------------------------------------------------------------

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	b, err := s.board.GetBoard(r.Context(), session.UnitID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := boardResponse{
		Columns: make([]columnJSON, 0, len(b.Columns)),
		Counters: countersJSON{
			TotalCards:  b.Counters.TotalCards,
			UrgentCards: b.Counters.UrgentCards,
			DueSoon:     b.Counters.DueSoon,
		},
	}
	for _, col := range b.Columns {
		cj := columnJSON{
			ID:    col.ID,
			Name:  col.Name,
			Color: col.Color,
			Order: col.SortOrder,
			Cards: make([]cardJSON, 0, len(col.Cards)),
		}
		for _, c := range col.Cards {
			cj.Cards = append(cj.Cards, cardJSON{
				ID:              c.ID,
				ColumnID:        c.ColumnID,
				Title:           c.Title,
				Description:     c.Description,
				Priority:        c.Priority,
				DueDate:         c.DueDate,
				Position:        c.Position,
				LinkedCaseID:    c.CaseID,
				CaseNumber:      c.CaseNumber,
				CaseTitle:       c.CaseTitle,
				LinkedTaskID:    c.TaskID,
				TaskTitle:       c.TaskTitle,
				ResponsibleID:   c.ResponsibleID,
				ResponsibleName: c.ResponsibleName,
			})
		}
		resp.Columns = append(resp.Columns, cj)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------------------
// Columns
// ----------------------------------------------------------------------------

func (s *Server) handleCreateColumn(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	var req columnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	create := board.CreateColumnRequest{SortOrder: req.Order}
	if req.Name != nil {
		create.Name = *req.Name
	}
	if req.Color != nil {
		create.Color = *req.Color
	}

	col, err := s.board.CreateColumn(r.Context(), session.UnitID, create)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, columnJSON{
		ID:    col.ID,
		Name:  col.Name,
		Color: col.Color,
		Order: col.SortOrder,
		Cards: []cardJSON{},
	})
}

func (s *Server) handleUpdateColumn(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req columnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.board.UpdateColumn(r.Context(), session.UnitID, id, board.UpdateColumnRequest{
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.Order,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := s.board.DeleteColumn(r.Context(), session.UnitID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorderColumns(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	var req reorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	orders := make([]board.ColumnOrder, 0, len(req.Columns))
	for _, c := range req.Columns {
		orders = append(orders, board.ColumnOrder{ID: c.ID, SortOrder: c.Order})
	}
	if err := s.board.ReorderColumns(r.Context(), session.UnitID, orders); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------------------
// Cards
// ----------------------------------------------------------------------------

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	var req cardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	create := board.CreateCardRequest{
		CaseID:  req.LinkedCaseID,
		TaskID:  req.LinkedTaskID,
		DueDate: req.DueDate,
	}
	if req.Title != nil {
		create.Title = *req.Title
	}
	if req.Description != nil {
		create.Description = *req.Description
	}
	if req.ColumnID != nil {
		create.ColumnID = *req.ColumnID
	}
	if req.Priority != nil {
		create.Priority = *req.Priority
	}
	if req.ResponsibleID != nil {
		create.ResponsibleID = *req.ResponsibleID
	}

	card, err := s.board.CreateCard(r.Context(), session.UnitID, create)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cardJSON{
		ID:            card.ID,
		ColumnID:      card.ColumnID,
		Title:         card.Title,
		Description:   card.Description,
		Priority:      card.Priority,
		DueDate:       card.DueDate,
		Position:      card.Position,
		LinkedCaseID:  card.CaseID,
		LinkedTaskID:  card.TaskID,
		ResponsibleID: card.ResponsibleID,
	})
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req cardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.board.UpdateCard(r.Context(), session.UnitID, id, board.UpdateCardRequest{
		Title:         req.Title,
		Description:   req.Description,
		CaseID:        req.LinkedCaseID,
		TaskID:        req.LinkedTaskID,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		ResponsibleID: req.ResponsibleID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := s.board.DeleteCard(r.Context(), session.UnitID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.board.MoveCard(r.Context(), session.UnitID, id, req.ColumnID, req.Position); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// urlID parses the {id} route parameter. Non-numeric ids read as resources
// that do not exist.
func urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}
