package models

import "time"

// Unit is the tenant boundary: one legal office. Columns, cards, cases and
// users all belong to exactly one unit, and no operation crosses units.
type Unit struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

// User is a member of a unit who can sign in and be responsible for cards.
type User struct {
	ID           int
	UnitID       int
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is an authenticated login, resolved from an opaque bearer token.
type Session struct {
	Token     string
	UserID    int
	UnitID    int
	ExpiresAt time.Time
}

// Case is a legal case/process a card can link to. Managed elsewhere in the
// office system; the board only reads it for card expansion.
type Case struct {
	ID     int
	UnitID int
	Number string
	Title  string
}

// OfficeTask is a general office task a card can link to.
type OfficeTask struct {
	ID     int
	UnitID int
	Title  string
}
