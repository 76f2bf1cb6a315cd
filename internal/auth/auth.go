// Package auth handles user credentials and bearer-token sessions.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/juridesk/juridesk/internal/models"
)

// Auth-related errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoSession          = errors.New("no session")
)

// Service issues and resolves sessions against the store.
type Service struct {
	db  *sql.DB
	ttl time.Duration
}

// NewService creates an auth service with the given session lifetime.
func NewService(db *sql.DB, ttl time.Duration) *Service {
	return &Service{db: db, ttl: ttl}
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateUser registers a user in a unit and returns its id.
func (s *Service) CreateUser(ctx context.Context, unitID int, name, email, password string) (int, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (unit_id, name, email, password_hash) VALUES (?, ?, ?, ?)`,
		unitID, name, email, hash)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}

// Login verifies the credentials and issues a new session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var userID, unitID int
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, unit_id, password_hash FROM users WHERE email = ?`,
		email,
	).Scan(&userID, &unitID, &hash)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		UnitID:    unitID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		session.Token, session.UserID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Logout discards the session. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// Lookup resolves a bearer token to its session. Expired sessions are
// deleted on sight and reported as ErrSessionExpired.
func (s *Service) Lookup(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	session := &models.Session{Token: token}
	err := s.db.QueryRowContext(ctx,
		`SELECT s.user_id, u.unit_id, s.expires_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token = ?`,
		token,
	).Scan(&session.UserID, &session.UnitID, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
		return nil, ErrSessionExpired
	}
	return session, nil
}
