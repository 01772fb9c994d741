package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// TokenStore persists issued access tokens in access_tokens.
type TokenStore struct{ db *sql.DB }

func NewTokenStore(db *sql.DB) *TokenStore { return &TokenStore{db: db} }

func (s *TokenStore) Store(ctx context.Context, t domain.AccessToken) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO access_tokens (id, guard, principal_id, name, expires_at, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		t.ID, string(t.Guard), t.PrincipalID, t.Name, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert access token: %w", err)
	}
	return nil
}

func (s *TokenStore) Find(ctx context.Context, id string) (*domain.AccessToken, error) {
	var (
		t     domain.AccessToken
		guard string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, guard, principal_id, name, expires_at, created_at FROM access_tokens WHERE id = ? LIMIT 1",
		id).Scan(&t.ID, &guard, &t.PrincipalID, &t.Name, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select access token: %w", err)
	}
	t.Guard = domain.Guard(guard)
	return &t, nil
}

func (s *TokenStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM access_tokens WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete access token: %w", err)
	}
	return nil
}

func (s *TokenStore) DeleteByName(ctx context.Context, guard domain.Guard, principalID, name string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM access_tokens WHERE guard = ? AND principal_id = ? AND name = ?",
		string(guard), principalID, name)
	if err != nil {
		return fmt.Errorf("delete named access tokens: %w", err)
	}
	return nil
}

func (s *TokenStore) DeleteAll(ctx context.Context, guard domain.Guard, principalID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM access_tokens WHERE guard = ? AND principal_id = ?",
		string(guard), principalID)
	if err != nil {
		return fmt.Errorf("delete access tokens: %w", err)
	}
	return nil
}
