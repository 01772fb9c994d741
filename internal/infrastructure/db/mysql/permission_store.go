package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// PermissionStore keeps principal roles and the seeded role permissions.
type PermissionStore struct{ db *sql.DB }

func NewPermissionStore(db *sql.DB) *PermissionStore { return &PermissionStore{db: db} }

func (s *PermissionStore) AssignRole(ctx context.Context, guard domain.Guard, principalID, role string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO principal_roles (guard, principal_id, role) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE role = VALUES(role)",
		string(guard), principalID, role)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (s *PermissionStore) Grant(ctx context.Context, guard domain.Guard, principalID string) (domain.Grant, error) {
	grant := domain.Grant{Permissions: []string{}}

	err := s.db.QueryRowContext(ctx,
		"SELECT role FROM principal_roles WHERE guard = ? AND principal_id = ? LIMIT 1",
		string(guard), principalID).Scan(&grant.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return grant, nil
	}
	if err != nil {
		return domain.Grant{}, fmt.Errorf("select role: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT permission FROM role_permissions WHERE guard = ? AND role = ? ORDER BY permission",
		string(guard), grant.Role)
	if err != nil {
		return domain.Grant{}, fmt.Errorf("select permissions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var perm string
		if err := rows.Scan(&perm); err != nil {
			return domain.Grant{}, fmt.Errorf("scan permission: %w", err)
		}
		grant.Permissions = append(grant.Permissions, perm)
	}
	return grant, rows.Err()
}
