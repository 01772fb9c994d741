package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates missing tables and seeds the role permissions. Every
// statement is idempotent so it runs on each start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return SeedPermissions(ctx, db)
}

// SeedPermissions inserts the default permission set of every guard's role.
func SeedPermissions(ctx context.Context, db *sql.DB) error {
	var (
		rows []string
		args []any
	)
	for _, guard := range domain.Guards {
		for _, perm := range domain.DefaultPermissions[guard] {
			rows = append(rows, "(?, ?, ?)")
			args = append(args, string(guard), guard.DefaultRole(), perm)
		}
	}
	q := "INSERT IGNORE INTO role_permissions (guard, role, permission) VALUES " + strings.Join(rows, ", ")
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	return nil
}
