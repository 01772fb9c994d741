package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

const (
	defaultTimeout         = 5 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 30 * time.Minute
)

// Config captures the settings required to open the MySQL pool.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
	Timeout  time.Duration
}

// Connect opens a pooled connection and verifies it with a ping. DATETIME
// columns are read as UTC time.Time values.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dsn := mysqldrv.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	dsn.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
)

func errNumber(err error) uint16 {
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicate(err error) bool { return errNumber(err) == errDuplicateEntry }

// missingReference turns a 1452 error into a *domain.ReferenceError naming
// the column of the failed constraint, and returns nil for anything else.
func missingReference(err error) error {
	var me *mysqldrv.MySQLError
	if !errors.As(err, &me) || me.Number != errNoReferencedRow {
		return nil
	}
	return &domain.ReferenceError{Column: constraintColumn(me.Message)}
}

// constraintColumn reads the first column out of "... FOREIGN KEY (`col`) ...".
func constraintColumn(msg string) string {
	_, rest, ok := strings.Cut(msg, "FOREIGN KEY (")
	if !ok {
		return ""
	}
	col, _, _ := strings.Cut(rest, ")")
	col, _, _ = strings.Cut(col, ",")
	return strings.Trim(strings.TrimSpace(col), "`")
}

// duplicateOnPrimary reports whether a duplicate-entry error hit the
// primary key rather than a secondary unique index.
func duplicateOnPrimary(err error) bool {
	var me *mysqldrv.MySQLError
	return errors.As(err, &me) && strings.Contains(me.Message, "PRIMARY")
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
