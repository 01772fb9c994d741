package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// tableSpec describes the table backing one guard's principals.
type tableSpec struct {
	table  string
	salary bool
	role   bool
}

var principalTables = map[domain.Guard]tableSpec{
	domain.GuardClient:         {table: "cliente"},
	domain.GuardReceptionist:   {table: "recepcionista", salary: true},
	domain.GuardSalesAssistant: {table: "asistente_ventas", salary: true},
	domain.GuardSpecialist:     {table: "especialista", salary: true, role: true},
}

func (t tableSpec) columns() []string {
	cols := []string{"cedula", "nombre", "email", "password", "edad", "sexo", "url_image", "created_at", "updated_at"}
	if t.salary {
		cols = append(cols, "salario")
	}
	if t.role {
		cols = append(cols, "rol")
	}
	return cols
}

func (t tableSpec) selectList() string { return strings.Join(t.columns(), ", ") }

// PrincipalStore implements ports.CredentialStore over one guard's table.
type PrincipalStore struct {
	db    *sql.DB
	guard domain.Guard
	meta  tableSpec
}

// NewPrincipalStore returns the store for guard. It panics on an unknown
// guard, which is a wiring error.
func NewPrincipalStore(db *sql.DB, guard domain.Guard) *PrincipalStore {
	meta, ok := principalTables[guard]
	if !ok {
		panic(fmt.Sprintf("mysql: no principal table for guard %q", guard))
	}
	return &PrincipalStore{db: db, guard: guard, meta: meta}
}

func (s *PrincipalStore) Guard() domain.Guard { return s.guard }

func (s *PrincipalStore) Create(ctx context.Context, p *domain.Principal) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	args := []any{p.ID, p.Name, p.Email, p.PasswordHash, p.Age, p.Sex, p.ImageURL, p.CreatedAt, p.UpdatedAt}
	if s.meta.salary {
		salary, _ := p.Salary()
		args = append(args, salary)
	}
	if s.meta.role {
		role := ""
		if d, ok := p.Details.(domain.SpecialistDetails); ok {
			role = d.Role
		}
		args = append(args, role)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.meta.table, s.meta.selectList(), placeholders(len(args)))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if isDuplicate(err) {
			if duplicateOnPrimary(err) {
				return domain.ErrDuplicateIdentity
			}
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert %s: %w", s.meta.table, err)
	}
	return nil
}

func (s *PrincipalStore) FindByID(ctx context.Context, id string) (*domain.Principal, error) {
	return s.findOne(ctx, queryerOf(s.db), "cedula", id)
}

func (s *PrincipalStore) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return s.findOne(ctx, queryerOf(s.db), "email", email)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *PrincipalStore) SearchByName(ctx context.Context, fragment string) ([]*domain.Principal, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE nombre LIKE ? ORDER BY nombre", s.meta.selectList(), s.meta.table)
	return s.findMany(ctx, q, "%"+likeEscaper.Replace(fragment)+"%")
}

func (s *PrincipalStore) List(ctx context.Context) ([]*domain.Principal, error) {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY nombre", s.meta.selectList(), s.meta.table)
	return s.findMany(ctx, q)
}

func (s *PrincipalStore) Update(ctx context.Context, id string, upd ports.PrincipalUpdate) (*domain.Principal, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Name != nil {
		add("nombre", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.PasswordHash != nil {
		add("password", *upd.PasswordHash)
	}
	if upd.Age != nil {
		add("edad", *upd.Age)
	}
	if upd.Sex != nil {
		add("sexo", *upd.Sex)
	}
	if upd.ImageURL != nil {
		add("url_image", *upd.ImageURL)
	}
	if upd.Salary != nil && s.meta.salary {
		add("salario", *upd.Salary)
	}
	if upd.Role != nil && s.meta.role {
		add("rol", *upd.Role)
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE cedula = ?", s.meta.table, strings.Join(sets, ", "))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update %s: %w", s.meta.table, err)
	}
	return s.FindByID(ctx, id)
}

func (s *PrincipalStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE cedula = ?", s.meta.table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.meta.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.meta.table, err)
	}
	if n == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

func (s *PrincipalStore) findOne(ctx context.Context, q queryer, col, value string) (*domain.Principal, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1", s.meta.selectList(), s.meta.table, col)
	p, err := s.scan(q.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", s.meta.table, err)
	}
	return p, nil
}

func (s *PrincipalStore) findMany(ctx context.Context, query string, args ...any) ([]*domain.Principal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", s.meta.table, err)
	}
	defer rows.Close()

	out := []*domain.Principal{}
	for rows.Next() {
		p, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.meta.table, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PrincipalStore) scan(row scanner) (*domain.Principal, error) {
	var (
		p      domain.Principal
		image  sql.NullString
		salary decimal.Decimal
		role   string
	)
	dest := []any{&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Age, &p.Sex, &image, &p.CreatedAt, &p.UpdatedAt}
	if s.meta.salary {
		dest = append(dest, &salary)
	}
	if s.meta.role {
		dest = append(dest, &role)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.ImageURL = nullString(image)
	p.Details = domain.NewDetails(s.guard, salary, role)
	return &p, nil
}

func queryerOf(db *sql.DB) queryer { return db }
