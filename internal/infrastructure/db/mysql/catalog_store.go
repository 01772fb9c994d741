package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

const (
	serviceColumns = "codigo, nombre, descripcion, precio, url_image"
	productColumns = "codigo, nombre, descripcion, precio, stock, url_image"
)

// CatalogStore reads the servicio and producto tables.
type CatalogStore struct{ db *sql.DB }

func NewCatalogStore(db *sql.DB) *CatalogStore { return &CatalogStore{db: db} }

func (s *CatalogStore) ListServices(ctx context.Context) ([]domain.Service, error) {
	return queryServices(ctx, s.db, "SELECT "+serviceColumns+" FROM servicio ORDER BY nombre")
}

func (s *CatalogStore) FindService(ctx context.Context, code string) (*domain.Service, error) {
	svc, err := scanService(s.db.QueryRowContext(ctx, "SELECT "+serviceColumns+" FROM servicio WHERE codigo = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select servicio: %w", err)
	}
	return &svc, nil
}

func (s *CatalogStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return queryProducts(ctx, s.db, "SELECT "+productColumns+" FROM producto ORDER BY nombre")
}

func (s *CatalogStore) FindProduct(ctx context.Context, code string) (*domain.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM producto WHERE codigo = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select producto: %w", err)
	}
	return &p, nil
}

// resolveServices returns the services among codes that exist, in the order
// of codes.
func resolveServices(ctx context.Context, q queryer, codes []string) ([]domain.Service, error) {
	codes = domain.UniqueCodes(codes)
	if len(codes) == 0 {
		return nil, nil
	}
	found, err := queryServices(ctx, q,
		"SELECT "+serviceColumns+" FROM servicio WHERE codigo IN ("+placeholders(len(codes))+")",
		stringArgs(codes)...)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]domain.Service, len(found))
	for _, s := range found {
		byCode[s.Code] = s
	}
	out := make([]domain.Service, 0, len(found))
	for _, c := range codes {
		if s, ok := byCode[c]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func resolveProducts(ctx context.Context, q queryer, codes []string) ([]domain.Product, error) {
	codes = domain.UniqueCodes(codes)
	if len(codes) == 0 {
		return nil, nil
	}
	found, err := queryProducts(ctx, q,
		"SELECT "+productColumns+" FROM producto WHERE codigo IN ("+placeholders(len(codes))+")",
		stringArgs(codes)...)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byCode[p.Code] = p
	}
	out := make([]domain.Product, 0, len(found))
	for _, c := range codes {
		if p, ok := byCode[c]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func queryServices(ctx context.Context, q queryer, query string, args ...any) ([]domain.Service, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select servicio: %w", err)
	}
	defer rows.Close()

	out := []domain.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan servicio: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func queryProducts(ctx context.Context, q queryer, query string, args ...any) ([]domain.Product, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select producto: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanService(row scanner) (domain.Service, error) {
	var (
		s     domain.Service
		desc  sql.NullString
		image sql.NullString
	)
	if err := row.Scan(&s.Code, &s.Name, &desc, &s.Price, &image); err != nil {
		return domain.Service{}, err
	}
	s.Description = desc.String
	s.ImageURL = nullString(image)
	return s, nil
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p     domain.Product
		desc  sql.NullString
		image sql.NullString
	)
	if err := row.Scan(&p.Code, &p.Name, &desc, &p.Price, &p.Stock, &image); err != nil {
		return domain.Product{}, err
	}
	p.Description = desc.String
	p.ImageURL = nullString(image)
	return p, nil
}
