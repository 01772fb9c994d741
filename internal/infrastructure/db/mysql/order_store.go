package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

const orderColumns = "codigo, id_cliente, id_asistente_ventas, direccion, fecha_registro, estado, costo_total"

// OrderStore implements ports.OrderRepository over the pedido and
// contiene_pedido tables.
type OrderStore struct {
	db         *sql.DB
	clients    *PrincipalStore
	assistants *PrincipalStore
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{
		db:         db,
		clients:    NewPrincipalStore(db, domain.GuardClient),
		assistants: NewPrincipalStore(db, domain.GuardSalesAssistant),
	}
}

func (s *OrderStore) Transact(ctx context.Context, fn func(ctx context.Context, tx ports.OrderTx) error) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(ctx, orderTx{tx: tx})
	})
}

func (s *OrderStore) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM pedido WHERE codigo = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select pedido: %w", err)
	}
	if err := s.hydrate(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderStore) List(ctx context.Context) ([]*domain.Order, error) {
	return s.query(ctx, "SELECT "+orderColumns+" FROM pedido ORDER BY fecha_registro DESC")
}

func (s *OrderStore) ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	return s.query(ctx, "SELECT "+orderColumns+" FROM pedido WHERE id_cliente = ? ORDER BY fecha_registro DESC", clientID)
}

func (s *OrderStore) Delete(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pedido WHERE codigo = ?", code)
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (s *OrderStore) query(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select pedido: %w", err)
	}
	out := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("select pedido: %w", err)
	}
	rows.Close()

	for _, o := range out {
		if err := s.hydrate(ctx, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *OrderStore) hydrate(ctx context.Context, o *domain.Order) error {
	client, err := optionalPrincipal(ctx, s.clients, &o.ClientID)
	if err != nil {
		return err
	}
	o.Client = client

	assistant, err := optionalPrincipal(ctx, s.assistants, o.SalesAssistantID)
	if err != nil {
		return err
	}
	o.SalesAssistant = assistant

	lines, err := s.lines(ctx, o.Code)
	if err != nil {
		return err
	}
	o.Products = lines
	return nil
}

func (s *OrderStore) lines(ctx context.Context, code string) ([]domain.OrderLine, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+productColumns+", contiene_pedido.num_productos FROM producto"+
			" JOIN contiene_pedido ON contiene_pedido.codigo_producto = producto.codigo"+
			" WHERE contiene_pedido.codigo_pedido = ? ORDER BY nombre", code)
	if err != nil {
		return nil, fmt.Errorf("select contiene_pedido: %w", err)
	}
	defer rows.Close()

	out := []domain.OrderLine{}
	for rows.Next() {
		var (
			l     domain.OrderLine
			desc  sql.NullString
			image sql.NullString
		)
		if err := rows.Scan(&l.Code, &l.Name, &desc, &l.Price, &l.Stock, &image, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan contiene_pedido: %w", err)
		}
		l.Description = desc.String
		l.ImageURL = nullString(image)
		out = append(out, l)
	}
	return out, rows.Err()
}

type orderTx struct{ tx *sql.Tx }

func (t orderTx) LockOrder(ctx context.Context, code string) (bool, error) {
	return lockRow(ctx, t.tx, "pedido", code)
}

func (t orderTx) InsertOrder(ctx context.Context, o *domain.Order) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO pedido ("+orderColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		o.Code, o.ClientID, o.SalesAssistantID, o.Address, o.RegisteredAt.UTC(), o.Status, o.TotalCost)
	if err != nil {
		if ref := missingReference(err); ref != nil {
			return ref
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

func (t orderTx) UpdateOrder(ctx context.Context, o *domain.Order) error {
	var registered any
	if !o.RegisteredAt.IsZero() {
		registered = o.RegisteredAt.UTC()
	}
	_, err := t.tx.ExecContext(ctx,
		"UPDATE pedido SET id_cliente = ?, id_asistente_ventas = ?, direccion = ?, fecha_registro = COALESCE(?, fecha_registro), estado = ?, costo_total = ? WHERE codigo = ?",
		o.ClientID, o.SalesAssistantID, o.Address, registered, o.Status, o.TotalCost, o.Code)
	if err != nil {
		if ref := missingReference(err); ref != nil {
			return ref
		}
		return fmt.Errorf("update pedido: %w", err)
	}
	return nil
}

func (t orderTx) ResolveProducts(ctx context.Context, codes []string) ([]domain.Product, error) {
	return resolveProducts(ctx, t.tx, codes)
}

func (t orderTx) ReplaceProducts(ctx context.Context, orderCode string, lines []domain.LineItem) error {
	return replaceLinks(ctx, t.tx, productLinks, orderCode, lines)
}

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		o         domain.Order
		assistant sql.NullString
	)
	if err := row.Scan(&o.Code, &o.ClientID, &assistant, &o.Address, &o.RegisteredAt, &o.Status, &o.TotalCost); err != nil {
		return nil, err
	}
	o.SalesAssistantID = nullString(assistant)
	o.Products = []domain.OrderLine{}
	return &o, nil
}
