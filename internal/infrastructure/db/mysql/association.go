package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// joinSpec names a parent-to-catalog association table. qty is empty when
// the association carries no quantity column.
type joinSpec struct {
	table  string
	parent string
	child  string
	qty    string
}

var (
	serviceLinks = joinSpec{table: "contiene_cita", parent: "codigo_cita", child: "codigo_servicio"}
	productLinks = joinSpec{table: "contiene_pedido", parent: "codigo_pedido", child: "codigo_producto", qty: "num_productos"}
)

// currentLinks reads the association rows of parent and locks them until the
// transaction ends.
func currentLinks(ctx context.Context, q queryer, j joinSpec, parent string) ([]domain.LineItem, error) {
	cols := j.child
	if j.qty != "" {
		cols += ", " + j.qty
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? FOR UPDATE", cols, j.table, j.parent)
	rows, err := q.QueryContext(ctx, query, parent)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", j.table, err)
	}
	defer rows.Close()

	var out []domain.LineItem
	for rows.Next() {
		it := domain.LineItem{Quantity: 1}
		dest := []any{&it.Code}
		if j.qty != "" {
			dest = append(dest, &it.Quantity)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", j.table, err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// replaceLinks makes the association rows of parent equal to target, writing
// only the rows that differ.
func replaceLinks(ctx context.Context, q queryer, j joinSpec, parent string, target []domain.LineItem) error {
	current, err := currentLinks(ctx, q, j, parent)
	if err != nil {
		return err
	}
	plan := domain.PlanReplace(current, target)
	if plan.Empty() {
		return nil
	}

	if len(plan.Delete) > 0 {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s IN (%s)", j.table, j.parent, j.child, placeholders(len(plan.Delete)))
		args := append([]any{parent}, stringArgs(plan.Delete)...)
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("detach %s: %w", j.table, err)
		}
	}

	if len(plan.Insert) > 0 {
		row := "(?, ?)"
		cols := j.parent + ", " + j.child
		if j.qty != "" {
			row = "(?, ?, ?)"
			cols += ", " + j.qty
		}
		values := make([]string, 0, len(plan.Insert))
		args := make([]any, 0, len(plan.Insert)*3)
		for _, it := range plan.Insert {
			values = append(values, row)
			args = append(args, parent, it.Code)
			if j.qty != "" {
				args = append(args, it.Quantity)
			}
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", j.table, cols, strings.Join(values, ", "))
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			if ref := missingReference(err); ref != nil {
				return ref
			}
			return fmt.Errorf("attach %s: %w", j.table, err)
		}
	}

	if j.qty != "" {
		query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ? AND %s = ?", j.table, j.qty, j.parent, j.child)
		for _, it := range plan.Update {
			if _, err := q.ExecContext(ctx, query, it.Quantity, parent, it.Code); err != nil {
				return fmt.Errorf("update %s: %w", j.table, err)
			}
		}
	}
	return nil
}
