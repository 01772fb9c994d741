package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

const appointmentColumns = "codigo, id_cliente, id_recepcionista, fecha_cita, estado, costo_total"

// AppointmentStore implements ports.AppointmentRepository over the cita and
// contiene_cita tables.
type AppointmentStore struct {
	db            *sql.DB
	clients       *PrincipalStore
	receptionists *PrincipalStore
}

func NewAppointmentStore(db *sql.DB) *AppointmentStore {
	return &AppointmentStore{
		db:            db,
		clients:       NewPrincipalStore(db, domain.GuardClient),
		receptionists: NewPrincipalStore(db, domain.GuardReceptionist),
	}
}

func (s *AppointmentStore) Transact(ctx context.Context, fn func(ctx context.Context, tx ports.AppointmentTx) error) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(ctx, appointmentTx{tx: tx})
	})
}

func (s *AppointmentStore) FindByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRowContext(ctx,
		"SELECT "+appointmentColumns+" FROM cita WHERE codigo = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select cita: %w", err)
	}
	if err := s.hydrate(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AppointmentStore) List(ctx context.Context) ([]*domain.Appointment, error) {
	return s.query(ctx, "SELECT "+appointmentColumns+" FROM cita ORDER BY fecha_cita DESC")
}

func (s *AppointmentStore) ListByClient(ctx context.Context, clientID string) ([]*domain.Appointment, error) {
	return s.query(ctx, "SELECT "+appointmentColumns+" FROM cita WHERE id_cliente = ? ORDER BY fecha_cita DESC", clientID)
}

// Delete removes the appointment; its service rows go with it through the
// foreign key cascade.
func (s *AppointmentStore) Delete(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cita WHERE codigo = ?", code)
	if err != nil {
		return fmt.Errorf("delete cita: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cita: %w", err)
	}
	if n == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// query reads every header first and only then loads relations, so the rows
// cursor is closed before the follow-up queries run.
func (s *AppointmentStore) query(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select cita: %w", err)
	}
	out := []*domain.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cita: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("select cita: %w", err)
	}
	rows.Close()

	for _, a := range out {
		if err := s.hydrate(ctx, a); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *AppointmentStore) hydrate(ctx context.Context, a *domain.Appointment) error {
	client, err := optionalPrincipal(ctx, s.clients, &a.ClientID)
	if err != nil {
		return err
	}
	a.Client = client

	receptionist, err := optionalPrincipal(ctx, s.receptionists, a.ReceptionistID)
	if err != nil {
		return err
	}
	a.Receptionist = receptionist

	services, err := queryServices(ctx, s.db,
		"SELECT "+serviceColumns+" FROM servicio JOIN contiene_cita ON contiene_cita.codigo_servicio = servicio.codigo"+
			" WHERE contiene_cita.codigo_cita = ? ORDER BY nombre", a.Code)
	if err != nil {
		return err
	}
	a.Services = services
	return nil
}

// appointmentTx is the transactional view handed to the booking workflow.
type appointmentTx struct{ tx *sql.Tx }

func (t appointmentTx) LockAppointment(ctx context.Context, code string) (bool, error) {
	return lockRow(ctx, t.tx, "cita", code)
}

func (t appointmentTx) InsertAppointment(ctx context.Context, a *domain.Appointment) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO cita ("+appointmentColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		a.Code, a.ClientID, a.ReceptionistID, a.ScheduledAt.UTC(), a.Status, a.TotalCost)
	if err != nil {
		if ref := missingReference(err); ref != nil {
			return ref
		}
		return fmt.Errorf("insert cita: %w", err)
	}
	return nil
}

func (t appointmentTx) UpdateAppointment(ctx context.Context, a *domain.Appointment) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE cita SET id_cliente = ?, id_recepcionista = ?, fecha_cita = ?, estado = ?, costo_total = ? WHERE codigo = ?",
		a.ClientID, a.ReceptionistID, a.ScheduledAt.UTC(), a.Status, a.TotalCost, a.Code)
	if err != nil {
		if ref := missingReference(err); ref != nil {
			return ref
		}
		return fmt.Errorf("update cita: %w", err)
	}
	return nil
}

func (t appointmentTx) ResolveServices(ctx context.Context, codes []string) ([]domain.Service, error) {
	return resolveServices(ctx, t.tx, codes)
}

func (t appointmentTx) ReplaceServices(ctx context.Context, appointmentCode string, codes []string) error {
	return replaceLinks(ctx, t.tx, serviceLinks, appointmentCode, domain.LinesFromCodes(codes))
}

func scanAppointment(row scanner) (*domain.Appointment, error) {
	var (
		a            domain.Appointment
		receptionist sql.NullString
	)
	if err := row.Scan(&a.Code, &a.ClientID, &receptionist, &a.ScheduledAt, &a.Status, &a.TotalCost); err != nil {
		return nil, err
	}
	a.ReceptionistID = nullString(receptionist)
	a.Services = []domain.Service{}
	return &a, nil
}

// lockRow reports whether table holds a row with codigo = code, locking it
// for the rest of the transaction.
func lockRow(ctx context.Context, q queryer, table, code string) (bool, error) {
	var found string
	err := q.QueryRowContext(ctx, "SELECT codigo FROM "+table+" WHERE codigo = ? FOR UPDATE", code).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", table, err)
	}
	return true, nil
}

// optionalPrincipal loads id from store. A nil id or a principal that no
// longer exists yields nil without error.
func optionalPrincipal(ctx context.Context, store *PrincipalStore, id *string) (*domain.Principal, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	p, err := store.FindByID(ctx, *id)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, nil
	}
	return p, err
}
