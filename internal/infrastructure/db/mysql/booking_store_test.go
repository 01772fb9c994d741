package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

func TestOrderStore_ReplaceProducts_WritesOnlyTheDiff(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT codigo_producto, num_productos FROM contiene_pedido").
		WithArgs("PEDIDO-1").
		WillReturnRows(sqlmock.NewRows([]string{"codigo_producto", "num_productos"}).
			AddRow("P1", int64(2)).
			AddRow("P3", int64(1)))
	mock.ExpectExec("DELETE FROM contiene_pedido").
		WithArgs("PEDIDO-1", "P3").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO contiene_pedido").
		WithArgs("PEDIDO-1", "P2", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE contiene_pedido SET num_productos").
		WithArgs(5, "PEDIDO-1", "P1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewOrderStore(db).Transact(context.Background(), func(ctx context.Context, tx ports.OrderTx) error {
		return tx.ReplaceProducts(ctx, "PEDIDO-1", []domain.LineItem{
			{Code: "P1", Quantity: 5},
			{Code: "P2", Quantity: 1},
		})
	})
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppointmentStore_ReplaceServices_SameSetIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT codigo_servicio FROM contiene_cita").
		WillReturnRows(sqlmock.NewRows([]string{"codigo_servicio"}).AddRow("S1").AddRow("S2"))
	mock.ExpectCommit()

	err = NewAppointmentStore(db).Transact(context.Background(), func(ctx context.Context, tx ports.AppointmentTx) error {
		return tx.ReplaceServices(ctx, "CITA-1", []string{"S2", "S1", "S1"})
	})
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppointmentStore_Transact_RollsBackOnMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT codigo FROM cita WHERE codigo = .* FOR UPDATE").
		WithArgs("CITA-404").
		WillReturnRows(sqlmock.NewRows([]string{"codigo"}))
	mock.ExpectRollback()

	err = NewAppointmentStore(db).Transact(context.Background(), func(ctx context.Context, tx ports.AppointmentTx) error {
		ok, err := tx.LockAppointment(ctx, "CITA-404")
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAppointmentNotFound
		}
		return nil
	})
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderStore_UpdateOrder_ZeroDateKeepsStoredValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`fecha_registro = COALESCE\(\?, fecha_registro\)`).
		WithArgs("1001", sqlmock.AnyArg(), "Calle 1", nil, "Enviado", sqlmock.AnyArg(), "PEDIDO-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewOrderStore(db).Transact(context.Background(), func(ctx context.Context, tx ports.OrderTx) error {
		return tx.UpdateOrder(ctx, &domain.Order{
			Code:      "PEDIDO-1",
			ClientID:  "1001",
			Address:   "Calle 1",
			Status:    "Enviado",
			TotalCost: decimal.NewFromInt(10),
		})
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppointmentStore_Insert_UnknownClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO cita").
		WillReturnError(&mysqldrv.MySQLError{Number: errNoReferencedRow, Message: "Cannot add or update a child row"})
	mock.ExpectRollback()

	err = NewAppointmentStore(db).Transact(context.Background(), func(ctx context.Context, tx ports.AppointmentTx) error {
		return tx.InsertAppointment(ctx, &domain.Appointment{
			Code:        "CITA-1",
			ClientID:    "missing",
			ScheduledAt: time.Now(),
			Status:      domain.StatusPending,
			TotalCost:   decimal.Zero,
		})
	})
	if !errors.Is(err, domain.ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppointmentStore_FindByCode_LoadsRelations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	when := time.Date(2025, 5, 2, 15, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM cita WHERE codigo = ").
		WithArgs("CITA-1").
		WillReturnRows(sqlmock.NewRows([]string{"codigo", "id_cliente", "id_recepcionista", "fecha_cita", "estado", "costo_total"}).
			AddRow("CITA-1", "C1", nil, when, "Pendiente", "55.00"))
	mock.ExpectQuery("FROM cliente WHERE cedula = ").
		WithArgs("C1").
		WillReturnRows(sqlmock.NewRows(principalTables[domain.GuardClient].columns()).
			AddRow("C1", "Luis", "luis@example.com", "hash", int64(28), "M", nil, when, when))
	mock.ExpectQuery("FROM servicio JOIN contiene_cita").
		WithArgs("CITA-1").
		WillReturnRows(sqlmock.NewRows([]string{"codigo", "nombre", "descripcion", "precio", "url_image"}).
			AddRow("S1", "Limpieza", "facial", "25.00", nil).
			AddRow("S2", "Peeling", nil, "30.00", "https://img/s2.png"))

	a, err := NewAppointmentStore(db).FindByCode(context.Background(), "CITA-1")
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if a.Client == nil || a.Client.Name != "Luis" {
		t.Fatalf("expected client to be loaded, got %+v", a.Client)
	}
	if a.Receptionist != nil || a.ReceptionistID != nil {
		t.Fatalf("expected no receptionist")
	}
	if len(a.Services) != 2 || a.Services[1].ImageURL == nil {
		t.Fatalf("unexpected services %+v", a.Services)
	}
	if !a.TotalCost.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("expected total 55, got %s", a.TotalCost)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderStore_Delete_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM pedido").
		WithArgs("PEDIDO-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewOrderStore(db).Delete(context.Background(), "PEDIDO-404"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStore_UpdateOrder_UnknownAssistantNamesColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE pedido").
		WillReturnError(&mysqldrv.MySQLError{
			Number:  errNoReferencedRow,
			Message: "Cannot add or update a child row: a foreign key constraint fails (`backen_maria`.`pedido`, CONSTRAINT `fk_pedido_asistente` FOREIGN KEY (`id_asistente_ventas`) REFERENCES `asistente_ventas` (`cedula`) ON DELETE CASCADE)",
		})
	mock.ExpectRollback()

	assistant := "missing"
	err = NewOrderStore(db).Transact(context.Background(), func(ctx context.Context, tx ports.OrderTx) error {
		return tx.UpdateOrder(ctx, &domain.Order{
			Code:             "PEDIDO-1",
			ClientID:         "1001",
			SalesAssistantID: &assistant,
			RegisteredAt:     time.Now(),
			Status:           "Pendiente",
			TotalCost:        decimal.Zero,
		})
	})
	var ref *domain.ReferenceError
	if !errors.As(err, &ref) || ref.Column != "id_asistente_ventas" {
		t.Fatalf("expected reference error on id_asistente_ventas, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
