package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// OrderService runs the order workflow, mirroring AppointmentService with
// quantity-bearing product lines.
type OrderService struct {
	repo    ports.OrderRepository
	events  bookingNotifier
	log     zerolog.Logger
	newCode func() string
	now     func() time.Time
}

func NewOrderService(repo ports.OrderRepository, publisher ports.EventPublisher, log zerolog.Logger) *OrderService {
	return &OrderService{
		repo:    repo,
		events:  bookingNotifier{publisher: publisher, log: log},
		log:     log,
		newCode: domain.NewOrderCode,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateStaff stores the order as supplied. Lines with unknown product codes
// are dropped.
func (s *OrderService) CreateStaff(ctx context.Context, in ports.StaffOrderInput) (*domain.Order, error) {
	o := &domain.Order{
		Code:             s.newCode(),
		ClientID:         in.ClientID,
		SalesAssistantID: in.SalesAssistantID,
		Address:          in.Address,
		RegisteredAt:     in.RegisteredAt,
		Status:           in.Status,
		TotalCost:        in.TotalCost,
	}
	if o.RegisteredAt.IsZero() {
		o.RegisteredAt = s.now()
	}
	lines := domain.MergeLines(in.Lines)

	err := s.repo.Transact(ctx, func(ctx context.Context, tx ports.OrderTx) error {
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		return s.replaceResolved(ctx, tx, o.Code, lines)
	})
	if err != nil {
		return nil, s.fail("create order", o.Code, err)
	}

	s.log.Info().Str("codigo", o.Code).Str("idCliente", o.ClientID).Msg("order created")
	s.events.notify(ctx, domain.AggregateOrder, domain.ActionCreated, o.Code, o.ClientID, &o.TotalCost)
	return s.reload(ctx, o.Code)
}

// CreateSelf orders for the calling client. The total is the sum of price
// times quantity over lines whose product exists; other lines are dropped.
func (s *OrderService) CreateSelf(ctx context.Context, in ports.SelfOrderInput) (*domain.Order, error) {
	o := &domain.Order{
		Code:         s.newCode(),
		ClientID:     in.ClientID,
		Address:      in.Address,
		RegisteredAt: in.RegisteredAt,
		Status:       domain.StatusPending,
	}
	if o.RegisteredAt.IsZero() {
		o.RegisteredAt = s.now()
	}
	lines := domain.MergeLines(in.Lines)

	err := s.repo.Transact(ctx, func(ctx context.Context, tx ports.OrderTx) error {
		products, err := tx.ResolveProducts(ctx, domain.Codes(lines))
		if err != nil {
			return err
		}
		priced := domain.PriceLines(lines, products)
		o.TotalCost = domain.OrderTotal(priced)
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		return tx.ReplaceProducts(ctx, o.Code, domain.LineItems(priced))
	})
	if err != nil {
		return nil, s.fail("create own order", o.Code, err)
	}

	s.log.Info().Str("codigo", o.Code).Str("idCliente", o.ClientID).Str("costoTotal", o.TotalCost.String()).Msg("own order created")
	s.events.notify(ctx, domain.AggregateOrder, domain.ActionCreated, o.Code, o.ClientID, &o.TotalCost)
	return s.reload(ctx, o.Code)
}

// Update overwrites the header and replaces the product lines. An empty line
// list detaches every product; a zero RegisteredAt keeps the stored date.
func (s *OrderService) Update(ctx context.Context, code string, in ports.StaffOrderInput) (*domain.Order, error) {
	o := &domain.Order{
		Code:             code,
		ClientID:         in.ClientID,
		SalesAssistantID: in.SalesAssistantID,
		Address:          in.Address,
		RegisteredAt:     in.RegisteredAt,
		Status:           in.Status,
		TotalCost:        in.TotalCost,
	}
	lines := domain.MergeLines(in.Lines)

	err := s.repo.Transact(ctx, func(ctx context.Context, tx ports.OrderTx) error {
		ok, err := tx.LockOrder(ctx, code)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrOrderNotFound
		}
		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}
		return s.replaceResolved(ctx, tx, code, lines)
	})
	if err != nil {
		return nil, s.fail("update order", code, err)
	}

	s.log.Info().Str("codigo", code).Msg("order updated")
	s.events.notify(ctx, domain.AggregateOrder, domain.ActionUpdated, code, o.ClientID, &o.TotalCost)
	return s.reload(ctx, code)
}

func (s *OrderService) Get(ctx context.Context, code string) (*domain.Order, error) {
	o, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, bookingErr("get order", err)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, bookingErr("list orders", err)
	}
	return list, nil
}

func (s *OrderService) ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	list, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, bookingErr("list client orders", err)
	}
	if list == nil {
		list = []*domain.Order{}
	}
	return list, nil
}

func (s *OrderService) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return s.fail("delete order", code, err)
	}
	s.log.Info().Str("codigo", code).Msg("order deleted")
	s.events.notify(ctx, domain.AggregateOrder, domain.ActionDeleted, code, "", nil)
	return nil
}

func (s *OrderService) replaceResolved(ctx context.Context, tx ports.OrderTx, code string, lines []domain.LineItem) error {
	products, err := tx.ResolveProducts(ctx, domain.Codes(lines))
	if err != nil {
		return err
	}
	return tx.ReplaceProducts(ctx, code, domain.LineItems(domain.PriceLines(lines, products)))
}

func (s *OrderService) reload(ctx context.Context, code string) (*domain.Order, error) {
	o, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, bookingErr("reload order", err)
	}
	return o, nil
}

func (s *OrderService) fail(op, code string, err error) error {
	err = bookingErr(op, err)
	if errors.Is(err, domain.ErrPersistence) {
		s.log.Error().Err(err).Str("codigo", code).Msg(op + " failed")
	}
	return err
}
