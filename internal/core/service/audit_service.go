package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation. dedup may be nil,
// in which case every delivery is stored.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Record stores a booking event once. Redelivered events are skipped.
func (s *auditService) Record(ctx context.Context, evt domain.BookingEvent) error {
	if evt.ID == "" || evt.Code == "" {
		return fmt.Errorf("record booking event: missing id or codigo")
	}

	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, evt.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("event_id", evt.ID).Msg("dedup check failed, recording anyway")
		} else if isDup {
			s.log.Debug().Str("event_id", evt.ID).Str("codigo", evt.Code).Msg("duplicate booking event skipped")
			return nil
		}
	}

	if err := s.repo.InsertEvent(ctx, evt); err != nil {
		return fmt.Errorf("record booking event: %w", err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, evt.ID); err != nil {
			s.log.Warn().Err(err).Str("event_id", evt.ID).Msg("failed to set dedup key")
		}
	}

	s.log.Info().
		Str("aggregate", string(evt.Aggregate)).
		Str("action", string(evt.Action)).
		Str("codigo", evt.Code).
		Msg("booking event recorded")
	return nil
}
