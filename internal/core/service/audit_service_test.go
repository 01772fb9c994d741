package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuditRepo struct {
	insertErr error
	inserted  []domain.BookingEvent
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, e domain.BookingEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, id string) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, id string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, id)
	return nil
}

func sampleEvent() domain.BookingEvent {
	evt := domain.NewBookingEvent(domain.AggregateAppointment, domain.ActionCreated, "CITA-1")
	evt.ClientID = "1001"
	return evt
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuditService_Record_HappyPath(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := &stubDedup{}
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	evt := sampleEvent()
	if err := svc.Record(context.Background(), evt); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].ID != evt.ID {
		t.Errorf("expected event inserted, got: %+v", repo.inserted)
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != evt.ID {
		t.Errorf("expected dedup key marked")
	}
}

func TestAuditService_Record_DuplicateSkipped(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, &stubDedup{dupResult: true}, zerolog.Nop())

	if err := svc.Record(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("expected nil for duplicate, got: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("duplicate must not be stored")
	}
}

func TestAuditService_Record_DedupErrorStillRecords(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, &stubDedup{dupErr: errors.New("redis down")}, zerolog.Nop())

	if err := svc.Record(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("expected nil, got: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Errorf("expected event stored despite dedup failure")
	}
}

func TestAuditService_Record_InsertFailureNotMarked(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("mongo down")}
	dedup := &stubDedup{}
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Record(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error")
	}
	if len(dedup.marked) != 0 {
		t.Errorf("failed insert must not be marked as processed")
	}
}

func TestAuditService_Record_RejectsIncompleteEvent(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{}, nil, zerolog.Nop())
	if err := svc.Record(context.Background(), domain.BookingEvent{}); err == nil {
		t.Fatalf("expected error for event without id")
	}
}
