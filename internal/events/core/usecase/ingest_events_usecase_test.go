package usecase_test

import (
	"context"
	"errors"
	"testing"

	"analytics-api/internal/events/core/domain"
	"analytics-api/internal/events/core/usecase"
)

// Fake store implementing EventStorePort
type fakeEventStore struct {
	AppendFn func(ctx context.Context, events []domain.AnalyticsEvent) (int, error)
	UpsertFn func(ctx context.Context, events []domain.AnalyticsEvent) (int, int, error)
}

func (f *fakeEventStore) AppendEvents(ctx context.Context, events []domain.AnalyticsEvent) (int, error) {
	return f.AppendFn(ctx, events)
}

func (f *fakeEventStore) UpsertEvents(ctx context.Context, events []domain.AnalyticsEvent) (int, int, error) {
	return f.UpsertFn(ctx, events)
}

func validEvent(name, user string) domain.AnalyticsEvent {
	return domain.AnalyticsEvent{
		Event:      name,
		TsISO:      "2024-01-01T00:00:00Z",
		UserID:     user,
		SessionID:  "sess_1",
		App:        "midi-editor",
		AppVersion: "1.2.0",
	}
}

// ------------------------------------------------------------
// SUCCESS TEST
// ------------------------------------------------------------
func TestIngestEvents_Success(t *testing.T) {
	var appended []domain.AnalyticsEvent

	store := &fakeEventStore{
		AppendFn: func(ctx context.Context, events []domain.AnalyticsEvent) (int, error) {
			appended = events
			return len(events), nil
		},
	}

	uc := usecase.NewIngestEventsUseCase(store)

	in := usecase.IngestEventsInput{
		Source: "plugin",
		Events: []domain.AnalyticsEvent{
			validEvent("prompt_submitted", "u1"),
			validEvent("generation_completed", "u1"),
		},
	}

	accepted, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted != 2 {
		t.Fatalf("expected accepted=2, got %d", accepted)
	}
	if len(appended) != 2 {
		t.Fatalf("expected 2 events appended, got %d", len(appended))
	}
	for i, e := range appended {
		if e.ID == "" {
			t.Fatalf("event %d: expected store-assigned id, got empty", i)
		}
	}
	if appended[0].Event != "prompt_submitted" || appended[1].Event != "generation_completed" {
		t.Fatalf("append order not preserved: %s, %s", appended[0].Event, appended[1].Event)
	}
}

// ------------------------------------------------------------
// EMPTY BATCH
// ------------------------------------------------------------
func TestIngestEvents_EmptyBatch(t *testing.T) {
	store := &fakeEventStore{
		AppendFn: func(ctx context.Context, events []domain.AnalyticsEvent) (int, error) {
			t.Fatalf("store must not be called for an empty batch")
			return 0, nil
		},
	}

	uc := usecase.NewIngestEventsUseCase(store)

	accepted, err := uc.Execute(context.Background(), usecase.IngestEventsInput{})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if accepted != 0 {
		t.Fatalf("expected accepted=0, got %d", accepted)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// ------------------------------------------------------------
// INVALID MEMBER REJECTS WHOLE BATCH
// ------------------------------------------------------------
func TestIngestEvents_InvalidMemberRejectsBatch(t *testing.T) {
	called := false
	store := &fakeEventStore{
		AppendFn: func(ctx context.Context, events []domain.AnalyticsEvent) (int, error) {
			called = true
			return len(events), nil
		},
	}

	uc := usecase.NewIngestEventsUseCase(store)

	bad := validEvent("prompt_submitted", "u2")
	bad.UserID = ""

	in := usecase.IngestEventsInput{
		Events: []domain.AnalyticsEvent{validEvent("editor_opened", "u1"), bad},
	}

	accepted, err := uc.Execute(context.Background(), in)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if accepted != 0 {
		t.Fatalf("expected accepted=0, got %d", accepted)
	}
	if called {
		t.Fatalf("nothing must be written when any member event is invalid")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(verr.Fields))
	}
	if verr.Fields[0].Field != "events[1].user_id" {
		t.Fatalf("expected field 'events[1].user_id', got %q", verr.Fields[0].Field)
	}
}

// ------------------------------------------------------------
// STORE FAILURE PROPAGATES WITH PARTIAL COUNT
// ------------------------------------------------------------
func TestIngestEvents_StoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")

	store := &fakeEventStore{
		AppendFn: func(ctx context.Context, events []domain.AnalyticsEvent) (int, error) {
			return 1, storeErr
		},
	}

	uc := usecase.NewIngestEventsUseCase(store)

	in := usecase.IngestEventsInput{
		Events: []domain.AnalyticsEvent{
			validEvent("prompt_submitted", "u1"),
			validEvent("midi_dragged", "u1"),
		},
	}

	accepted, err := uc.Execute(context.Background(), in)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if accepted != 1 {
		t.Fatalf("expected partial count 1, got %d", accepted)
	}
}
