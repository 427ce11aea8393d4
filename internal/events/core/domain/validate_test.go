package domain_test

import (
	"testing"

	"analytics-api/internal/events/core/domain"
)

func validEvent() domain.AnalyticsEvent {
	return domain.AnalyticsEvent{
		Event:      "prompt_submitted",
		TsISO:      "2024-01-01T10:00:00Z",
		UserID:     "u1",
		SessionID:  "s1",
		App:        "miditest",
		AppVersion: "1.0.0",
	}
}

// ---- SUCCESS TESTS ----

func TestValidateBatch_Valid(t *testing.T) {
	batch := domain.EventBatch{Events: []domain.AnalyticsEvent{validEvent(), validEvent()}}

	if err := domain.ValidateBatch(batch); err != nil {
		t.Fatalf("expected valid batch, got %v", err)
	}
}

func TestValidateEvent_PropsAreOptional(t *testing.T) {
	e := validEvent()
	e.Props = nil

	if errs := domain.ValidateEvent(e, ""); len(errs) != 0 {
		t.Fatalf("expected no field errors, got %v", errs)
	}
}

// ---- FAILURE TESTS ----

func TestValidateBatch_Empty(t *testing.T) {
	err := domain.ValidateBatch(domain.EventBatch{})
	if err == nil {
		t.Fatal("expected validation error for empty batch")
	}
	if len(err.Fields) != 1 || err.Fields[0].Field != "events" {
		t.Fatalf("unexpected fields: %v", err.Fields)
	}
}

func TestValidateBatch_ReportsEveryViolationWithIndex(t *testing.T) {
	bad := validEvent()
	bad.UserID = ""
	bad.TsISO = ""

	batch := domain.EventBatch{Events: []domain.AnalyticsEvent{validEvent(), bad}}

	err := domain.ValidateBatch(batch)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(err.Fields), err.Fields)
	}

	want := map[string]bool{"events[1].ts_iso": true, "events[1].user_id": true}
	for _, f := range err.Fields {
		if !want[f.Field] {
			t.Fatalf("unexpected field %q", f.Field)
		}
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "events[0].app", Message: "must not be empty"},
	}}

	got := err.Error()
	if got != "invalid payload: events[0].app: must not be empty" {
		t.Fatalf("unexpected message: %q", got)
	}
}
