package domain

import (
	"fmt"
	"strings"
)

// FieldError pinpoints a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every schema violation found in a batch. Validation
// failure is a normal, typed outcome, not an exception path.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid payload"
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

// ValidateEvent checks a single event against the schema. The prefix is
// prepended to field names so batch members report as "events[2].user_id".
func ValidateEvent(e AnalyticsEvent, prefix string) []FieldError {
	var errs []FieldError

	require := func(field, value string) {
		if value == "" {
			errs = append(errs, FieldError{
				Field:   prefix + field,
				Message: "must not be empty",
			})
		}
	}

	require("event", e.Event)
	require("ts_iso", e.TsISO)
	require("user_id", e.UserID)
	require("session_id", e.SessionID)
	require("app", e.App)
	require("app_version", e.AppVersion)

	return errs
}

// ValidateBatch checks a whole batch. A nil return means the batch is valid;
// otherwise the returned error lists every failing field and the batch must
// be rejected as a unit.
func ValidateBatch(b EventBatch) *ValidationError {
	var errs []FieldError

	if len(b.Events) == 0 {
		errs = append(errs, FieldError{Field: "events", Message: "must contain at least one event"})
	}

	for i, e := range b.Events {
		errs = append(errs, ValidateEvent(e, fmt.Sprintf("events[%d].", i))...)
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
