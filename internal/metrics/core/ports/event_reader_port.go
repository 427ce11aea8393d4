package ports

import (
	"context"

	eventdomain "analytics-api/internal/events/core/domain"
)

// EventReaderPort reads the entire event log. The adapter pages through the
// store internally and returns one accumulated, store-key-ordered slice;
// memory is bounded by the full log size, which is acceptable at
// single-tenant analytics scale.
type EventReaderPort interface {
	ReadAllEvents(ctx context.Context) ([]eventdomain.AnalyticsEvent, error)
}
