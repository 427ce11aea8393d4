package ports

import (
	"context"

	"analytics-api/internal/events/core/domain"
)

// EventStorePort is the write side of the append-only event log.
type EventStorePort interface {
	// AppendEvents persists the events in input order. The adapter splits the
	// write into bounded chunks committed sequentially; on failure the chunks
	// committed so far remain durable. written reports how many events made it
	// in before the error (len(events) on success).
	AppendEvents(ctx context.Context, events []domain.AnalyticsEvent) (written int, err error)

	// UpsertEvents persists pre-identified events (content-hash ids) with
	// insert-if-absent semantics, making bulk migration idempotent.
	//   written    -> new records
	//   duplicates -> ids already present
	UpsertEvents(ctx context.Context, events []domain.AnalyticsEvent) (written int, duplicates int, err error)
}
