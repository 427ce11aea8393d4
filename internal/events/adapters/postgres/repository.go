package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"analytics-api/internal/events/core/domain"
	"analytics-api/internal/events/core/ports"

	"github.com/lib/pq"
)

// MaxBatchWrites caps the number of rows per INSERT statement. Chunks are
// committed sequentially in input order: if chunk k fails, chunks 1..k-1 are
// already durable and later chunks are not attempted.
const MaxBatchWrites = 500

const eventColumns = 8

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventStorePort = (*EventRepository)(nil)

// Table:
//
//	CREATE TABLE analytics_events (
//	    event_id    TEXT PRIMARY KEY,
//	    event_name  TEXT NOT NULL,
//	    ts_iso      TEXT NOT NULL,
//	    user_id     TEXT NOT NULL,
//	    session_id  TEXT NOT NULL,
//	    app         TEXT NOT NULL,
//	    app_version TEXT NOT NULL,
//	    props       JSONB NOT NULL DEFAULT '{}'
//	);
const insertEventsSQL = `
INSERT INTO analytics_events (
    event_id,
    event_name,
    ts_iso,
    user_id,
    session_id,
    app,
    app_version,
    props
) VALUES %s`

func (r *EventRepository) AppendEvents(ctx context.Context, events []domain.AnalyticsEvent) (int, error) {
	written := 0

	for _, chunk := range chunkEvents(events, MaxBatchWrites) {
		query, args, err := buildInsert(chunk, "")
		if err != nil {
			return written, err
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return written, storeError("append events", err)
		}
		written += len(chunk)
	}

	return written, nil
}

func (r *EventRepository) UpsertEvents(ctx context.Context, events []domain.AnalyticsEvent) (int, int, error) {
	written := 0
	duplicates := 0

	for _, chunk := range chunkEvents(events, MaxBatchWrites) {
		query, args, err := buildInsert(chunk, "\nON CONFLICT (event_id) DO NOTHING")
		if err != nil {
			return written, duplicates, err
		}

		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return written, duplicates, storeError("upsert events", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return written, duplicates, storeError("upsert events", err)
		}

		written += int(rows)
		duplicates += len(chunk) - int(rows)
	}

	return written, duplicates, nil
}

func chunkEvents(events []domain.AnalyticsEvent, size int) [][]domain.AnalyticsEvent {
	var chunks [][]domain.AnalyticsEvent
	for start := 0; start < len(events); start += size {
		end := start + size
		if end > len(events) {
			end = len(events)
		}
		chunks = append(chunks, events[start:end])
	}
	return chunks
}

func buildInsert(chunk []domain.AnalyticsEvent, suffix string) (string, []any, error) {
	values := make([]string, 0, len(chunk))
	args := make([]any, 0, len(chunk)*eventColumns)

	for i, e := range chunk {
		propsJSON, err := json.Marshal(orEmptyProps(e.Props))
		if err != nil {
			return "", nil, fmt.Errorf("marshal props: %w", err)
		}

		base := i * eventColumns
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args,
			e.ID,
			e.Event,
			e.TsISO,
			e.UserID,
			e.SessionID,
			e.App,
			e.AppVersion,
			propsJSON,
		)
	}

	return fmt.Sprintf(insertEventsSQL, strings.Join(values, ",\n")) + suffix, args, nil
}

func orEmptyProps(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	return props
}

// storeError keeps the Postgres error code visible in logs without leaking
// driver types to callers.
func storeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %s: %w", op, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
