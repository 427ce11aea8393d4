package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	eventdomain "analytics-api/internal/events/core/domain"
	"analytics-api/internal/metrics/core/ports"
)

// DefaultReadPageSize is the page size for full-log reads.
const DefaultReadPageSize = 1000

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type EventReadRepository struct {
	db       DB
	pageSize int
}

func NewEventReadRepository(db DB, pageSize int) *EventReadRepository {
	if pageSize <= 0 {
		pageSize = DefaultReadPageSize
	}
	return &EventReadRepository{db: db, pageSize: pageSize}
}

var _ ports.EventReaderPort = (*EventReadRepository)(nil)

const readEventsPageSQL = `
SELECT
    event_id,
    event_name,
    ts_iso,
    user_id,
    session_id,
    app,
    app_version,
    props
FROM analytics_events
ORDER BY event_id
LIMIT $1 OFFSET $2`

// ReadAllEvents pages through the whole log, stopping when a page comes back
// shorter than the page size. Order follows the store key, not the original
// write order.
func (r *EventReadRepository) ReadAllEvents(ctx context.Context) ([]eventdomain.AnalyticsEvent, error) {
	var all []eventdomain.AnalyticsEvent

	for offset := 0; ; offset += r.pageSize {
		page, err := r.readPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) < r.pageSize {
			return all, nil
		}
	}
}

func (r *EventReadRepository) readPage(ctx context.Context, offset int) ([]eventdomain.AnalyticsEvent, error) {
	rows, err := r.db.QueryContext(ctx, readEventsPageSQL, r.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("read events page: %w", err)
	}
	defer rows.Close()

	var page []eventdomain.AnalyticsEvent
	for rows.Next() {
		var (
			e         eventdomain.AnalyticsEvent
			propsJSON []byte
		)
		if err := rows.Scan(
			&e.ID,
			&e.Event,
			&e.TsISO,
			&e.UserID,
			&e.SessionID,
			&e.App,
			&e.AppVersion,
			&propsJSON,
		); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}

		if len(propsJSON) > 0 {
			if err := json.Unmarshal(propsJSON, &e.Props); err != nil {
				return nil, fmt.Errorf("decode props: %w", err)
			}
		}

		page = append(page, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events page: %w", err)
	}

	return page, nil
}
