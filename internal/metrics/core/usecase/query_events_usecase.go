package usecase

import (
	"context"

	eventdomain "analytics-api/internal/events/core/domain"
	"analytics-api/internal/metrics/core/domain"
	"analytics-api/internal/metrics/core/ports"
)

// QueryEventsUseCase answers every analytical query the same way: read the
// full log, window it, reduce it. There is no cache; cost is proportional to
// log size per request and concurrent readers are independent. A store
// failure returns an error and no partial results.
type QueryEventsUseCase struct {
	reader ports.EventReaderPort
}

func NewQueryEventsUseCase(reader ports.EventReaderPort) *QueryEventsUseCase {
	return &QueryEventsUseCase{reader: reader}
}

type EventsResult struct {
	Window    domain.Window
	Total     int
	FirstSeen map[string]string
	Rows      []eventdomain.AnalyticsEvent
}

// Events returns the raw filtered rows plus the FirstSeen map.
func (uc *QueryEventsUseCase) Events(ctx context.Context, q domain.WindowedQuery) (*EventsResult, error) {
	res, err := uc.window(ctx, q)
	if err != nil {
		return nil, err
	}

	return &EventsResult{
		Window:    res.Window(),
		Total:     len(res.Rows),
		FirstSeen: res.FirstSeenISO(),
		Rows:      res.Rows,
	}, nil
}

// Overview combines the headline totals with generation, cohort and
// per-event-name counts.
func (uc *QueryEventsUseCase) Overview(ctx context.Context, q domain.WindowedQuery) (*domain.Overview, error) {
	res, err := uc.window(ctx, q)
	if err != nil {
		return nil, err
	}

	generation := Generation(res.Rows)

	return &domain.Overview{
		Window: res.Window(),
		Totals: domain.OverviewTotals{
			Users:                  UniqueUsers(res.Rows),
			Events:                 len(res.Rows),
			AvgGenerationLatencyMs: generation.AvgLatencyMs,
		},
		Generation:  generation,
		Cohorts:     Cohorts(res.Rows, res.FirstSeen, res.From, res.To),
		EventCounts: EventCounts(res.Rows),
	}, nil
}

func (uc *QueryEventsUseCase) Daily(ctx context.Context, q domain.WindowedQuery) ([]domain.DailyUsageRow, error) {
	res, err := uc.window(ctx, q)
	if err != nil {
		return nil, err
	}
	return DailyUsage(res.Rows), nil
}

func (uc *QueryEventsUseCase) Funnel(ctx context.Context, q domain.WindowedQuery) ([]domain.FunnelStep, error) {
	res, err := uc.window(ctx, q)
	if err != nil {
		return nil, err
	}
	return Funnel(res.Rows), nil
}

func (uc *QueryEventsUseCase) Features(ctx context.Context, q domain.WindowedQuery) ([]domain.FeatureAdoptionRow, error) {
	res, err := uc.window(ctx, q)
	if err != nil {
		return nil, err
	}
	return FeatureAdoption(res.Rows), nil
}

func (uc *QueryEventsUseCase) Users(ctx context.Context, q domain.WindowedQuery) ([]domain.UserRow, error) {
	res, err := uc.window(ctx, q)
	if err != nil {
		return nil, err
	}
	return UserRows(res.Rows, res.FirstSeen), nil
}

func (uc *QueryEventsUseCase) Prompts(ctx context.Context, q domain.WindowedQuery) (*domain.PromptStats, error) {
	res, err := uc.window(ctx, q)
	if err != nil {
		return nil, err
	}
	stats := PromptStats(res.Rows)
	return &stats, nil
}

func (uc *QueryEventsUseCase) window(ctx context.Context, q domain.WindowedQuery) (WindowResult, error) {
	events, err := uc.reader.ReadAllEvents(ctx)
	if err != nil {
		return WindowResult{}, err
	}
	return ApplyWindow(events, q), nil
}
