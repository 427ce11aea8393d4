package fiber_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "analytics-api/internal/metrics/adapters/http/fiber"
	"analytics-api/internal/metrics/core/domain"
	"analytics-api/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Fake usecase implementing the interface that handler depends on.
type fakeQueryUseCase struct {
	EventsFn   func(ctx context.Context, q domain.WindowedQuery) (*usecase.EventsResult, error)
	OverviewFn func(ctx context.Context, q domain.WindowedQuery) (*domain.Overview, error)
	FunnelFn   func(ctx context.Context, q domain.WindowedQuery) ([]domain.FunnelStep, error)
	lastQuery  domain.WindowedQuery
}

func (f *fakeQueryUseCase) Events(ctx context.Context, q domain.WindowedQuery) (*usecase.EventsResult, error) {
	f.lastQuery = q
	if f.EventsFn != nil {
		return f.EventsFn(ctx, q)
	}
	return &usecase.EventsResult{FirstSeen: map[string]string{}}, nil
}

func (f *fakeQueryUseCase) Overview(ctx context.Context, q domain.WindowedQuery) (*domain.Overview, error) {
	f.lastQuery = q
	if f.OverviewFn != nil {
		return f.OverviewFn(ctx, q)
	}
	return &domain.Overview{EventCounts: map[string]int{}}, nil
}

func (f *fakeQueryUseCase) Daily(ctx context.Context, q domain.WindowedQuery) ([]domain.DailyUsageRow, error) {
	f.lastQuery = q
	return []domain.DailyUsageRow{{Day: "2024-01-01", Events: 3, DAU: 1}}, nil
}

func (f *fakeQueryUseCase) Funnel(ctx context.Context, q domain.WindowedQuery) ([]domain.FunnelStep, error) {
	f.lastQuery = q
	if f.FunnelFn != nil {
		return f.FunnelFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeQueryUseCase) Features(ctx context.Context, q domain.WindowedQuery) ([]domain.FeatureAdoptionRow, error) {
	f.lastQuery = q
	return nil, nil
}

func (f *fakeQueryUseCase) Users(ctx context.Context, q domain.WindowedQuery) ([]domain.UserRow, error) {
	f.lastQuery = q
	return nil, nil
}

func (f *fakeQueryUseCase) Prompts(ctx context.Context, q domain.WindowedQuery) (*domain.PromptStats, error) {
	f.lastQuery = q
	return &domain.PromptStats{}, nil
}

func setupApp(t *testing.T, uc httpadapter.QueryEventsUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := httpadapter.NewMetricsHandler(uc, zerolog.Nop())
	app.Get("/api/events", h.GetEvents)
	app.Get("/api/metrics/overview", h.GetOverview)
	app.Get("/api/metrics/daily", h.GetDaily)
	app.Get("/api/metrics/funnel", h.GetFunnel)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, body
}

// ------------------------------------------------------------
// PARAM PARSING
// ------------------------------------------------------------

func TestGetEvents_ParsesParams(t *testing.T) {
	uc := &fakeQueryUseCase{}
	app := setupApp(t, uc)

	resp, _ := get(t, app, "/api/events?from=2024-01-01&to=2024-01-31&event=prompt_submitted,midi_dragged&cohort=new")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	q := uc.lastQuery
	if q.From != "2024-01-01" || q.To != "2024-01-31" {
		t.Fatalf("unexpected window params: %+v", q)
	}
	if len(q.Events) != 2 || q.Events[0] != "prompt_submitted" || q.Events[1] != "midi_dragged" {
		t.Fatalf("unexpected event filter: %v", q.Events)
	}
	if q.Cohort != domain.CohortNew {
		t.Fatalf("expected cohort new, got %s", q.Cohort)
	}
}

func TestGetEvents_DefaultsAndFallbacks(t *testing.T) {
	uc := &fakeQueryUseCase{}
	app := setupApp(t, uc)

	// "all" disables event filtering; an unknown cohort falls back to all.
	get(t, app, "/api/events?event=all&cohort=whales")

	q := uc.lastQuery
	if q.Events != nil {
		t.Fatalf("expected no event filter for 'all', got %v", q.Events)
	}
	if q.Cohort != domain.CohortAll {
		t.Fatalf("expected cohort fallback to all, got %s", q.Cohort)
	}
}

// ------------------------------------------------------------
// RESPONSE SHAPES
// ------------------------------------------------------------

func TestGetOverview_Response(t *testing.T) {
	uc := &fakeQueryUseCase{
		OverviewFn: func(ctx context.Context, q domain.WindowedQuery) (*domain.Overview, error) {
			return &domain.Overview{
				Window: domain.Window{From: "2024-01-01T00:00:00Z", To: "2024-01-01T23:59:59Z"},
				Totals: domain.OverviewTotals{Users: 4, Events: 17, AvgGenerationLatencyMs: 480},
				Generation: domain.GenerationStats{
					TotalGenerations: 5,
					SuccessRatePct:   83.3,
					AvgLatencyMs:     480,
				},
				Cohorts:     domain.CohortSummary{TotalUsers: 4, NewUsers: 3, ReturningUsers: 1},
				EventCounts: map[string]int{"prompt_submitted": 6},
			}, nil
		},
	}
	app := setupApp(t, uc)

	resp, body := get(t, app, "/api/metrics/overview")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out httpadapter.OverviewResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !out.OK || out.Totals.Users != 4 || out.Totals.Events != 17 {
		t.Fatalf("unexpected totals: %+v", out)
	}
	if out.Generation.SuccessRatePct != 83.3 {
		t.Fatalf("unexpected generation stats: %+v", out.Generation)
	}
	if out.Cohorts.NewUsers != 3 || out.EventCounts["prompt_submitted"] != 6 {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestGetFunnel_Response(t *testing.T) {
	uc := &fakeQueryUseCase{
		FunnelFn: func(ctx context.Context, q domain.WindowedQuery) ([]domain.FunnelStep, error) {
			return []domain.FunnelStep{
				{Step: "prompt_submitted", Count: 10, PctFromPrevious: 100, PctFromStart: 100},
				{Step: "generation_completed", Count: 7, PctFromPrevious: 70, PctFromStart: 70},
				{Step: "midi_dragged", Count: 3, PctFromPrevious: 42.9, PctFromStart: 30},
			}, nil
		},
	}
	app := setupApp(t, uc)

	resp, body := get(t, app, "/api/metrics/funnel")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out httpadapter.FunnelResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(out.Steps) != 3 || out.Steps[2].PctFromPrevious != 42.9 {
		t.Fatalf("unexpected funnel response: %+v", out)
	}
}

// ------------------------------------------------------------
// STORE FAILURE: all-or-nothing
// ------------------------------------------------------------

func TestGetEvents_StoreFailure(t *testing.T) {
	uc := &fakeQueryUseCase{
		EventsFn: func(ctx context.Context, q domain.WindowedQuery) (*usecase.EventsResult, error) {
			return nil, errors.New("read events page: connection refused")
		},
	}
	app := setupApp(t, uc)

	resp, body := get(t, app, "/api/events")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var out httpadapter.ErrorResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if out.Error != "store_error" {
		t.Fatalf("expected store_error, got %q", out.Error)
	}
}
