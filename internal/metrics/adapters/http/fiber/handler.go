package fiber

import (
	"context"
	"net/http"
	"strings"

	"analytics-api/internal/metrics/core/domain"
	"analytics-api/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type QueryEventsUseCase interface {
	Events(ctx context.Context, q domain.WindowedQuery) (*usecase.EventsResult, error)
	Overview(ctx context.Context, q domain.WindowedQuery) (*domain.Overview, error)
	Daily(ctx context.Context, q domain.WindowedQuery) ([]domain.DailyUsageRow, error)
	Funnel(ctx context.Context, q domain.WindowedQuery) ([]domain.FunnelStep, error)
	Features(ctx context.Context, q domain.WindowedQuery) ([]domain.FeatureAdoptionRow, error)
	Users(ctx context.Context, q domain.WindowedQuery) ([]domain.UserRow, error)
	Prompts(ctx context.Context, q domain.WindowedQuery) (*domain.PromptStats, error)
}

type MetricsHandler struct {
	queryUC QueryEventsUseCase
	log     zerolog.Logger
}

func NewMetricsHandler(queryUC QueryEventsUseCase, log zerolog.Logger) *MetricsHandler {
	return &MetricsHandler{queryUC: queryUC, log: log}
}

// queryFromParams builds the windowed query from the shared set of request
// parameters. Unknown cohort values fall back to "all"; event accepts a
// comma-separated list or the literal "all".
func queryFromParams(c *fiber.Ctx) domain.WindowedQuery {
	q := domain.WindowedQuery{
		From:   c.Query("from", ""),
		To:     c.Query("to", ""),
		Cohort: domain.CohortAll,
	}

	switch c.Query("cohort", "") {
	case string(domain.CohortNew):
		q.Cohort = domain.CohortNew
	case string(domain.CohortReturning):
		q.Cohort = domain.CohortReturning
	}

	if event := c.Query("event", ""); event != "" && event != "all" {
		for _, name := range strings.Split(event, ",") {
			if name = strings.TrimSpace(name); name != "" {
				q.Events = append(q.Events, name)
			}
		}
	}

	return q
}

func (h *MetricsHandler) fail(c *fiber.Ctx, op string, err error) error {
	h.log.Error().Err(err).Str("op", op).Msg("query failed")
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Error: "store_error"})
}

// GetEvents godoc
// @Summary Query filtered event rows
// @Description Returns the windowed, cohort-filtered rows plus the per-user first-seen map
// @Tags Metrics
// @Produce json
// @Param from query string false "Window lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Window upper bound (RFC 3339 or YYYY-MM-DD)"
// @Param event query string false "Comma-separated event names, or 'all'"
// @Param cohort query string false "all | new | returning"
// @Success 200 {object} EventsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/events [get]
func (h *MetricsHandler) GetEvents(c *fiber.Ctx) error {
	res, err := h.queryUC.Events(c.UserContext(), queryFromParams(c))
	if err != nil {
		return h.fail(c, "events", err)
	}

	rows := make([]EventRowResponse, 0, len(res.Rows))
	for _, e := range res.Rows {
		rows = append(rows, EventRowResponse{
			Event:      e.Event,
			TsISO:      e.TsISO,
			UserID:     e.UserID,
			SessionID:  e.SessionID,
			App:        e.App,
			AppVersion: e.AppVersion,
			Props:      e.Props,
		})
	}

	return c.Status(http.StatusOK).JSON(EventsResponse{
		OK:              true,
		Window:          WindowResponse{From: res.Window.From, To: res.Window.To},
		Total:           res.Total,
		FirstSeenByUser: res.FirstSeen,
		Rows:            rows,
	})
}

// GetOverview godoc
// @Summary Overview totals for a window
// @Description Unique users, event counts, generation and cohort stats
// @Tags Metrics
// @Produce json
// @Param from query string false "Window lower bound"
// @Param to query string false "Window upper bound"
// @Param event query string false "Comma-separated event names, or 'all'"
// @Param cohort query string false "all | new | returning"
// @Success 200 {object} OverviewResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/metrics/overview [get]
func (h *MetricsHandler) GetOverview(c *fiber.Ctx) error {
	res, err := h.queryUC.Overview(c.UserContext(), queryFromParams(c))
	if err != nil {
		return h.fail(c, "overview", err)
	}

	return c.Status(http.StatusOK).JSON(OverviewResponse{
		OK:     true,
		Window: WindowResponse{From: res.Window.From, To: res.Window.To},
		Totals: OverviewTotalsResponse{
			Users:                  res.Totals.Users,
			Events:                 res.Totals.Events,
			AvgGenerationLatencyMs: res.Totals.AvgGenerationLatencyMs,
		},
		Generation: GenerationResponse{
			TotalGenerations: res.Generation.TotalGenerations,
			SuccessRatePct:   res.Generation.SuccessRatePct,
			AvgLatencyMs:     res.Generation.AvgLatencyMs,
		},
		Cohorts: CohortsResponse{
			TotalUsers:     res.Cohorts.TotalUsers,
			NewUsers:       res.Cohorts.NewUsers,
			ReturningUsers: res.Cohorts.ReturningUsers,
		},
		EventCounts: res.EventCounts,
	})
}

// GetDaily godoc
// @Summary Daily active-user series
// @Tags Metrics
// @Produce json
// @Param from query string false "Window lower bound"
// @Param to query string false "Window upper bound"
// @Param event query string false "Comma-separated event names, or 'all'"
// @Param cohort query string false "all | new | returning"
// @Success 200 {object} DailyResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/metrics/daily [get]
func (h *MetricsHandler) GetDaily(c *fiber.Ctx) error {
	rows, err := h.queryUC.Daily(c.UserContext(), queryFromParams(c))
	if err != nil {
		return h.fail(c, "daily", err)
	}

	out := make([]DailyRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, DailyRowResponse{Day: r.Day, Events: r.Events, DAU: r.DAU})
	}
	return c.Status(http.StatusOK).JSON(DailyResponse{OK: true, Rows: out})
}

// GetFunnel godoc
// @Summary Funnel conversion over the fixed step list
// @Tags Metrics
// @Produce json
// @Param from query string false "Window lower bound"
// @Param to query string false "Window upper bound"
// @Param cohort query string false "all | new | returning"
// @Success 200 {object} FunnelResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/metrics/funnel [get]
func (h *MetricsHandler) GetFunnel(c *fiber.Ctx) error {
	steps, err := h.queryUC.Funnel(c.UserContext(), queryFromParams(c))
	if err != nil {
		return h.fail(c, "funnel", err)
	}

	out := make([]FunnelStepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, FunnelStepResponse{
			Step:            s.Step,
			Count:           s.Count,
			PctFromPrevious: s.PctFromPrevious,
			PctFromStart:    s.PctFromStart,
		})
	}
	return c.Status(http.StatusOK).JSON(FunnelResponse{OK: true, Steps: out})
}

// GetFeatures godoc
// @Summary Feature adoption per tracked event
// @Tags Metrics
// @Produce json
// @Param from query string false "Window lower bound"
// @Param to query string false "Window upper bound"
// @Param cohort query string false "all | new | returning"
// @Success 200 {object} FeaturesResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/metrics/features [get]
func (h *MetricsHandler) GetFeatures(c *fiber.Ctx) error {
	rows, err := h.queryUC.Features(c.UserContext(), queryFromParams(c))
	if err != nil {
		return h.fail(c, "features", err)
	}

	out := make([]FeatureRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FeatureRowResponse{Feature: r.Feature, Users: r.Users, AdoptionPct: r.AdoptionPct})
	}
	return c.Status(http.StatusOK).JSON(FeaturesResponse{OK: true, Rows: out})
}

// GetUsers godoc
// @Summary Per-user activity rows, most active first
// @Tags Metrics
// @Produce json
// @Param from query string false "Window lower bound"
// @Param to query string false "Window upper bound"
// @Param event query string false "Comma-separated event names, or 'all'"
// @Param cohort query string false "all | new | returning"
// @Success 200 {object} UsersResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/metrics/users [get]
func (h *MetricsHandler) GetUsers(c *fiber.Ctx) error {
	rows, err := h.queryUC.Users(c.UserContext(), queryFromParams(c))
	if err != nil {
		return h.fail(c, "users", err)
	}

	out := make([]UserRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserRowResponse{
			UserID:      r.UserID,
			FirstSeen:   r.FirstSeen,
			Events:      r.Events,
			Prompts:     r.Prompts,
			Generations: r.Generations,
			Drags:       r.Drags,
			Replays:     r.Replays,
		})
	}
	return c.Status(http.StatusOK).JSON(UsersResponse{OK: true, Rows: out})
}

// GetPrompts godoc
// @Summary Prompt hash breakdown and length buckets
// @Tags Metrics
// @Produce json
// @Param from query string false "Window lower bound"
// @Param to query string false "Window upper bound"
// @Param cohort query string false "all | new | returning"
// @Success 200 {object} PromptsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/metrics/prompts [get]
func (h *MetricsHandler) GetPrompts(c *fiber.Ctx) error {
	stats, err := h.queryUC.Prompts(c.UserContext(), queryFromParams(c))
	if err != nil {
		return h.fail(c, "prompts", err)
	}

	hashes := make([]PromptHashResponse, 0, len(stats.Hashes))
	for _, hrow := range stats.Hashes {
		hashes = append(hashes, PromptHashResponse{Hash: hrow.Hash, Count: hrow.Count})
	}
	buckets := make([]PromptLengthBucketResponse, 0, len(stats.LengthBuckets))
	for _, b := range stats.LengthBuckets {
		buckets = append(buckets, PromptLengthBucketResponse{Bucket: b.Bucket, Count: b.Count})
	}

	return c.Status(http.StatusOK).JSON(PromptsResponse{OK: true, Hashes: hashes, LengthBuckets: buckets})
}
