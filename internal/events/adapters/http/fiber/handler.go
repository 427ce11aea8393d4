package fiber

import (
	"context"
	"errors"
	"net/http"

	"analytics-api/internal/events/core/domain"
	"analytics-api/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type IngestEventsUseCase interface {
	Execute(ctx context.Context, in usecase.IngestEventsInput) (int, error)
}

type EventHandler struct {
	ingestUC IngestEventsUseCase
	log      zerolog.Logger
}

func NewEventHandler(ingestUC IngestEventsUseCase, log zerolog.Logger) *EventHandler {
	return &EventHandler{ingestUC: ingestUC, log: log}
}

// TrackEvent godoc
// @Summary Ingest a batch of analytics events
// @Description Validates the batch as a unit and appends it to the event log
// @Tags Events
// @Accept json
// @Produce json
// @Param request body TrackEventRequest true "Event batch payload"
// @Success 202 {object} TrackEventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/trackEvent [post]
func (h *EventHandler) TrackEvent(c *fiber.Ctx) error {
	var req TrackEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	events := make([]domain.AnalyticsEvent, len(req.Events))
	for i, e := range req.Events {
		events[i] = domain.AnalyticsEvent{
			Event:      e.Event,
			TsISO:      e.TsISO,
			UserID:     e.UserID,
			SessionID:  e.SessionID,
			App:        e.App,
			AppVersion: e.AppVersion,
			Props:      e.Props,
		}
	}

	input := usecase.IngestEventsInput{
		Source:     req.Source,
		App:        req.App,
		AppVersion: req.AppVersion,
		Events:     events,
	}

	accepted, err := h.ingestUC.Execute(c.UserContext(), input)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_payload",
				Details: verr.Fields,
			})
		}

		h.log.Error().Err(err).Int("accepted", accepted).Msg("append failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "store_error",
		})
	}

	return c.Status(http.StatusAccepted).JSON(TrackEventResponse{
		OK:       true,
		Accepted: accepted,
	})
}
