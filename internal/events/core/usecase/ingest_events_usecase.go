package usecase

import (
	"context"

	"analytics-api/internal/events/core/domain"
	"analytics-api/internal/events/core/ports"

	"github.com/google/uuid"
)

type IngestEventsUseCase struct {
	store ports.EventStorePort
}

func NewIngestEventsUseCase(store ports.EventStorePort) *IngestEventsUseCase {
	return &IngestEventsUseCase{store: store}
}

type IngestEventsInput struct {
	Source     string
	App        string
	AppVersion string
	Events     []domain.AnalyticsEvent
}

// Execute validates the batch as a unit and appends it to the store. The
// whole batch is rejected if any member event is invalid; nothing is written
// in that case. On success accepted == len(input.Events).
//
// Live-ingested events get store-assigned ids here, so a client retry after
// a lost response may produce duplicates (at-least-once semantics).
func (uc *IngestEventsUseCase) Execute(ctx context.Context, in IngestEventsInput) (accepted int, err error) {
	batch := domain.EventBatch{
		Source:     in.Source,
		App:        in.App,
		AppVersion: in.AppVersion,
		Events:     in.Events,
	}

	if verr := domain.ValidateBatch(batch); verr != nil {
		return 0, verr
	}

	events := make([]domain.AnalyticsEvent, len(in.Events))
	for i, e := range in.Events {
		e.ID = uuid.NewString()
		events[i] = e
	}

	written, err := uc.store.AppendEvents(ctx, events)
	if err != nil {
		// Chunks committed before the failure stay durable; the caller must
		// treat the batch as partially applied.
		return written, err
	}

	return written, nil
}
