package usecase

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"

	"analytics-api/internal/events/core/domain"
	"analytics-api/internal/events/core/ports"
)

// jsonlEvent mirrors the persisted wire schema: one JSON record per line.
type jsonlEvent struct {
	Event      string         `json:"event"`
	TsISO      string         `json:"ts_iso"`
	UserID     string         `json:"user_id"`
	SessionID  string         `json:"session_id"`
	App        string         `json:"app"`
	AppVersion string         `json:"app_version"`
	Props      map[string]any `json:"props,omitempty"`
}

type MigrateEventsUseCase struct {
	store ports.EventStorePort
}

func NewMigrateEventsUseCase(store ports.EventStorePort) *MigrateEventsUseCase {
	return &MigrateEventsUseCase{store: store}
}

type MigrateEventsInput struct {
	Source io.Reader
	DryRun bool
}

type MigrateEventsResult struct {
	Loaded      int // valid rows parsed from the source
	SkippedRows int // non-JSON or schema-invalid lines
	Written     int // new records stored
	Duplicates  int // ids already present (re-run of the same input)
}

// Execute bulk-loads a newline-delimited record source. Each valid row is
// identified by the SHA-256 of its raw line, so re-running the same input is
// a no-op for already-present records. Malformed lines are counted and
// skipped, never fatal. With DryRun set, nothing is written.
func (uc *MigrateEventsUseCase) Execute(ctx context.Context, in MigrateEventsInput) (MigrateEventsResult, error) {
	var res MigrateEventsResult

	events, skipped, err := parseJSONL(in.Source)
	if err != nil {
		return res, err
	}

	res.Loaded = len(events)
	res.SkippedRows = skipped

	if in.DryRun || len(events) == 0 {
		return res, nil
	}

	written, duplicates, err := uc.store.UpsertEvents(ctx, events)
	res.Written = written
	res.Duplicates = duplicates
	if err != nil {
		return res, err
	}

	return res, nil
}

// parseJSONL reads one JSON record per line, tolerating \r\n separators and
// blank lines. Lines that fail to parse or fail schema validation are
// counted as skipped. Lines are read without a length cap so an oversized
// row can only skip itself, never abort the remaining input.
func parseJSONL(r io.Reader) ([]domain.AnalyticsEvent, int, error) {
	var (
		events  []domain.AnalyticsEvent
		skipped int
	)

	reader := bufio.NewReader(r)
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, 0, readErr
		}

		if line := strings.TrimSpace(raw); line != "" {
			if e, ok := parseEventLine(line); ok {
				events = append(events, e)
			} else {
				skipped++
			}
		}

		if readErr == io.EOF {
			return events, skipped, nil
		}
	}
}

// parseEventLine decodes and validates a single record, deriving its id from
// the raw line content.
func parseEventLine(line string) (domain.AnalyticsEvent, bool) {
	var row jsonlEvent
	if err := json.Unmarshal([]byte(line), &row); err != nil {
		return domain.AnalyticsEvent{}, false
	}

	e := domain.AnalyticsEvent{
		Event:      row.Event,
		TsISO:      row.TsISO,
		UserID:     row.UserID,
		SessionID:  row.SessionID,
		App:        row.App,
		AppVersion: row.AppVersion,
		Props:      row.Props,
	}
	if errs := domain.ValidateEvent(e, ""); len(errs) > 0 {
		return domain.AnalyticsEvent{}, false
	}

	e.ID = contentHash(line)
	return e, true
}

// contentHash derives the stable record id from the raw serialized line.
func contentHash(line string) string {
	sum := sha256.Sum256([]byte(line))
	return hex.EncodeToString(sum[:])
}
