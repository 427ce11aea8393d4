package fiber

import "analytics-api/internal/events/core/domain"

// TrackEventRequest represents an ingestion batch payload
// @Description Batch of client analytics events with optional provenance fields
type TrackEventRequest struct {
	Source     string         `json:"source,omitempty"`
	App        string         `json:"app,omitempty"`
	AppVersion string         `json:"app_version,omitempty"`
	Events     []batchedEvent `json:"events"`
}

type batchedEvent struct {
	Event      string         `json:"event"`
	TsISO      string         `json:"ts_iso"`
	UserID     string         `json:"user_id"`
	SessionID  string         `json:"session_id"`
	App        string         `json:"app"`
	AppVersion string         `json:"app_version"`
	Props      map[string]any `json:"props,omitempty"`
}

type TrackEventResponse struct {
	OK       bool `json:"ok"`
	Accepted int  `json:"accepted"`
}

type ErrorResponse struct {
	OK      bool                `json:"ok"`
	Error   string              `json:"error" example:"invalid_payload"`
	Details []domain.FieldError `json:"details,omitempty"`
}
