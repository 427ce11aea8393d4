package domain

// AnalyticsEvent is one immutable usage fact emitted by a client.
//
// TsISO keeps the raw timestamp string the client sent. Clients occasionally
// emit malformed timestamps; such events are still stored and only drop out
// of time-window computations downstream.
type AnalyticsEvent struct {
	ID         string
	Event      string
	TsISO      string
	UserID     string
	SessionID  string
	App        string
	AppVersion string
	Props      map[string]any
}

// EventBatch is a caller-submitted group of events sharing optional
// provenance fields. It is rejected as a unit if empty or if any member
// event fails validation.
type EventBatch struct {
	Source     string
	App        string
	AppVersion string
	Events     []AnalyticsEvent
}
