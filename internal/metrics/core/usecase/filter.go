package usecase

import (
	"time"

	eventdomain "analytics-api/internal/events/core/domain"
	"analytics-api/internal/metrics/core/domain"
)

const dayLayout = "2006-01-02"

// WindowResult is the filtered view of the event log for one query.
type WindowResult struct {
	Rows      []eventdomain.AnalyticsEvent
	FirstSeen map[string]time.Time
	From      *time.Time
	To        *time.Time
}

// ApplyWindow is a pure function of (all events, query). It derives the
// per-user FirstSeen map from the full log, then keeps the events that fall
// inside the window, match the event-name filter and satisfy the cohort
// selector. Events with unparsable timestamps never enter FirstSeen and never
// match a window. Bounds are applied literally: from > to just yields an
// empty result.
func ApplyWindow(events []eventdomain.AnalyticsEvent, q domain.WindowedQuery) WindowResult {
	from := parseBound(q.From, false)
	to := parseBound(q.To, true)

	firstSeen := make(map[string]time.Time)
	for _, e := range events {
		ts, ok := parseEventTime(e.TsISO)
		if !ok {
			continue
		}
		if seen, exists := firstSeen[e.UserID]; !exists || ts.Before(seen) {
			firstSeen[e.UserID] = ts
		}
	}

	nameFilter := makeNameFilter(q.Events)

	rows := make([]eventdomain.AnalyticsEvent, 0, len(events))
	for _, e := range events {
		ts, ok := parseEventTime(e.TsISO)
		if !ok {
			continue
		}
		if from != nil && ts.Before(*from) {
			continue
		}
		if to != nil && ts.After(*to) {
			continue
		}
		if nameFilter != nil && !nameFilter[e.Event] {
			continue
		}
		if !cohortMatches(q.Cohort, firstSeen, e.UserID, from, to) {
			continue
		}
		rows = append(rows, e)
	}

	return WindowResult{Rows: rows, FirstSeen: firstSeen, From: from, To: to}
}

// Window formats the parsed bounds for the response echo. Nanosecond
// precision keeps the echo faithful to the widened day-end bound.
func (r WindowResult) Window() domain.Window {
	var w domain.Window
	if r.From != nil {
		w.From = r.From.UTC().Format(time.RFC3339Nano)
	}
	if r.To != nil {
		w.To = r.To.UTC().Format(time.RFC3339Nano)
	}
	return w
}

// FirstSeenISO renders the FirstSeen map as user -> RFC 3339 instant.
func (r WindowResult) FirstSeenISO() map[string]string {
	out := make(map[string]string, len(r.FirstSeen))
	for user, ts := range r.FirstSeen {
		out[user] = ts.UTC().Format(time.RFC3339)
	}
	return out
}

func makeNameFilter(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	filter := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" || n == "all" {
			return nil
		}
		filter[n] = true
	}
	return filter
}

// cohortMatches classifies a user against the window by FirstSeen. "new"
// means FirstSeen falls inside the (possibly unbounded) window; "returning"
// is the negation. A user with no determinable FirstSeen fails both.
func cohortMatches(cohort domain.Cohort, firstSeen map[string]time.Time, userID string, from, to *time.Time) bool {
	if cohort == "" || cohort == domain.CohortAll {
		return true
	}

	seen, ok := firstSeen[userID]
	if !ok {
		return false
	}

	isNew := firstSeenInWindow(seen, from, to)
	if cohort == domain.CohortNew {
		return isNew
	}
	return !isNew
}

func firstSeenInWindow(seen time.Time, from, to *time.Time) bool {
	if from != nil && seen.Before(*from) {
		return false
	}
	if to != nil && seen.After(*to) {
		return false
	}
	return true
}

// parseBound parses a window bound. Bare calendar days are widened to the
// start or end of the day, matching what the dashboard sends for full-day
// windows. Unparsable bounds are treated as absent, not as errors.
func parseBound(value string, end bool) *time.Time {
	if value == "" {
		return nil
	}

	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		ts = ts.UTC()
		return &ts
	}

	if day, err := time.Parse(dayLayout, value); err == nil {
		ts := day.UTC()
		if end {
			ts = ts.Add(24*time.Hour - time.Nanosecond)
		}
		return &ts
	}

	return nil
}

func parseEventTime(value string) (time.Time, bool) {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts.UTC(), true
	}
	if ts, err := time.Parse(dayLayout, value); err == nil {
		return ts.UTC(), true
	}
	return time.Time{}, false
}
