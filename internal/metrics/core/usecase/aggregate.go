package usecase

import (
	"math"
	"sort"
	"strconv"
	"time"

	eventdomain "analytics-api/internal/events/core/domain"
	"analytics-api/internal/metrics/core/domain"
)

// FunnelSteps is the fixed conversion path, in order.
var FunnelSteps = []string{"prompt_submitted", "generation_completed", "midi_dragged"}

// TrackedFeatures are the event names counted for feature adoption.
var TrackedFeatures = []string{"prompt_submitted", "generation_completed", "midi_dragged", "midi_replayed"}

const promptHashLimit = 12

// UniqueUsers counts distinct user ids.
func UniqueUsers(rows []eventdomain.AnalyticsEvent) int {
	users := make(map[string]struct{}, len(rows))
	for _, e := range rows {
		users[e.UserID] = struct{}{}
	}
	return len(users)
}

// EventCounts maps event name to occurrence count. The sum of all values
// always equals len(rows).
func EventCounts(rows []eventdomain.AnalyticsEvent) map[string]int {
	counts := make(map[string]int)
	for _, e := range rows {
		counts[e.Event]++
	}
	return counts
}

// Generation derives success/latency statistics from completed and failed
// generation events. Latency samples come from props.latency_ms; missing or
// non-positive values are excluded from both sum and count.
func Generation(rows []eventdomain.AnalyticsEvent) domain.GenerationStats {
	var (
		completed    int
		failed       int
		latencySum   float64
		latencyCount int
	)

	for _, e := range rows {
		switch e.Event {
		case "generation_completed":
			completed++
			if latency, ok := positiveNumberProp(e.Props, "latency_ms"); ok {
				latencySum += latency
				latencyCount++
			}
		case "generation_failed":
			failed++
		}
	}

	stats := domain.GenerationStats{TotalGenerations: completed}

	if attempts := completed + failed; attempts > 0 {
		stats.SuccessRatePct = pct1(completed, attempts)
	}
	if latencyCount > 0 {
		stats.AvgLatencyMs = int(math.Round(latencySum / float64(latencyCount)))
	}

	return stats
}

// DailyUsage groups rows by the calendar-day prefix of ts_iso, ascending.
func DailyUsage(rows []eventdomain.AnalyticsEvent) []domain.DailyUsageRow {
	type bucket struct {
		users  map[string]struct{}
		events int
	}

	byDay := make(map[string]*bucket)
	for _, e := range rows {
		day := dayPrefix(e.TsISO)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{users: make(map[string]struct{})}
			byDay[day] = b
		}
		b.users[e.UserID] = struct{}{}
		b.events++
	}

	out := make([]domain.DailyUsageRow, 0, len(byDay))
	for day, b := range byDay {
		out = append(out, domain.DailyUsageRow{Day: day, Events: b.events, DAU: len(b.users)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })

	return out
}

// Funnel computes conversion over the fixed step list. Step 0 always reports
// pctFromPrevious 100; a zero previous step also reports 100 (no meaningful
// drop-off to measure). pctFromStart is 0 whenever the first step is empty.
func Funnel(rows []eventdomain.AnalyticsEvent) []domain.FunnelStep {
	counts := EventCounts(rows)
	start := counts[FunnelSteps[0]]

	steps := make([]domain.FunnelStep, 0, len(FunnelSteps))
	for i, name := range FunnelSteps {
		count := counts[name]

		step := domain.FunnelStep{Step: name, Count: count, PctFromPrevious: 100}
		if i > 0 {
			if previous := counts[FunnelSteps[i-1]]; previous > 0 {
				step.PctFromPrevious = pct1(count, previous)
			}
		}
		if start > 0 {
			step.PctFromStart = pct1(count, start)
		}

		steps = append(steps, step)
	}

	return steps
}

// Cohorts splits the users active in the window into new vs. returning by
// FirstSeen. Users with no determinable FirstSeen only count toward the
// total, never toward either cohort.
func Cohorts(rows []eventdomain.AnalyticsEvent, firstSeen map[string]time.Time, from, to *time.Time) domain.CohortSummary {
	users := make(map[string]struct{}, len(rows))
	for _, e := range rows {
		users[e.UserID] = struct{}{}
	}

	summary := domain.CohortSummary{TotalUsers: len(users)}
	for user := range users {
		seen, ok := firstSeen[user]
		if !ok {
			continue
		}
		if firstSeenInWindow(seen, from, to) {
			summary.NewUsers++
		} else {
			summary.ReturningUsers++
		}
	}

	return summary
}

// FeatureAdoption reports distinct users per tracked feature against all
// users seen in the window.
func FeatureAdoption(rows []eventdomain.AnalyticsEvent) []domain.FeatureAdoptionRow {
	usersByFeature := make(map[string]map[string]struct{}, len(TrackedFeatures))
	for _, feature := range TrackedFeatures {
		usersByFeature[feature] = make(map[string]struct{})
	}

	allUsers := make(map[string]struct{})
	for _, e := range rows {
		allUsers[e.UserID] = struct{}{}
		if users, ok := usersByFeature[e.Event]; ok {
			users[e.UserID] = struct{}{}
		}
	}

	total := len(allUsers)
	if total == 0 {
		total = 1
	}

	out := make([]domain.FeatureAdoptionRow, 0, len(TrackedFeatures))
	for _, feature := range TrackedFeatures {
		users := len(usersByFeature[feature])
		out = append(out, domain.FeatureAdoptionRow{
			Feature:     feature,
			Users:       users,
			AdoptionPct: pct1(users, total),
		})
	}

	return out
}

// UserRows summarizes per-user activity, most active first.
func UserRows(rows []eventdomain.AnalyticsEvent, firstSeen map[string]time.Time) []domain.UserRow {
	byUser := make(map[string]*domain.UserRow)
	for _, e := range rows {
		row, ok := byUser[e.UserID]
		if !ok {
			row = &domain.UserRow{UserID: e.UserID, FirstSeen: "-"}
			if seen, exists := firstSeen[e.UserID]; exists {
				row.FirstSeen = seen.UTC().Format(dayLayout)
			}
			byUser[e.UserID] = row
		}

		row.Events++
		switch e.Event {
		case "prompt_submitted":
			row.Prompts++
		case "generation_completed":
			row.Generations++
		case "midi_dragged":
			row.Drags++
		case "midi_replayed":
			row.Replays++
		}
	}

	out := make([]domain.UserRow, 0, len(byUser))
	for _, row := range byUser {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Events != out[j].Events {
			return out[i].Events > out[j].Events
		}
		return out[i].UserID < out[j].UserID
	})

	return out
}

// PromptStats breaks submitted prompts down by hash (top entries, most
// frequent first) and by length bucket.
func PromptStats(rows []eventdomain.AnalyticsEvent) domain.PromptStats {
	hashCounts := make(map[string]int)
	buckets := []domain.PromptLengthBucket{
		{Bucket: "0-20"},
		{Bucket: "21-40"},
		{Bucket: "41-80"},
		{Bucket: "81+"},
	}

	for _, e := range rows {
		if e.Event != "prompt_submitted" {
			continue
		}

		hash := stringProp(e.Props, "prompt_hash64")
		if hash == "" {
			hash = "unknown"
		}
		hashCounts[hash]++

		length, ok := positiveNumberProp(e.Props, "prompt_length")
		if !ok {
			continue
		}
		switch {
		case length <= 20:
			buckets[0].Count++
		case length <= 40:
			buckets[1].Count++
		case length <= 80:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}

	hashes := make([]domain.PromptHashRow, 0, len(hashCounts))
	for hash, count := range hashCounts {
		hashes = append(hashes, domain.PromptHashRow{Hash: hash, Count: count})
	}
	sort.Slice(hashes, func(i, j int) bool {
		if hashes[i].Count != hashes[j].Count {
			return hashes[i].Count > hashes[j].Count
		}
		return hashes[i].Hash < hashes[j].Hash
	})
	if len(hashes) > promptHashLimit {
		hashes = hashes[:promptHashLimit]
	}

	return domain.PromptStats{Hashes: hashes, LengthBuckets: buckets}
}

// pct1 is percentage rounded to one decimal place.
func pct1(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

func dayPrefix(tsISO string) string {
	if len(tsISO) < 10 {
		return tsISO
	}
	return tsISO[:10]
}

// positiveNumberProp extracts a finite, positive number from the open props
// map. Caller-supplied property types are never trusted.
func positiveNumberProp(props map[string]any, key string) (float64, bool) {
	raw, ok := props[key]
	if !ok {
		return 0, false
	}

	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	default:
		return 0, false
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, false
	}
	return value, true
}

func stringProp(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
