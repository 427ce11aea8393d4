package domain

type Cohort string

const (
	CohortAll       Cohort = "all"
	CohortNew       Cohort = "new"
	CohortReturning Cohort = "returning"
)

// WindowedQuery is built per request and never persisted. Empty From/To mean
// unbounded; a nil Events set means no event-name filtering.
type WindowedQuery struct {
	From   string
	To     string
	Events []string
	Cohort Cohort
}

// Window echoes the parsed bounds back to the caller. Empty string means the
// bound was absent or unparsable.
type Window struct {
	From string
	To   string
}

type DailyUsageRow struct {
	Day    string
	Events int
	DAU    int
}

type FunnelStep struct {
	Step            string
	Count           int
	PctFromPrevious float64
	PctFromStart    float64
}

type GenerationStats struct {
	TotalGenerations int
	SuccessRatePct   float64
	AvgLatencyMs     int
}

type CohortSummary struct {
	TotalUsers     int
	NewUsers       int
	ReturningUsers int
}

type FeatureAdoptionRow struct {
	Feature     string
	Users       int
	AdoptionPct float64
}

type UserRow struct {
	UserID      string
	FirstSeen   string // calendar day, "-" when unknown
	Events      int
	Prompts     int
	Generations int
	Drags       int
	Replays     int
}

type PromptHashRow struct {
	Hash  string
	Count int
}

type PromptLengthBucket struct {
	Bucket string
	Count  int
}

type PromptStats struct {
	Hashes        []PromptHashRow
	LengthBuckets []PromptLengthBucket
}

type OverviewTotals struct {
	Users                  int
	Events                 int
	AvgGenerationLatencyMs int
}

type Overview struct {
	Window      Window
	Totals      OverviewTotals
	Generation  GenerationStats
	Cohorts     CohortSummary
	EventCounts map[string]int
}
