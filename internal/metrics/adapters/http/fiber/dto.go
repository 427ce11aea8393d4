package fiber

type WindowResponse struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type EventRowResponse struct {
	Event      string         `json:"event"`
	TsISO      string         `json:"ts_iso"`
	UserID     string         `json:"user_id"`
	SessionID  string         `json:"session_id"`
	App        string         `json:"app"`
	AppVersion string         `json:"app_version"`
	Props      map[string]any `json:"props,omitempty"`
}

type EventsResponse struct {
	OK              bool               `json:"ok"`
	Window          WindowResponse     `json:"window"`
	Total           int                `json:"total"`
	FirstSeenByUser map[string]string  `json:"first_seen_by_user"`
	Rows            []EventRowResponse `json:"rows"`
}

type GenerationResponse struct {
	TotalGenerations int     `json:"total_generations"`
	SuccessRatePct   float64 `json:"success_rate_pct"`
	AvgLatencyMs     int     `json:"avg_latency_ms"`
}

type CohortsResponse struct {
	TotalUsers     int `json:"total_users"`
	NewUsers       int `json:"new_users"`
	ReturningUsers int `json:"returning_users"`
}

type OverviewTotalsResponse struct {
	Users                  int `json:"users"`
	Events                 int `json:"events"`
	AvgGenerationLatencyMs int `json:"avg_generation_latency_ms"`
}

type OverviewResponse struct {
	OK          bool                   `json:"ok"`
	Window      WindowResponse         `json:"window"`
	Totals      OverviewTotalsResponse `json:"totals"`
	Generation  GenerationResponse     `json:"generation"`
	Cohorts     CohortsResponse        `json:"cohorts"`
	EventCounts map[string]int         `json:"event_counts"`
}

type DailyRowResponse struct {
	Day    string `json:"day"`
	Events int    `json:"events"`
	DAU    int    `json:"dau"`
}

type DailyResponse struct {
	OK   bool               `json:"ok"`
	Rows []DailyRowResponse `json:"rows"`
}

type FunnelStepResponse struct {
	Step            string  `json:"step"`
	Count           int     `json:"count"`
	PctFromPrevious float64 `json:"pct_from_previous"`
	PctFromStart    float64 `json:"pct_from_start"`
}

type FunnelResponse struct {
	OK    bool                 `json:"ok"`
	Steps []FunnelStepResponse `json:"steps"`
}

type FeatureRowResponse struct {
	Feature     string  `json:"feature"`
	Users       int     `json:"users"`
	AdoptionPct float64 `json:"adoption_pct"`
}

type FeaturesResponse struct {
	OK   bool                 `json:"ok"`
	Rows []FeatureRowResponse `json:"rows"`
}

type UserRowResponse struct {
	UserID      string `json:"user_id"`
	FirstSeen   string `json:"first_seen"`
	Events      int    `json:"events"`
	Prompts     int    `json:"prompts"`
	Generations int    `json:"generations"`
	Drags       int    `json:"drags"`
	Replays     int    `json:"replays"`
}

type UsersResponse struct {
	OK   bool              `json:"ok"`
	Rows []UserRowResponse `json:"rows"`
}

type PromptHashResponse struct {
	Hash  string `json:"hash"`
	Count int    `json:"count"`
}

type PromptLengthBucketResponse struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

type PromptsResponse struct {
	OK            bool                         `json:"ok"`
	Hashes        []PromptHashResponse         `json:"hashes"`
	LengthBuckets []PromptLengthBucketResponse `json:"length_buckets"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error" example:"store_error"`
}
