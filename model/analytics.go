package model

import "time"

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	Query        string        `json:"query"`
	Strategy     string        `json:"strategy"` // normal, simple or healthy
	ResultCount  int           `json:"result_count"`
	ResponseTime time.Duration `json:"response_time"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for a popular query
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// AnalyticsSummary aggregates the retained search events
type AnalyticsSummary struct {
	TotalSearches      int             `json:"total_searches"`
	SearchesByStrategy map[string]int  `json:"searches_by_strategy"`
	PopularSearches    []PopularSearch `json:"popular_searches"`
	AvgResponseTimeMs  float64         `json:"avg_response_time_ms"`
	ZeroResultSearches int             `json:"zero_result_searches"`
	Since              *time.Time      `json:"since,omitempty"` // timestamp of the oldest retained event
}
