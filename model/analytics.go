package model

import "time"

// QueryKind distinguishes the two read paths tracked by analytics.
type QueryKind string

const (
	QueryKindSearch  QueryKind = "search"
	QueryKindSuggest QueryKind = "suggest"
)

// QueryEvent represents a single search or autocomplete query
type QueryEvent struct {
	Kind         QueryKind     `json:"kind"`
	Query        string        `json:"query"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularQuery represents aggregated data for a repeated query
type PopularQuery struct {
	Query       string `json:"query"`
	Count       int    `json:"count"`
	TrendChange string `json:"trend_change,omitempty"` // "up", "down", "stable"
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To1ms     int     `json:"bucket_0_1ms"`
	Bucket1To5ms     int     `json:"bucket_1_5ms"`
	Bucket5To25ms    int     `json:"bucket_5_25ms"`
	Bucket25msPlus   int     `json:"bucket_25ms_plus"`
	Percentage0To1   float64 `json:"percentage_0_1"`
	Percentage1To5   float64 `json:"percentage_1_5"`
	Percentage5To25  float64 `json:"percentage_5_25"`
	Percentage25Plus float64 `json:"percentage_25_plus"`
}

// QueryKindStats counts queries per kind
type QueryKindStats struct {
	Search  int `json:"search"`
	Suggest int `json:"suggest"`
}

// QueryPerformanceHourly represents hourly query performance data
type QueryPerformanceHourly struct {
	Hour            int   `json:"hour"`
	QueryCount      int   `json:"query_count"`
	AvgResponseTime int64 `json:"avg_response_time"` // in microseconds
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics
	TotalQueries         int     `json:"total_queries"`
	QueriesChangePercent float64 `json:"queries_change_percent"`
	AvgResponseTime      int64   `json:"avg_response_time"` // in microseconds
	ResponseTimeChange   string  `json:"response_time_change"`
	ZeroResultRate       float64 `json:"zero_result_rate"`
	IndexedDocuments     int     `json:"indexed_documents"`
	IndexedTerms         int     `json:"indexed_terms"`
	VocabularyWords      int     `json:"vocabulary_words"`

	// Detailed analytics
	QueryPerformance24h      []QueryPerformanceHourly `json:"query_performance_24h"`
	PopularSearches          []PopularQuery           `json:"popular_searches"`
	PopularPrefixes          []PopularQuery           `json:"popular_prefixes"`
	ZeroResultQueries        []PopularQuery           `json:"zero_result_queries"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
	QueryKinds               QueryKindStats           `json:"query_kinds"`
}
