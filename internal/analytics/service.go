// Package analytics keeps a bounded history of search and autocomplete
// queries and summarizes it for the dashboard endpoint.
package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gcbaptista/termindex/internal/autocomplete"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/model"
	"github.com/gcbaptista/termindex/services"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	topQueries      = 5
)

// StatsSource reports the size of the served index and vocabulary.
type StatsSource interface {
	IndexStats() services.IndexStats
	AutocompleteStats() autocomplete.Stats
}

// Service implements query tracking and reporting. The history lives in
// memory only and starts empty on every run.
type Service struct {
	mutex  sync.RWMutex
	events []model.QueryEvent
	stats  StatsSource
	now    func() time.Time
	log    *log.Logger
}

// NewService creates a new analytics service. stats may be nil.
func NewService(stats StatsSource, l *log.Logger) *Service {
	if l == nil {
		l = logger.New("analytics")
	}
	return &Service{
		events: make([]model.QueryEvent, 0),
		stats:  stats,
		now:    time.Now,
		log:    l,
	}
}

// Track records a query event. A zero timestamp is set to the current time.
func (s *Service) Track(event model.QueryEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
		s.log.Debug("analytics history trimmed", "kept", maxEventsToKeep)
	}
}

// Reset drops the query history.
func (s *Service) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.events = make([]model.QueryEvent, 0)
}

// Len returns the number of events currently kept.
func (s *Service) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData summarizes the last 24 hours of queries and the last
// week of popular ones.
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	last24h := filterEventsByTimeRange(s.events, yesterday, now)
	prev24h := filterEventsByTimeRange(s.events, yesterday.Add(-24*time.Hour), yesterday)
	weekEvents := filterEventsByTimeRange(s.events, lastWeek, now)

	searches := filterEventsByKind(weekEvents, model.QueryKindSearch)
	suggestions := filterEventsByKind(weekEvents, model.QueryKindSuggest)

	dashboard := model.AnalyticsDashboard{
		TotalQueries:             len(last24h),
		QueriesChangePercent:     calculateChangePercent(len(last24h), len(prev24h)),
		AvgResponseTime:          calculateAvgResponseTime(last24h),
		ResponseTimeChange:       calculateResponseTimeChange(last24h, prev24h),
		ZeroResultRate:           zeroResultRate(last24h),
		QueryPerformance24h:      getHourlyPerformance(last24h),
		PopularSearches:          getPopularQueries(searches, yesterday, false),
		PopularPrefixes:          getPopularQueries(suggestions, yesterday, false),
		ZeroResultQueries:        getPopularQueries(weekEvents, yesterday, true),
		ResponseTimeDistribution: getResponseTimeDistribution(last24h),
		QueryKinds:               getQueryKindStats(last24h),
	}

	if s.stats != nil {
		indexStats := s.stats.IndexStats()
		dashboard.IndexedDocuments = indexStats.Documents
		dashboard.IndexedTerms = indexStats.Terms
		dashboard.VocabularyWords = s.stats.AutocompleteStats().Words
	}

	return dashboard
}

// filterEventsByTimeRange returns events in (start, end]
func filterEventsByTimeRange(events []model.QueryEvent, start, end time.Time) []model.QueryEvent {
	var filtered []model.QueryEvent
	for _, event := range events {
		if event.Timestamp.After(start) && !event.Timestamp.After(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func filterEventsByKind(events []model.QueryEvent, kind model.QueryKind) []model.QueryEvent {
	var filtered []model.QueryEvent
	for _, event := range events {
		if event.Kind == kind {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

// calculateAvgResponseTime calculates average response time for events in microseconds
func calculateAvgResponseTime(events []model.QueryEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Microseconds()
}

// calculateResponseTimeChange calculates response time change trend
func calculateResponseTimeChange(current, previous []model.QueryEvent) string {
	currentAvg := calculateAvgResponseTime(current)
	previousAvg := calculateAvgResponseTime(previous)

	if previousAvg == 0 {
		return "stable"
	}

	change := float64(currentAvg-previousAvg) / float64(previousAvg)
	if change > 0.1 {
		return "up"
	} else if change < -0.1 {
		return "down"
	}
	return "stable"
}

func zeroResultRate(events []model.QueryEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	zero := 0
	for _, event := range events {
		if event.ResultCount == 0 {
			zero++
		}
	}
	return float64(zero) / float64(len(events))
}

// getHourlyPerformance returns per-hour query counts and latency
func getHourlyPerformance(events []model.QueryEvent) []model.QueryPerformanceHourly {
	hourlyData := make(map[int][]model.QueryEvent)

	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.QueryPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		events := hourlyData[hour]
		performance = append(performance, model.QueryPerformanceHourly{
			Hour:            hour,
			QueryCount:      len(events),
			AvgResponseTime: calculateAvgResponseTime(events),
		})
	}

	return performance
}

// getPopularQueries returns the most repeated non-empty queries. With
// zeroOnly set, only queries that found nothing are counted. The trend
// compares the last day against the rest of the window.
func getPopularQueries(events []model.QueryEvent, recent time.Time, zeroOnly bool) []model.PopularQuery {
	type queryCount struct {
		query  string
		count  int
		recent int
	}

	counts := make(map[string]*queryCount)
	for _, event := range events {
		if event.Query == "" || (zeroOnly && event.ResultCount != 0) {
			continue
		}
		qc, ok := counts[event.Query]
		if !ok {
			qc = &queryCount{query: event.Query}
			counts[event.Query] = qc
		}
		qc.count++
		if event.Timestamp.After(recent) {
			qc.recent++
		}
	}

	queries := make([]*queryCount, 0, len(counts))
	for _, qc := range counts {
		queries = append(queries, qc)
	}

	// Sort by count descending, then query for a stable order
	sort.Slice(queries, func(i, j int) bool {
		if queries[i].count != queries[j].count {
			return queries[i].count > queries[j].count
		}
		return queries[i].query < queries[j].query
	})

	popular := make([]model.PopularQuery, 0, topQueries)
	for i, qc := range queries {
		if i >= topQueries {
			break
		}
		popular = append(popular, model.PopularQuery{
			Query:       qc.query,
			Count:       qc.count,
			TrendChange: trend(qc.recent, qc.count-qc.recent),
		})
	}

	return popular
}

func trend(recent, older int) string {
	switch {
	case recent > older:
		return "up"
	case recent < older:
		return "down"
	default:
		return "stable"
	}
}

// getResponseTimeDistribution returns response time distribution
func getResponseTimeDistribution(events []model.QueryEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch {
		case event.ResponseTime <= time.Millisecond:
			dist.Bucket0To1ms++
		case event.ResponseTime <= 5*time.Millisecond:
			dist.Bucket1To5ms++
		case event.ResponseTime <= 25*time.Millisecond:
			dist.Bucket5To25ms++
		default:
			dist.Bucket25msPlus++
		}
	}

	// Calculate percentages
	dist.Percentage0To1 = float64(dist.Bucket0To1ms) / float64(total) * 100
	dist.Percentage1To5 = float64(dist.Bucket1To5ms) / float64(total) * 100
	dist.Percentage5To25 = float64(dist.Bucket5To25ms) / float64(total) * 100
	dist.Percentage25Plus = float64(dist.Bucket25msPlus) / float64(total) * 100

	return dist
}

func getQueryKindStats(events []model.QueryEvent) model.QueryKindStats {
	stats := model.QueryKindStats{}
	for _, event := range events {
		switch event.Kind {
		case model.QueryKindSearch:
			stats.Search++
		case model.QueryKindSuggest:
			stats.Suggest++
		}
	}
	return stats
}
