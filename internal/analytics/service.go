package analytics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/recipe-search/model"
)

const (
	// DefaultCapacity is the number of most recent events retained.
	DefaultCapacity = 10000
	popularLimit    = 10
)

// Service keeps a bounded log of search events and summarizes it.
// Once full, each new event overwrites the oldest one.
type Service struct {
	mutex        sync.RWMutex
	events       []model.SearchEvent
	next         int // position of the next write once the ring is full
	capacity     int
	dataFilePath string
	now          func() time.Time
}

// NewService creates an analytics service. When dataFilePath is set, previously
// saved events are loaded from it and Save writes them back.
func NewService(capacity int, dataFilePath string) *Service {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	service := &Service{
		events:       make([]model.SearchEvent, 0, min(capacity, 1024)),
		capacity:     capacity,
		dataFilePath: dataFilePath,
		now:          time.Now,
	}

	if dataFilePath != "" {
		if err := service.loadData(); err != nil {
			slog.Warn("failed to load analytics data", "path", dataFilePath, "error", err)
		}
	}

	return service
}

// TrackSearchEvent records a new search event.
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.append(event)
}

func (s *Service) append(event model.SearchEvent) {
	if len(s.events) < s.capacity {
		s.events = append(s.events, event)
		return
	}
	s.events[s.next] = event
	s.next = (s.next + 1) % s.capacity
}

// Events returns the retained events, oldest first.
func (s *Service) Events() []model.SearchEvent {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.ordered()
}

func (s *Service) ordered() []model.SearchEvent {
	out := make([]model.SearchEvent, 0, len(s.events))
	out = append(out, s.events[s.next:]...)
	return append(out, s.events[:s.next]...)
}

// Summary aggregates the retained events.
func (s *Service) Summary() model.AnalyticsSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := model.AnalyticsSummary{
		TotalSearches:      len(s.events),
		SearchesByStrategy: make(map[string]int),
		PopularSearches:    []model.PopularSearch{},
	}
	if len(s.events) == 0 {
		return summary
	}

	var totalTime time.Duration
	queryCounts := make(map[string]int)
	oldest := s.events[0].Timestamp

	for _, event := range s.events {
		summary.SearchesByStrategy[event.Strategy]++
		totalTime += event.ResponseTime
		if event.ResultCount == 0 {
			summary.ZeroResultSearches++
		}
		if query := normalizeQuery(event.Query); query != "" {
			queryCounts[query]++
		}
		if event.Timestamp.Before(oldest) {
			oldest = event.Timestamp
		}
	}

	summary.AvgResponseTimeMs = float64(totalTime) / float64(len(s.events)) / float64(time.Millisecond)
	summary.PopularSearches = popularSearches(queryCounts, popularLimit)
	summary.Since = &oldest
	return summary
}

// popularSearches returns the most frequent queries, ties broken by query text.
func popularSearches(queryCounts map[string]int, limit int) []model.PopularSearch {
	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}

	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	data, err := os.ReadFile(s.dataFilePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read analytics file: %w", err)
	}

	var events []model.SearchEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}

	for _, event := range events {
		s.append(event)
	}
	return nil
}

// Save writes the retained events to the data file, if one is configured.
func (s *Service) Save() error {
	if s.dataFilePath == "" {
		return nil
	}

	s.mutex.RLock()
	data, err := json.MarshalIndent(s.ordered(), "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create analytics directory: %w", err)
	}
	if err := os.WriteFile(s.dataFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write analytics file: %w", err)
	}
	return nil
}
