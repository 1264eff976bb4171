// Package stats keeps aggregate analysis statistics in memory, bucketed by
// month. No URLs or client addresses are retained.
package stats

import (
	"slices"
	"sync"
	"time"
)

const monthLayout = "2006-01"

// MonthlyStats holds the counters of one calendar month.
type MonthlyStats struct {
	Analyses      int       `json:"analyses"`
	Errors        int       `json:"errors"`
	TotalLoadTime float64   `json:"-"`
	Scored        int       `json:"-"`
	SEOScoreSum   int       `json:"-"`
	GeoScoreSum   int       `json:"-"`
	LastUpdated   time.Time `json:"last_updated"`
}

// AverageLoadTime is the mean analysis time in milliseconds.
func (m MonthlyStats) AverageLoadTime() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return m.TotalLoadTime / float64(m.Analyses)
}

// ErrorRate is the share of failed analyses as a percentage.
func (m MonthlyStats) ErrorRate() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return float64(m.Errors) / float64(m.Analyses) * 100
}

// AverageScores returns the mean SEO and GEO scores of successful analyses.
func (m MonthlyStats) AverageScores() (seo, geo float64) {
	if m.Scored == 0 {
		return 0, 0
	}
	return float64(m.SEOScoreSum) / float64(m.Scored), float64(m.GeoScoreSum) / float64(m.Scored)
}

// Storage holds the monthly buckets. It satisfies the analyzer's recorder
// so every analysis outcome lands here.
type Storage struct {
	mutex sync.RWMutex
	stats map[string]*MonthlyStats // key: "YYYY-MM"
	now   func() time.Time
}

// NewStorage creates an empty statistics store.
func NewStorage() *Storage {
	return &Storage{
		stats: make(map[string]*MonthlyStats),
		now:   time.Now,
	}
}

// current returns the bucket for this month. Callers hold the write lock.
func (s *Storage) current() *MonthlyStats {
	month := s.now().Format(monthLayout)
	m, ok := s.stats[month]
	if !ok {
		m = &MonthlyStats{}
		s.stats[month] = m
	}
	m.LastUpdated = s.now()
	return m
}

// RecordAnalysis counts one analysis and its duration.
func (s *Storage) RecordAnalysis(success bool, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.current()
	m.Analyses++
	if !success {
		m.Errors++
	}
	m.TotalLoadTime += float64(duration.Milliseconds())
}

// RecordFetchFailure is a no-op; failure kinds are only exported as metrics.
func (s *Storage) RecordFetchFailure(string) {}

// RecordScores adds the scores of a successful analysis to the averages.
func (s *Storage) RecordScores(seo, geo int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.current()
	m.Scored++
	m.SEOScoreSum += seo
	m.GeoScoreSum += geo
}

// GetCurrentStats returns statistics for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	stats, _ := s.GetMonthlyStats(s.now().Format(monthLayout))
	return stats
}

// GetMonthlyStats returns statistics for a "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns every month with statistics, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	slices.Sort(months)
	slices.Reverse(months)
	return months
}

// Cleanup drops every month older than the last retainMonths, the current
// month included.
func (s *Storage) Cleanup(retainMonths int) int {
	keep := make(map[string]bool, retainMonths)
	now := s.now()
	for i := range retainMonths {
		// Day 1 so that stepping back from the 31st never lands in the same month.
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		keep[month.Format(monthLayout)] = true
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for key := range s.stats {
		if !keep[key] {
			delete(s.stats, key)
			removed++
		}
	}
	return removed
}

// Summary is the payload of the statistics endpoint. The monthly
// breakdown is only included in development mode.
func (s *Storage) Summary(devMode bool) map[string]any {
	cur := s.GetCurrentStats()
	seo, geo := cur.AverageScores()
	out := map[string]any{
		"totalRequests":   cur.Analyses,
		"errorRate":       cur.ErrorRate(),
		"averageLoadTime": cur.AverageLoadTime(),
		"averageSeoScore": seo,
		"averageGeoScore": geo,
	}
	if !devMode {
		return out
	}

	months := make(map[string]MonthlyStats)
	for _, month := range s.GetAllMonths() {
		months[month], _ = s.GetMonthlyStats(month)
	}
	out["months"] = months
	return out
}
