package audit

import "rnaudit/pkg/models"

// Stats summarizes one audit run.
type Stats struct {
	Total    int
	Failures int
	Carriers map[string]int
}

// Summarize computes run-level statistics over the finished records.
// The carrier distribution counts every record exactly once.
func Summarize(records []models.RoutingRecord) Stats {
	stats := Stats{Carriers: make(map[string]int)}
	for _, record := range records {
		stats.Total++
		if record.Verdict == models.VerdictFailed {
			stats.Failures++
		}
		stats.Carriers[record.Carrier]++
	}
	return stats
}

// SuccessRate returns the percentage of passed records, 0 for an empty run.
func (s Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Total-s.Failures) / float64(s.Total) * 100
}
