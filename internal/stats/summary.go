package stats

import (
	"github.com/montanaflynn/stats"
)

type Summary struct {
	TotalCommits    int     `json:"total_commits"`
	ActiveDays      int     `json:"active_days"`
	BusiestDay      string  `json:"busiest_day,omitempty"`
	BusiestDayCount int     `json:"busiest_day_count"`
	MeanPerDay      float64 `json:"mean_per_active_day"`
	StdDevPerDay    float64 `json:"stddev_per_active_day"`
}

// Summarize condenses a day-bucket map into headline activity figures.
// Mean and standard deviation run over active days only; a day with zero
// commits is absent from the map by construction.
func Summarize(buckets map[string]int) Summary {
	s := Summary{ActiveDays: len(buckets)}
	if len(buckets) == 0 {
		return s
	}

	counts := make([]float64, 0, len(buckets))
	for day, count := range buckets {
		s.TotalCommits += count
		counts = append(counts, float64(count))
		if count > s.BusiestDayCount || (count == s.BusiestDayCount && day < s.BusiestDay) {
			s.BusiestDay = day
			s.BusiestDayCount = count
		}
	}

	if mean, err := stats.Mean(counts); err == nil {
		s.MeanPerDay = mean
	}
	if dev, err := stats.StandardDeviation(counts); err == nil {
		s.StdDevPerDay = dev
	}

	return s
}
