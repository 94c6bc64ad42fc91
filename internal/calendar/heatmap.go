// Package calendar derives the two read-only calendar views from a day-bucket
// map: the 365-day rolling heatmap and the navigable month grid. All date
// arithmetic is UTC.
package calendar

import "time"

// HeatmapDays is the rolling window length, ending today inclusive.
const HeatmapDays = 365

type HeatmapCell struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// IntensityLevel maps a commit count onto the 5-step heatmap scale.
func IntensityLevel(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count <= 7:
		return 3
	default:
		return 4
	}
}

// Heatmap produces the last 365 days ending today (inclusive), oldest first,
// chunked week-major into columns of 7. Days absent from the bucket map
// render as count 0.
func Heatmap(buckets map[string]int, today time.Time) [][]HeatmapCell {
	day := today.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	cells := make([]HeatmapCell, 0, HeatmapDays)
	for i := HeatmapDays - 1; i >= 0; i-- {
		d := day.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		count := buckets[key]
		cells = append(cells, HeatmapCell{Day: key, Count: count, Level: IntensityLevel(count)})
	}

	var weeks [][]HeatmapCell
	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		weeks = append(weeks, cells[i:end])
	}
	return weeks
}
