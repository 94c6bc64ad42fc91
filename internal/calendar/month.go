package calendar

import "time"

type MonthCell struct {
	// Day is the day of month; 0 marks a blank cell outside the month.
	Day      int    `json:"day"`
	Key      string `json:"key,omitempty"`
	Count    int    `json:"count"`
	Level    int    `json:"level"`
	Selected bool   `json:"selected"`
}

type MonthGrid struct {
	Year     int           `json:"year"`
	Month    time.Month    `json:"month"`
	Weekdays []string      `json:"weekdays"`
	Rows     [][]MonthCell `json:"rows"`
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// BuildMonthGrid lays out the selected date's month as Sunday-first rows of
// seven. Rows stop after the month's last day, so a month yields between 4
// and 6 rows. The selected day is flagged regardless of its count.
func BuildMonthGrid(buckets map[string]int, selected time.Time) MonthGrid {
	selected = selected.UTC()
	year, month := selected.Year(), selected.Month()

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := int(first.Weekday())
	daysInMonth := DaysIn(year, month)
	selectedKey := selected.Format("2006-01-02")

	grid := MonthGrid{Year: year, Month: month, Weekdays: weekdays}

	day := 1
	for row := 0; row < 6 && day <= daysInMonth; row++ {
		cells := make([]MonthCell, 7)
		for col := 0; col < 7; col++ {
			if (row == 0 && col < firstWeekday) || day > daysInMonth {
				continue
			}
			key := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
			count := buckets[key]
			cells[col] = MonthCell{
				Day:      day,
				Key:      key,
				Count:    count,
				Level:    IntensityLevel(count),
				Selected: key == selectedKey,
			}
			day++
		}
		grid.Rows = append(grid.Rows, cells)
	}

	return grid
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(year int, month time.Month, day int) int {
	if max := DaysIn(year, month); day > max {
		return max
	}
	return day
}

// AddMonths moves a date by delta months, clamping the day-of-month to the
// last valid day of the target month (Jan 31 minus one month is Dec 31, plus
// one month is Feb 28/29).
func AddMonths(t time.Time, delta int) time.Time {
	t = t.UTC()
	// Normalize via the first of the month so AddDate cannot overflow into
	// the following month.
	anchor := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	day := clampDay(anchor.Year(), anchor.Month(), t.Day())
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC)
}

// WithMonth jumps to the given month of the same year, clamping the day.
func WithMonth(t time.Time, month time.Month) time.Time {
	t = t.UTC()
	day := clampDay(t.Year(), month, t.Day())
	return time.Date(t.Year(), month, day, 0, 0, 0, 0, time.UTC)
}

// WithYear jumps to the given year keeping month, clamping the day (Feb 29).
func WithYear(t time.Time, year int) time.Time {
	t = t.UTC()
	day := clampDay(year, t.Month(), t.Day())
	return time.Date(year, t.Month(), day, 0, 0, 0, 0, time.UTC)
}
