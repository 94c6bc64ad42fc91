package calendar

import "time"

type PickerOptions struct {
	Months []string `json:"months"`
	Years  []int    `json:"years"`
}

// MonthYearOptions lists the direct-jump choices: all twelve months and a
// fixed ten-year window starting five years before now.
func MonthYearOptions(now time.Time) PickerOptions {
	opts := PickerOptions{
		Months: make([]string, 0, 12),
		Years:  make([]int, 0, 10),
	}

	for m := time.January; m <= time.December; m++ {
		opts.Months = append(opts.Months, m.String())
	}

	start := now.UTC().Year() - 5
	for i := 0; i < 10; i++ {
		opts.Years = append(opts.Years, start+i)
	}

	return opts
}

// LookbackSince subtracts a possibly fractional number of months from now.
// Whole months use calendar subtraction; the fractional remainder scales with
// the length of the month the cutoff lands in, not a fixed 30-day block.
func LookbackSince(now time.Time, months float64) time.Time {
	if months <= 0 {
		return time.Time{}
	}

	whole := int(months)
	frac := months - float64(whole)

	t := now.UTC().AddDate(0, -whole, 0)
	if frac > 0 {
		monthLen := time.Duration(DaysIn(t.Year(), t.Month())) * 24 * time.Hour
		t = t.Add(-time.Duration(frac * float64(monthLen)))
	}
	return t
}
