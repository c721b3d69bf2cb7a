package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	minutesInDay           = 1440
	minutesInAlmostTwoDays = 2520
	minutesInMonth         = 43200
	minutesInTwoMonths     = 86400
)

// CountdownText describes the distance between end and now in words, e.g.
// "2 days", "about 2 months" or "less than a minute". The result is the same
// whether end lies before or after now.
func CountdownText(end, now time.Time) string {
	earlier, later := now, end
	if later.Before(earlier) {
		earlier, later = later, earlier
	}

	seconds := math.Floor(later.Sub(earlier).Seconds())
	minutes := int(math.Round(seconds / 60))

	switch {
	case minutes < 2:
		if minutes == 0 {
			return "less than a minute"
		}
		return plural(minutes, "minute")
	case minutes < 45:
		return plural(minutes, "minute")
	case minutes < 90:
		return "about 1 hour"
	case minutes < minutesInDay:
		return "about " + plural(roundDiv(minutes, 60), "hour")
	case minutes < minutesInAlmostTwoDays:
		return "1 day"
	case minutes < minutesInMonth:
		return plural(roundDiv(minutes, minutesInDay), "day")
	case minutes < minutesInTwoMonths:
		return "about " + plural(roundDiv(minutes, minutesInMonth), "month")
	}

	months := monthsBetween(earlier, later)
	if months < 12 {
		return plural(roundDiv(minutes, minutesInMonth), "month")
	}

	years := months / 12
	switch rest := months % 12; {
	case rest < 3:
		return "about " + plural(years, "year")
	case rest < 9:
		return "over " + plural(years, "year")
	default:
		return "almost " + plural(years+1, "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func roundDiv(n, d int) int {
	return int(math.Round(float64(n) / float64(d)))
}

// monthsBetween counts whole calendar months from earlier to later.
func monthsBetween(earlier, later time.Time) int {
	later = later.In(earlier.Location())

	months := (later.Year()-earlier.Year())*12 + int(later.Month()-earlier.Month())

	// a month is only complete once the day and time of day are reached again
	anniversary := earlier.AddDate(0, months, 0)
	if anniversary.After(later) {
		months--
	}

	return months
}
