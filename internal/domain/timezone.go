package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"
)

const (
	maxOffsetHours = 14

	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var utcOffsetRegex = regexp.MustCompile(`^UTC([+-])(\d{1,2})(?::(\d{2}))?$`)

// UTCOffset holds the captured parts of a "UTC±H[:MM]" string.
// Minutes is empty when the input carried no minutes.
type UTCOffset struct {
	Sign    string
	Hours   string
	Minutes string
}

// ParseUTCOffset splits a timezone string such as "UTC+05:30" into its parts.
func ParseUTCOffset(timezone string) (UTCOffset, error) {
	m := utcOffsetRegex.FindStringSubmatch(timezone)
	if m == nil {
		return UTCOffset{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}

	offset := UTCOffset{Sign: m[1], Hours: m[2], Minutes: m[3]}

	hours, _ := strconv.Atoi(offset.Hours)
	minutes, _ := strconv.Atoi(offset.minutesOrZero())
	if hours > maxOffsetHours || minutes > 59 {
		return UTCOffset{}, fmt.Errorf("%w: %q out of range", ErrInvalidTimezone, timezone)
	}

	return offset, nil
}

func (o UTCOffset) minutesOrZero() string {
	if o.Minutes == "" {
		return "00"
	}
	return o.Minutes
}

// TotalMinutes returns the signed offset from UTC in minutes.
func (o UTCOffset) TotalMinutes() int {
	hours, _ := strconv.Atoi(o.Hours)
	minutes, _ := strconv.Atoi(o.minutesOrZero())

	total := hours*60 + minutes
	if o.Sign == "-" {
		return -total
	}
	return total
}

// ISO renders the offset as an ISO-8601 suffix, e.g. "+04:00".
func (o UTCOffset) ISO() string {
	hours, _ := strconv.Atoi(o.Hours)
	return fmt.Sprintf("%s%02d:%s", o.Sign, hours, o.minutesOrZero())
}

// String renders the offset in canonical "UTC±HH:MM" form.
func (o UTCOffset) String() string {
	return "UTC" + o.ISO()
}

// Location returns a fixed zone for the offset.
func (o UTCOffset) Location() *time.Location {
	return time.FixedZone(o.String(), o.TotalMinutes()*60)
}

// TimezoneOffsetDifference returns offset(a) - offset(b) in minutes.
func TimezoneOffsetDifference(a, b string) (int, error) {
	offsetA, err := ParseUTCOffset(a)
	if err != nil {
		return 0, err
	}

	offsetB, err := ParseUTCOffset(b)
	if err != nil {
		return 0, err
	}

	return offsetA.TotalMinutes() - offsetB.TotalMinutes(), nil
}

// InputToDate resolves a form date ("2006-01-02"), time ("15:04") and UTC
// offset string into an absolute instant, located in that offset's zone.
func InputToDate(date, clock, timezone string) (time.Time, error) {
	offset, err := ParseUTCOffset(timezone)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, date+"T"+clock+":00"+offset.ISO())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return t.In(offset.Location()), nil
}

// IsGapEnough reports whether end is at least minSeconds after start.
//
// Both timestamps are read as wall-clock values in one implicit zone; unlike
// InputToDate no UTC offset is applied.
func IsGapEnough(startDate, startTime, endDate, endTime string, minSeconds int64) (bool, error) {
	start, err := parseWallClock(startDate, startTime)
	if err != nil {
		return false, err
	}

	end, err := parseWallClock(endDate, endTime)
	if err != nil {
		return false, err
	}

	// Whole seconds; a time.Duration overflows for large minSeconds.
	return end.Unix()-start.Unix() >= minSeconds, nil
}

func parseWallClock(date, clock string) (time.Time, error) {
	t, err := time.Parse(dateLayout+" "+clockLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return t, nil
}

// DurationDateAhead returns the calendar date durationSeconds after startDate,
// or after now when startDate is empty. durationSeconds must lie within
// [0, MaxProposalDuration].
func DurationDateAhead(durationSeconds int64, startDate string, now time.Time) (string, error) {
	if durationSeconds < 0 || durationSeconds > MaxProposalDuration {
		return "", fmt.Errorf("%w: duration must be between 0 and %d seconds", ErrInvalidDate, MaxProposalDuration)
	}

	start := now
	if startDate != "" {
		t, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		start = t
	}

	return time.Unix(start.Unix()+durationSeconds, 0).In(start.Location()).Format(dateLayout), nil
}

// halfHourZones lists the offsets in use that are not whole hours.
var halfHourZones = []string{
	"UTC-09:30", "UTC-03:30", "UTC+03:30", "UTC+04:30", "UTC+05:30",
	"UTC+05:45", "UTC+06:30", "UTC+08:45", "UTC+09:30", "UTC+10:30",
	"UTC+12:45", "UTC+13:45",
}

var (
	timezoneOptionsOnce sync.Once
	timezoneOptions     []string
)

// TimezoneOptions returns every selectable UTC offset, west to east.
// The slice is built once and must not be modified.
func TimezoneOptions() []string {
	timezoneOptionsOnce.Do(func() {
		byMinutes := make(map[int]string)
		for h := -12; h <= maxOffsetHours; h++ {
			sign := "+"
			if h < 0 {
				sign = "-"
			}
			hours := h
			if hours < 0 {
				hours = -hours
			}
			o := UTCOffset{Sign: sign, Hours: strconv.Itoa(hours), Minutes: "00"}
			byMinutes[o.TotalMinutes()] = o.String()
		}
		for _, z := range halfHourZones {
			o, _ := ParseUTCOffset(z)
			byMinutes[o.TotalMinutes()] = o.String()
		}

		for m := -12 * 60; m <= maxOffsetHours*60; m++ {
			if z, ok := byMinutes[m]; ok {
				timezoneOptions = append(timezoneOptions, z)
			}
		}
	})

	return timezoneOptions
}

// IsValidTimezone reports whether timezone is one of TimezoneOptions.
func IsValidTimezone(timezone string) bool {
	for _, z := range TimezoneOptions() {
		if z == timezone {
			return true
		}
	}
	return false
}
