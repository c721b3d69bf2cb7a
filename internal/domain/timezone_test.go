package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUTCOffset(t *testing.T) {
	t.Parallel()

	o, err := ParseUTCOffset("UTC+05:30")
	require.NoError(t, err)
	assert.Equal(t, UTCOffset{Sign: "+", Hours: "05", Minutes: "30"}, o)
	assert.Equal(t, 330, o.TotalMinutes())
	assert.Equal(t, "+05:30", o.ISO())

	o, err = ParseUTCOffset("UTC-3")
	require.NoError(t, err)
	assert.Equal(t, "", o.Minutes)
	assert.Equal(t, -180, o.TotalMinutes())
	assert.Equal(t, "-03:00", o.ISO())
	assert.Equal(t, "UTC-03:00", o.String())
}

func TestParseUTCOffset_Invalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "UTC", "GMT+1", "UTC+1:5", "UTC+15:00", "UTC+01:60", "utc+01:00", "UTC±01:00", "UTC+001"} {
		_, err := ParseUTCOffset(s)
		assert.ErrorIs(t, err, ErrInvalidTimezone, "input %q", s)
	}
}

func TestTimezoneOffsetDifference(t *testing.T) {
	t.Parallel()

	diff, err := TimezoneOffsetDifference("UTC+01:00", "UTC+00:00")
	require.NoError(t, err)
	assert.Equal(t, 60, diff)

	diff, err = TimezoneOffsetDifference("UTC-00:10", "UTC+00:10")
	require.NoError(t, err)
	assert.Equal(t, -20, diff)

	back, err := TimezoneOffsetDifference("UTC+00:10", "UTC-00:10")
	require.NoError(t, err)
	assert.Equal(t, -diff, back)

	// zero on both sides is plain zero whatever the sign
	diff, err = TimezoneOffsetDifference("UTC-00:00", "UTC+00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, diff)

	_, err = TimezoneOffsetDifference("UTC+01:00", "nope")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestInputToDate(t *testing.T) {
	t.Parallel()

	got, err := InputToDate("2022-12-15", "12:34", "UTC+04:00")
	require.NoError(t, err)

	want := time.Date(2022, 12, 15, 8, 34, 0, 0, time.UTC)
	assert.True(t, want.Equal(got), "got %s", got)
	assert.Equal(t, "UTC+04:00", got.Location().String())
	assert.Equal(t, "12:34", got.Format("15:04"))

	got, err = InputToDate("2022-12-15", "12:34", "UTC-9:30")
	require.NoError(t, err)
	assert.True(t, time.Date(2022, 12, 15, 22, 4, 0, 0, time.UTC).Equal(got), "got %s", got)
	assert.Equal(t, "UTC-09:30", got.Location().String())

	_, err = InputToDate("2022-12-15", "12:34", "Europe/Berlin")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = InputToDate("2022-13-15", "12:34", "UTC+00:00")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsGapEnough(t *testing.T) {
	t.Parallel()

	ok, err := IsGapEnough("2022-12-15", "12:00", "2022-12-15", "12:01", 60)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsGapEnough("2022-12-15", "12:00", "2022-12-15", "12:01", 61)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsGapEnough("2022-12-15", "23:00", "2022-12-17", "23:00", 2*86400)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = IsGapEnough("2022-12-15", "25:00", "2022-12-15", "12:01", 60)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsGapEnough_HugeMinimum(t *testing.T) {
	t.Parallel()

	ok, err := IsGapEnough("2022-12-15", "12:00", "2022-12-15", "12:01", 10_000_000_000)
	require.NoError(t, err)
	assert.False(t, ok)
}

// IsGapEnough compares wall clocks, so a window that spans an offset change
// still counts by the numbers typed in, while InputToDate applies the offsets.
func TestIsGapEnough_IgnoresTimezones(t *testing.T) {
	t.Parallel()

	ok, err := IsGapEnough("2022-12-15", "12:00", "2022-12-15", "13:00", 3600)
	require.NoError(t, err)
	assert.True(t, ok)

	start, err := InputToDate("2022-12-15", "12:00", "UTC+00:00")
	require.NoError(t, err)
	end, err := InputToDate("2022-12-15", "13:00", "UTC+02:00")
	require.NoError(t, err)
	assert.True(t, end.Before(start.Add(time.Hour)))
}

func TestDurationDateAhead(t *testing.T) {
	t.Parallel()

	got, err := DurationDateAhead(86400, "2022-12-15", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2022-12-16", got)

	now := time.Date(2024, 2, 28, 18, 0, 0, 0, time.UTC)
	got, err = DurationDateAhead(7*3600, "", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	_, err = DurationDateAhead(60, "15/12/2022", now)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = DurationDateAhead(-1, "2022-12-15", now)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = DurationDateAhead(10_000_000_000, "2022-12-15", now)
	assert.ErrorIs(t, err, ErrInvalidDate)

	got, err = DurationDateAhead(MaxProposalDuration, "2022-12-15", now)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-15", got)
}

func TestTimezoneOptions(t *testing.T) {
	t.Parallel()

	opts := TimezoneOptions()
	require.NotEmpty(t, opts)
	assert.Equal(t, "UTC-12:00", opts[0])
	assert.Equal(t, "UTC+14:00", opts[len(opts)-1])
	assert.Contains(t, opts, "UTC+00:00")
	assert.Contains(t, opts, "UTC+05:45")
	assert.Len(t, opts, 27+12)

	prev := -24 * 60
	for _, z := range opts {
		o, err := ParseUTCOffset(z)
		require.NoError(t, err, z)
		assert.Greater(t, o.TotalMinutes(), prev, z)
		prev = o.TotalMinutes()
	}

	assert.True(t, IsValidTimezone("UTC+09:30"))
	assert.False(t, IsValidTimezone("UTC+09:15"))
}
