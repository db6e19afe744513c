package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_ParseDate(t *testing.T) {
	cal, err := NewCalendar("Europe/Berlin")
	require.NoError(t, err)

	got, err := cal.ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-03-15", cal.FormatDate(got))
	assert.Equal(t, "2024-03-14", UTCCalendar().FormatDate(got))

	_, err = cal.ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestCalendar_CurrentMonth(t *testing.T) {
	tokyo, err := NewCalendar("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on the last day of January is already February in Tokyo.
	at := time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC)
	month, year := tokyo.CurrentMonth(at)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2024, year)

	month, _ = UTCCalendar().CurrentMonth(at)
	assert.Equal(t, 1, month)
}

func TestCalendar_StartOfDayUTC(t *testing.T) {
	cal, err := NewCalendar("Europe/Berlin")
	require.NoError(t, err)

	got := cal.StartOfDayUTC(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC), got)
}

func TestNewCalendar(t *testing.T) {
	_, err := NewCalendar("Mars/Olympus")
	require.Error(t, err)

	cal, err := NewCalendar("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cal.Location())

	var zero Calendar
	assert.Equal(t, time.UTC, zero.Location())
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.FixedZone("x", 3600))
	clock := FixedClock(at)
	assert.Equal(t, at.UTC(), clock())
	assert.Equal(t, time.UTC, clock().Location())
}
