package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidMonthName(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		assert.True(t, ValidMonthName(m.String()), m.String())
	}

	assert.False(t, ValidMonthName("january"))
	assert.False(t, ValidMonthName("Jan"))
	assert.False(t, ValidMonthName(""))
	assert.False(t, ValidMonthName("Smarch"))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "March", MonthName(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)))
}

func TestMonthKeyLabel(t *testing.T) {
	k := MonthKey{Year: 2025, Month: time.September}
	assert.Equal(t, "Sep 2025", k.Label())
}

func TestTrailingMonths(t *testing.T) {
	now := time.Date(2025, time.February, 14, 10, 30, 0, 0, time.UTC)

	keys := TrailingMonths(now, 12)
	require.Len(t, keys, 12)

	// Oldest first, ending at the month of now, crossing the year boundary.
	assert.Equal(t, MonthKey{Year: 2024, Month: time.March}, keys[0])
	assert.Equal(t, MonthKey{Year: 2024, Month: time.December}, keys[9])
	assert.Equal(t, MonthKey{Year: 2025, Month: time.January}, keys[10])
	assert.Equal(t, MonthKey{Year: 2025, Month: time.February}, keys[11])
}

func TestKeyOf(t *testing.T) {
	k := KeyOf(time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, MonthKey{Year: 2024, Month: time.December}, k)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("bogus", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
