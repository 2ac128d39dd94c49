package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRangeUTC(t *testing.T) {
	from, to, err := DayRange("2024-03-10", "2024-03-10", 0)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), *to)
}

func TestDayRangeAppliesOffset(t *testing.T) {
	// UTC+7 reports -420
	from, to, err := DayRange("2024-03-10", "2024-03-12", -420)
	require.NoError(t, err)

	assert.True(t, from.Equal(time.Date(2024, 3, 9, 17, 0, 0, 0, time.UTC)))
	assert.True(t, to.Equal(time.Date(2024, 3, 12, 17, 0, 0, 0, time.UTC)))

	// UTC-3 reports 180
	from, _, err = DayRange("2024-03-10", "", 180)
	require.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)))
}

func TestDayRangeOptionalBounds(t *testing.T) {
	from, to, err := DayRange("", "", 0)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestDayRangeRejectsBadDates(t *testing.T) {
	_, _, err := DayRange("10/03/2024", "", 0)
	assert.Error(t, err)

	_, _, err = DayRange("", "2024-02-30", 0)
	assert.Error(t, err)
}

func TestParseOffset(t *testing.T) {
	assert.Equal(t, -420, ParseOffset("-420"))
	assert.Equal(t, 0, ParseOffset(""))
	assert.Equal(t, 0, ParseOffset("abc"))
}
