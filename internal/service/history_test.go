package service

import (
	"testing"
	"time"

	"github.com/bmitracker/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localMs(year int, month time.Month, day, hour, min int) int64 {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local).UnixMilli()
}

func TestFilterToDaily(t *testing.T) {
	t1 := localMs(2025, 5, 10, 8, 0)
	t2 := localMs(2025, 5, 10, 12, 30)
	t3 := localMs(2025, 5, 10, 21, 15)
	t4 := localMs(2025, 5, 11, 9, 0)

	measurements := []domain.Measurement{
		{ID: "b", Timestamp: t2},
		{ID: "d", Timestamp: t4},
		{ID: "a", Timestamp: t1},
		{ID: "c", Timestamp: t3},
	}

	daily := FilterToDaily(measurements)
	require.Len(t, daily, 2)

	// Newest day first, and only the latest record of the duplicated day.
	assert.Equal(t, "d", daily[0].ID)
	assert.Equal(t, "c", daily[1].ID)
}

func TestFilterToDailyIsRestartable(t *testing.T) {
	measurements := []domain.Measurement{
		{ID: "a", Timestamp: localMs(2025, 5, 10, 8, 0)},
		{ID: "b", Timestamp: localMs(2025, 5, 10, 9, 0)},
		{ID: "c", Timestamp: localMs(2025, 5, 12, 9, 0)},
	}

	first := FilterToDaily(measurements)
	second := FilterToDaily(measurements)
	assert.Equal(t, first, second)

	// Input order is untouched.
	assert.Equal(t, "a", measurements[0].ID)
}

func TestFilterToDailyEmpty(t *testing.T) {
	assert.Nil(t, FilterToDaily(nil))
	assert.Nil(t, FilterToDaily([]domain.Measurement{}))
}

func TestFilterByRangeSevenDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	sixDaysAgo := domain.Measurement{ID: "recent", Timestamp: now.AddDate(0, 0, -6).UnixMilli()}
	eightDaysAgo := domain.Measurement{ID: "old", Timestamp: now.AddDate(0, 0, -8).UnixMilli()}

	filtered := FilterByRange([]domain.Measurement{sixDaysAgo, eightDaysAgo}, Range7Days, now)
	require.Len(t, filtered, 1)
	assert.Equal(t, "recent", filtered[0].ID)
}

func TestFilterByRangeAscendingOrder(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	measurements := []domain.Measurement{
		{ID: "newest", Timestamp: now.AddDate(0, 0, -1).UnixMilli()},
		{ID: "oldest", Timestamp: now.AddDate(0, 0, -5).UnixMilli()},
		{ID: "middle", Timestamp: now.AddDate(0, 0, -3).UnixMilli()},
	}

	filtered := FilterByRange(measurements, Range7Days, now)
	require.Len(t, filtered, 3)
	assert.Equal(t, "oldest", filtered[0].ID)
	assert.Equal(t, "middle", filtered[1].ID)
	assert.Equal(t, "newest", filtered[2].ID)
}

func TestFilterByRangeAllTime(t *testing.T) {
	now := time.Now()
	ancient := domain.Measurement{ID: "ancient", Timestamp: 1}

	filtered := FilterByRange([]domain.Measurement{ancient}, RangeAll, now)
	require.Len(t, filtered, 1)
}

func TestFilterByRangeCalendarMonths(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.Local)

	inside := domain.Measurement{ID: "inside", Timestamp: now.AddDate(0, 0, -20).UnixMilli()}
	outside := domain.Measurement{ID: "outside", Timestamp: now.AddDate(0, -2, 0).UnixMilli()}

	filtered := FilterByRange([]domain.Measurement{inside, outside}, Range1Month, now)
	require.Len(t, filtered, 1)
	assert.Equal(t, "inside", filtered[0].ID)
}

func TestParseTimeRange(t *testing.T) {
	for _, valid := range []string{"7d", "1m", "3m", "6m", "1y", "all"} {
		r, err := ParseTimeRange(valid)
		require.NoError(t, err)
		assert.Equal(t, TimeRange(valid), r)
	}

	_, err := ParseTimeRange("2w")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "range", validationErr.Field)
}

func TestSameDayIDs(t *testing.T) {
	target := localMs(2025, 5, 10, 14, 0)

	measurements := []domain.Measurement{
		{ID: "a", Timestamp: localMs(2025, 5, 10, 8, 0)},
		{ID: "b", Timestamp: localMs(2025, 5, 10, 22, 0)},
		{ID: "c", Timestamp: localMs(2025, 5, 11, 8, 0)},
	}

	ids := SameDayIDs(measurements, target)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
