package service

import (
	"sort"
	"time"

	"github.com/bmitracker/backend/internal/domain"
)

const dayKeyLayout = "2006-01-02"

// TimeRange selects how far back chart queries reach.
type TimeRange string

const (
	Range7Days   TimeRange = "7d"
	Range1Month  TimeRange = "1m"
	Range3Months TimeRange = "3m"
	Range6Months TimeRange = "6m"
	Range1Year   TimeRange = "1y"
	RangeAll     TimeRange = "all"
)

func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case Range7Days, Range1Month, Range3Months, Range6Months, Range1Year, RangeAll:
		return TimeRange(s), nil
	}
	return "", domain.NewValidationError("range", "must be one of 7d, 1m, 3m, 6m, 1y, all")
}

// DayKey buckets a millisecond timestamp into its local calendar date.
func DayKey(timestampMs int64) string {
	return time.UnixMilli(timestampMs).Format(dayKeyLayout)
}

// FilterToDaily reconciles an unordered measurement collection into the
// history view: one entry per local calendar day, keeping only the
// latest-timestamped record of each day, newest day first. The backend
// allows several measurements per day (edits, re-calculations); history
// shows one. Pure function: the input slice is not modified and repeated
// calls over the same data yield the same result.
func FilterToDaily(measurements []domain.Measurement) []domain.Measurement {
	if len(measurements) == 0 {
		return nil
	}

	byDay := make(map[string]domain.Measurement, len(measurements))
	for _, m := range measurements {
		key := DayKey(m.Timestamp)
		if kept, ok := byDay[key]; !ok || m.Timestamp > kept.Timestamp {
			byDay[key] = m
		}
	}

	daily := make([]domain.Measurement, 0, len(byDay))
	for _, m := range byDay {
		daily = append(daily, m)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Timestamp > daily[j].Timestamp
	})
	return daily
}

// FilterByRange keeps measurements recorded at or after the range cutoff, in
// ascending chronological order for charting. Note the order differs from
// the descending history view. Month and year ranges use calendar
// arithmetic, not fixed-length durations.
func FilterByRange(measurements []domain.Measurement, r TimeRange, now time.Time) []domain.Measurement {
	var cutoff int64
	switch r {
	case Range7Days:
		cutoff = now.AddDate(0, 0, -7).UnixMilli()
	case Range1Month:
		cutoff = now.AddDate(0, -1, 0).UnixMilli()
	case Range3Months:
		cutoff = now.AddDate(0, -3, 0).UnixMilli()
	case Range6Months:
		cutoff = now.AddDate(0, -6, 0).UnixMilli()
	case Range1Year:
		cutoff = now.AddDate(-1, 0, 0).UnixMilli()
	case RangeAll:
		cutoff = 0
	}

	var filtered []domain.Measurement
	for _, m := range measurements {
		if m.Timestamp >= cutoff {
			filtered = append(filtered, m)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Timestamp < filtered[j].Timestamp
	})
	return filtered
}

// SameDayIDs returns the ids of every measurement sharing the local calendar
// day of the given timestamp. Deleting a history row removes the whole day:
// the history view shows one entry per day, and removing only one underlying
// record would resurrect an older same-day record in its place.
func SameDayIDs(measurements []domain.Measurement, timestampMs int64) []string {
	target := DayKey(timestampMs)
	var ids []string
	for _, m := range measurements {
		if DayKey(m.Timestamp) == target {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
