// Package timecalc holds the pure time arithmetic shared by the timer,
// the entry actions, and the calendar projection.
package timecalc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dkaraca/timecard/internal/store"
)

// CalendarColors is the fixed palette used for same-day entry coloring.
var CalendarColors = [...]string{
	"#3B82F6", // blue
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#F59E0B", // amber
	"#10B981", // emerald
	"#6366F1", // indigo
	"#14B8A6", // teal
	"#F97316", // orange
}

// CalculateDuration returns the whole minutes between start and end,
// truncated toward zero. The result is negative when end precedes
// start; callers validate the range before trusting the sign.
func CalculateDuration(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// ApplyTimeToDate returns a timestamp on date's calendar day at the
// given HH:MM, with seconds and nanoseconds zeroed. Non-numeric hour or
// minute fields degrade to zero rather than failing.
func ApplyTimeToDate(date time.Time, clock string) time.Time {
	h, m := parseClock(clock)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

func parseClock(clock string) (hour, minute int) {
	parts := strings.SplitN(clock, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}

// CreateDateRange builds both endpoints on dateStr's calendar day. When
// the end clock is earlier than the start clock the end rolls to the
// next day; this is the only mechanism for entries spanning midnight.
// Equal clocks stay on the same day and fail validation downstream.
func CreateDateRange(dateStr, startClock, endClock string) (time.Time, time.Time) {
	day, _ := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	start := ApplyTimeToDate(day, startClock)
	end := ApplyTimeToDate(day, endClock)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// ValidateTimeRange reports whether end is strictly after start.
// Zero-duration ranges are rejected.
func ValidateTimeRange(start, end time.Time) bool {
	return end.After(start)
}

// EntryColor assigns a palette color keyed by the entry's position
// among same-day entries sorted by ascending start. The assignment is
// index-based, recomputed from scratch on every call: adding or
// removing a same-day entry may reassign the colors of its neighbors.
func EntryColor(entry store.TimeEntry, all []store.TimeEntry) string {
	day := entry.Start.Format("2006-01-02")

	var dayEntries []store.TimeEntry
	for _, e := range all {
		if e.Start.Format("2006-01-02") == day {
			dayEntries = append(dayEntries, e)
		}
	}
	sort.SliceStable(dayEntries, func(i, j int) bool {
		return dayEntries[i].Start.Before(dayEntries[j].Start)
	})

	idx := 0
	for i, e := range dayEntries {
		if e.ID == entry.ID {
			idx = i
			break
		}
	}
	return CalendarColors[idx%len(CalendarColors)]
}

// CountEntriesInMonth counts entries whose start falls in the same
// calendar month as ref.
func CountEntriesInMonth(entries []store.TimeEntry, ref time.Time) int {
	month := ref.Format("2006-01")
	n := 0
	for _, e := range entries {
		if e.Start.Format("2006-01") == month {
			n++
		}
	}
	return n
}

// FormatClock formats elapsed seconds as HH:MM:SS for the timer display.
func FormatClock(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMinutes formats a duration in minutes as "8h 30m" or "45m".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
