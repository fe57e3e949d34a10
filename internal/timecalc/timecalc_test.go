package timecalc

import (
	"testing"
	"time"

	"github.com/dkaraca/timecard/internal/store"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

func dayEntry(id, date, clock string) store.TimeEntry {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	return store.TimeEntry{ID: id, Start: ApplyTimeToDate(day, clock)}
}

// ============================================================
// Duration
// ============================================================

func TestCalculateDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"full workday", start.Add(8*time.Hour + 30*time.Minute), 510},
		{"under a minute truncates", start.Add(59 * time.Second), 0},
		{"seconds truncate toward zero", start.Add(90 * time.Second), 1},
		{"zero range", start, 0},
		{"negative range", start.Add(-time.Hour), -60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateDuration(start, tc.end); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

// ============================================================
// Clock application
// ============================================================

func TestApplyTimeToDate(t *testing.T) {
	// Carry a dirty timestamp: the result must zero seconds and nanos.
	date := time.Date(2025, 3, 10, 14, 45, 33, 99, time.Local)

	got := ApplyTimeToDate(date, "09:30")
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyTimeToDateMalformedClock(t *testing.T) {
	date := mustDate(t, "2025-03-10")

	cases := []struct {
		clock    string
		wantHour int
		wantMin  int
	}{
		{"xx:30", 0, 30},
		{"09:yy", 9, 0},
		{"garbage", 0, 0},
		{"", 0, 0},
		{"7", 7, 0},
	}
	for _, tc := range cases {
		got := ApplyTimeToDate(date, tc.clock)
		if got.Hour() != tc.wantHour || got.Minute() != tc.wantMin {
			t.Errorf("clock %q: got %02d:%02d, want %02d:%02d",
				tc.clock, got.Hour(), got.Minute(), tc.wantHour, tc.wantMin)
		}
	}
}

// ============================================================
// Date ranges
// ============================================================

func TestCreateDateRangeSameDay(t *testing.T) {
	start, end := CreateDateRange("2025-03-10", "08:30", "17:00")

	if start.Day() != 10 || end.Day() != 10 {
		t.Fatalf("expected both endpoints on day 10, got %v / %v", start, end)
	}
	if got := CalculateDuration(start, end); got != 510 {
		t.Fatalf("expected 510 minutes, got %d", got)
	}
}

func TestCreateDateRangeOvernight(t *testing.T) {
	start, end := CreateDateRange("2025-03-10", "23:00", "01:00")

	if !end.After(start) {
		t.Fatal("overnight end should roll to the next day")
	}
	if end.Day() != 11 {
		t.Fatalf("expected end on day 11, got day %d", end.Day())
	}
	if got := CalculateDuration(start, end); got != 120 {
		t.Fatalf("expected 120 minutes, got %d", got)
	}
}

func TestCreateDateRangeEqualClocks(t *testing.T) {
	// Equal clocks stay same-day: zero duration, rejected by validation.
	start, end := CreateDateRange("2025-03-10", "09:00", "09:00")

	if !start.Equal(end) {
		t.Fatalf("expected identical endpoints, got %v / %v", start, end)
	}
	if ValidateTimeRange(start, end) {
		t.Fatal("zero-duration range must not validate")
	}
}

func TestValidateTimeRange(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	if !ValidateTimeRange(start, start.Add(time.Minute)) {
		t.Fatal("forward range should validate")
	}
	if ValidateTimeRange(start, start) {
		t.Fatal("equal endpoints should not validate")
	}
	if ValidateTimeRange(start, start.Add(-time.Minute)) {
		t.Fatal("backwards range should not validate")
	}
}

// ============================================================
// Calendar colors
// ============================================================

func TestEntryColorByDayPosition(t *testing.T) {
	entries := []store.TimeEntry{
		dayEntry("b", "2025-03-10", "13:00"),
		dayEntry("a", "2025-03-10", "09:00"),
		dayEntry("c", "2025-03-11", "09:00"),
	}

	// "a" starts first on the 10th, so it gets palette slot 0 even
	// though it appears second in the slice.
	if got := EntryColor(entries[1], entries); got != CalendarColors[0] {
		t.Fatalf("entry a: got %s, want %s", got, CalendarColors[0])
	}
	if got := EntryColor(entries[0], entries); got != CalendarColors[1] {
		t.Fatalf("entry b: got %s, want %s", got, CalendarColors[1])
	}
	// "c" is alone on its own day and restarts at slot 0.
	if got := EntryColor(entries[2], entries); got != CalendarColors[0] {
		t.Fatalf("entry c: got %s, want %s", got, CalendarColors[0])
	}
}

func TestEntryColorIdempotent(t *testing.T) {
	entries := []store.TimeEntry{
		dayEntry("a", "2025-03-10", "09:00"),
		dayEntry("b", "2025-03-10", "13:00"),
	}

	first := EntryColor(entries[1], entries)
	second := EntryColor(entries[1], entries)
	if first != second {
		t.Fatalf("same input produced %s then %s", first, second)
	}
}

func TestEntryColorShiftsWhenNeighborRemoved(t *testing.T) {
	a := dayEntry("a", "2025-03-10", "09:00")
	b := dayEntry("b", "2025-03-10", "13:00")

	withBoth := EntryColor(b, []store.TimeEntry{a, b})
	alone := EntryColor(b, []store.TimeEntry{b})

	if withBoth != CalendarColors[1] {
		t.Fatalf("with neighbor: got %s, want %s", withBoth, CalendarColors[1])
	}
	if alone != CalendarColors[0] {
		t.Fatalf("alone: got %s, want %s", alone, CalendarColors[0])
	}
}

func TestEntryColorPaletteWraps(t *testing.T) {
	var entries []store.TimeEntry
	for i := 0; i < 10; i++ {
		clock := time.Date(2025, 3, 10, 6+i, 0, 0, 0, time.Local)
		entries = append(entries, store.TimeEntry{
			ID:    string(rune('a' + i)),
			Start: clock,
		})
	}

	// Ninth entry wraps back to slot 0, tenth to slot 1.
	if got := EntryColor(entries[8], entries); got != CalendarColors[0] {
		t.Fatalf("ninth entry: got %s, want %s", got, CalendarColors[0])
	}
	if got := EntryColor(entries[9], entries); got != CalendarColors[1] {
		t.Fatalf("tenth entry: got %s, want %s", got, CalendarColors[1])
	}
}

// ============================================================
// Month counting and formatting
// ============================================================

func TestCountEntriesInMonth(t *testing.T) {
	entries := []store.TimeEntry{
		dayEntry("a", "2025-03-01", "09:00"),
		dayEntry("b", "2025-03-31", "09:00"),
		dayEntry("c", "2025-04-01", "09:00"),
		dayEntry("d", "2024-03-15", "09:00"), // same month, prior year
	}

	ref := mustDate(t, "2025-03-10")
	if got := CountEntriesInMonth(entries, ref); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		{36125, "10:02:05"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.secs); got != tc.want {
			t.Errorf("FormatClock(%d) = %s, want %s", tc.secs, got, tc.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		mins int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{510, "8h 30m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.mins); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %s, want %s", tc.mins, got, tc.want)
		}
	}
}
