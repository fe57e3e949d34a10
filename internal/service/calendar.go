package service

import (
	"time"

	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timecalc"
)

// CalendarEvent is the displayable projection of one entry.
type CalendarEvent struct {
	Title string
	Start time.Time
	End   time.Time
	ID    string
	Color string
}

// CalendarEvents derives events for every entry in the working set.
// The full set is the coloring context: same-day grouping only works
// when callers pass the complete visible set, not one day's slice.
func CalendarEvents(entries []store.TimeEntry) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(entries))
	for _, e := range entries {
		events = append(events, CalendarEvent{
			Title: e.Description + " - " + e.ProjectName,
			Start: e.Start,
			End:   e.End,
			ID:    e.ID,
			Color: timecalc.EntryColor(e, entries),
		})
	}
	return events
}
