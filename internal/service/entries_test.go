package service

import (
	"testing"
	"time"

	"github.com/dkaraca/timecard/internal/store"
)

func newTestService(t *testing.T) (*Entries, *store.Store, *int) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	resets := 0
	svc := NewEntries(s, "u1", "Jane Doe", func() error {
		resets++
		return nil
	})
	return svc, s, &resets
}

func validData() SaveEntryData {
	return SaveEntryData{
		ClientID:    "c1",
		ClientName:  "Acme",
		ProjectID:   "p1",
		ProjectName: "Website",
		Description: "Build API",
		Date:        "2025-03-10",
		StartTime:   "08:30",
		EndTime:     "17:00",
	}
}

func approve(title, message string) bool { return true }
func deny(title, message string) bool    { return false }

// ============================================================
// Create
// ============================================================

func TestCreateEntry(t *testing.T) {
	svc, s, resets := newTestService(t)

	res := svc.CreateEntry(validData())
	if !res.Success {
		t.Fatalf("create failed: %s", res.Message)
	}
	if res.Message != "Time entry saved" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	entries, _ := s.LoadEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID == "" {
		t.Fatal("entry should get a generated id")
	}
	if e.UserID != "u1" || e.UserName != "Jane Doe" {
		t.Fatalf("owner not stamped: %+v", e)
	}
	if e.DurationMinutes != 510 {
		t.Fatalf("expected 510 minutes, got %d", e.DurationMinutes)
	}
	if e.Date != "2025-03-10" {
		t.Fatalf("date mangled: %q", e.Date)
	}
	if *resets != 1 {
		t.Fatalf("timer reset called %d times, want 1", *resets)
	}
}

func TestCreateEntryTrimsFields(t *testing.T) {
	svc, s, _ := newTestService(t)

	data := validData()
	data.Description = "  Build API  "
	data.ClientName = " Acme "
	data.ProjectName = " Website "

	if res := svc.CreateEntry(data); !res.Success {
		t.Fatalf("create failed: %s", res.Message)
	}
	entries, _ := s.LoadEntries()
	e := entries[0]
	if e.Description != "Build API" || e.ClientName != "Acme" || e.ProjectName != "Website" {
		t.Fatalf("fields not trimmed: %+v", e)
	}
}

func TestCreateEntryRequiresDescription(t *testing.T) {
	svc, s, resets := newTestService(t)

	data := validData()
	data.Description = "   "
	res := svc.CreateEntry(data)
	if res.Success {
		t.Fatal("blank description should fail")
	}
	if res.Message != "Description is required" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	entries, _ := s.LoadEntries()
	if len(entries) != 0 {
		t.Fatal("failed create must not write")
	}
	if *resets != 0 {
		t.Fatal("failed create must not reset the timer")
	}
}

func TestCreateEntryRejectsZeroRange(t *testing.T) {
	svc, s, resets := newTestService(t)

	data := validData()
	data.EndTime = data.StartTime
	res := svc.CreateEntry(data)
	if res.Success {
		t.Fatal("zero-duration range should fail")
	}
	if res.Message != "End time must be after start time" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	entries, _ := s.LoadEntries()
	if len(entries) != 0 {
		t.Fatal("failed create must not write")
	}
	if *resets != 0 {
		t.Fatal("failed create must not reset the timer")
	}
}

func TestCreateEntryOvernight(t *testing.T) {
	svc, s, _ := newTestService(t)

	data := validData()
	data.StartTime = "23:00"
	data.EndTime = "01:00"
	if res := svc.CreateEntry(data); !res.Success {
		t.Fatalf("overnight create failed: %s", res.Message)
	}

	entries, _ := s.LoadEntries()
	if entries[0].DurationMinutes != 120 {
		t.Fatalf("expected 120 minutes, got %d", entries[0].DurationMinutes)
	}
}

func TestCreateEntryResetOnlyAfterSuccessfulWrite(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}

	resets := 0
	svc := NewEntries(s, "u1", "Jane Doe", func() error {
		resets++
		return nil
	})

	// Closing the store makes the write fail.
	s.Close()

	res := svc.CreateEntry(validData())
	if res.Success {
		t.Fatal("create against a closed store should fail")
	}
	if res.Message != "Failed to save time entry" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if resets != 0 {
		t.Fatal("timer must not reset when the write fails")
	}
}

// ============================================================
// Update
// ============================================================

func TestUpdateEntry(t *testing.T) {
	svc, s, resets := newTestService(t)
	svc.CreateEntry(validData())
	entries, _ := s.LoadEntries()
	existing := entries[0]

	data := validData()
	data.EndTime = "18:00"
	res := svc.UpdateEntry(existing, data)
	if !res.Success {
		t.Fatalf("update failed: %s", res.Message)
	}
	if res.Message != "Time entry updated" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	entries, _ = s.LoadEntries()
	got := entries[0]
	if got.DurationMinutes != 570 {
		t.Fatalf("expected 570 minutes after extending end, got %d", got.DurationMinutes)
	}
	// Identity and ownership survive the rewrite.
	if got.ID != existing.ID || got.UserID != existing.UserID || got.UserName != existing.UserName {
		t.Fatalf("identity changed: %+v", got)
	}
	// Update never touches the timer; only the initial create did.
	if *resets != 1 {
		t.Fatalf("timer reset called %d times, want 1", *resets)
	}
}

func TestUpdateEntryValidation(t *testing.T) {
	svc, s, _ := newTestService(t)
	svc.CreateEntry(validData())
	entries, _ := s.LoadEntries()
	existing := entries[0]

	data := validData()
	data.Description = ""
	if res := svc.UpdateEntry(existing, data); res.Success {
		t.Fatal("blank description should fail")
	}

	data = validData()
	data.EndTime = data.StartTime
	if res := svc.UpdateEntry(existing, data); res.Success {
		t.Fatal("zero-duration range should fail")
	}

	// Store unchanged after both failed updates.
	entries, _ = s.LoadEntries()
	if entries[0].DurationMinutes != 510 {
		t.Fatalf("failed update mutated the store: %+v", entries[0])
	}
}

// ============================================================
// Delete
// ============================================================

func TestDeleteEntryWithConfirmation(t *testing.T) {
	svc, s, _ := newTestService(t)
	svc.CreateEntry(validData())
	entries, _ := s.LoadEntries()

	ran := false
	res := svc.DeleteEntryWithConfirmation(entries[0], approve, func() { ran = true })
	if !res.Success {
		t.Fatalf("delete failed: %s", res.Message)
	}
	if !ran {
		t.Fatal("onSuccess not invoked")
	}

	entries, _ = s.LoadEntries()
	if len(entries) != 0 {
		t.Fatal("entry survived confirmed delete")
	}
}

func TestDeleteEntryCancelled(t *testing.T) {
	svc, s, _ := newTestService(t)
	svc.CreateEntry(validData())
	entries, _ := s.LoadEntries()

	res := svc.DeleteEntryWithConfirmation(entries[0], deny, func() {
		t.Fatal("onSuccess must not run on cancel")
	})
	if res.Success {
		t.Fatal("cancelled delete reported success")
	}
	if res.Message != "Delete cancelled" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	entries, _ = s.LoadEntries()
	if len(entries) != 1 {
		t.Fatal("cancelled delete mutated the store")
	}
}

// ============================================================
// Discard
// ============================================================

func TestDiscardTimer(t *testing.T) {
	svc, s, _ := newTestService(t)
	svc.CreateEntry(validData())

	ran := false
	if ok := svc.DiscardTimerWithConfirmation(approve, func() { ran = true }); !ok {
		t.Fatal("approved discard reported false")
	}
	if !ran {
		t.Fatal("onConfirm not invoked")
	}

	if ok := svc.DiscardTimerWithConfirmation(deny, func() {
		t.Fatal("onConfirm must not run on cancel")
	}); ok {
		t.Fatal("cancelled discard reported true")
	}

	// Discard never touches entries either way.
	entries, _ := s.LoadEntries()
	if len(entries) != 1 {
		t.Fatalf("discard changed entries: %d", len(entries))
	}
}

// ============================================================
// List
// ============================================================

func TestListScopedToUser(t *testing.T) {
	svc, s, _ := newTestService(t)
	svc.CreateEntry(validData())

	// A second user's entry in the same store.
	other := NewEntries(s, "u2", "Bob", nil)
	other.CreateEntry(validData())

	mine, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].UserID != "u1" {
		t.Fatalf("unexpected working set: %+v", mine)
	}
}

// ============================================================
// Calendar projection
// ============================================================

func TestCalendarEvents(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	entries := []store.TimeEntry{
		{
			ID:          "e1",
			Description: "Build API",
			ProjectName: "Website",
			Start:       start,
			End:         start.Add(2 * time.Hour),
		},
		{
			ID:          "e2",
			Description: "Review",
			ProjectName: "Website",
			Start:       start.Add(3 * time.Hour),
			End:         start.Add(4 * time.Hour),
		},
	}

	events := CalendarEvents(entries)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.Title != "Build API - Website" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.ID != "e1" || !first.Start.Equal(entries[0].Start) || !first.End.Equal(entries[0].End) {
		t.Fatalf("event does not mirror its entry: %+v", first)
	}

	// Colors follow same-day start order.
	if events[0].Color == events[1].Color {
		t.Fatal("same-day neighbors should get distinct colors")
	}
}

func TestCalendarEventsEmpty(t *testing.T) {
	events := CalendarEvents(nil)
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}
