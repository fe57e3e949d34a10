// Package service turns timer or manual time ranges into validated,
// persisted entries, and derives the calendar projection over them.
package service

import (
	"strings"

	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timecalc"
	"github.com/google/uuid"
)

// Result is the structured outcome returned to UI callers; failures
// carry a user-facing message instead of an error value.
type Result struct {
	Success bool
	Message string
}

// SaveEntryData is the input shape for creating or editing an entry.
// Date is YYYY-MM-DD; StartTime and EndTime are HH:MM on that day.
type SaveEntryData struct {
	ClientID    string
	ClientName  string
	ProjectID   string
	ProjectName string
	Description string
	Date        string
	StartTime   string
	EndTime     string
}

// ConfirmFunc asks the user to approve a destructive action. The store
// is only touched when it returns true.
type ConfirmFunc func(title, message string) bool

// Entries orchestrates entry writes for one signed-in user. resetTimer
// is invoked after a successful create so a timer-originated entry does
// not leave a stale session behind; it is never invoked when the write
// fails.
type Entries struct {
	store      *store.Store
	userID     string
	userName   string
	resetTimer func() error
}

func NewEntries(s *store.Store, userID, userName string, resetTimer func() error) *Entries {
	return &Entries{
		store:      s,
		userID:     userID,
		userName:   userName,
		resetTimer: resetTimer,
	}
}

// List returns the current user's working set.
func (s *Entries) List() ([]store.TimeEntry, error) {
	return s.store.EntriesForUser(s.userID)
}

// CreateEntry validates the time range, shapes a new entry, and writes
// it. The timer reset callback runs only after the store confirms the
// write.
func (s *Entries) CreateEntry(data SaveEntryData) Result {
	if strings.TrimSpace(data.Description) == "" {
		return Result{Success: false, Message: "Description is required"}
	}
	start, end := timecalc.CreateDateRange(data.Date, data.StartTime, data.EndTime)
	if !timecalc.ValidateTimeRange(start, end) {
		return Result{Success: false, Message: "End time must be after start time"}
	}

	entry := store.TimeEntry{
		ID:              uuid.NewString(),
		UserID:          s.userID,
		UserName:        s.userName,
		ClientID:        data.ClientID,
		ClientName:      strings.TrimSpace(data.ClientName),
		ProjectID:       data.ProjectID,
		ProjectName:     strings.TrimSpace(data.ProjectName),
		Description:     strings.TrimSpace(data.Description),
		Date:            data.Date,
		Start:           start,
		End:             end,
		DurationMinutes: timecalc.CalculateDuration(start, end),
	}

	if err := s.store.AddEntry(entry); err != nil {
		return Result{Success: false, Message: "Failed to save time entry"}
	}
	if s.resetTimer != nil {
		s.resetTimer()
	}
	return Result{Success: true, Message: "Time entry saved"}
}

// UpdateEntry replaces every mutable field of an existing entry while
// preserving its identity and owner. The timer is never touched.
func (s *Entries) UpdateEntry(existing store.TimeEntry, data SaveEntryData) Result {
	if strings.TrimSpace(data.Description) == "" {
		return Result{Success: false, Message: "Description is required"}
	}
	start, end := timecalc.CreateDateRange(data.Date, data.StartTime, data.EndTime)
	if !timecalc.ValidateTimeRange(start, end) {
		return Result{Success: false, Message: "End time must be after start time"}
	}

	updated := existing
	updated.ClientID = data.ClientID
	updated.ClientName = strings.TrimSpace(data.ClientName)
	updated.ProjectID = data.ProjectID
	updated.ProjectName = strings.TrimSpace(data.ProjectName)
	updated.Description = strings.TrimSpace(data.Description)
	updated.Date = data.Date
	updated.Start = start
	updated.End = end
	updated.DurationMinutes = timecalc.CalculateDuration(start, end)

	if err := s.store.UpdateEntry(updated); err != nil {
		return Result{Success: false, Message: "Failed to update time entry"}
	}
	return Result{Success: true, Message: "Time entry updated"}
}

// DeleteEntryWithConfirmation removes an entry only when the user
// accepts the confirmation prompt. onSuccess runs after the store
// confirms the removal.
func (s *Entries) DeleteEntryWithConfirmation(entry store.TimeEntry, confirm ConfirmFunc, onSuccess func()) Result {
	if !confirm("Delete Entry", "Are you sure you want to delete this time entry?") {
		return Result{Success: false, Message: "Delete cancelled"}
	}
	if err := s.store.DeleteEntry(entry.ID); err != nil {
		return Result{Success: false, Message: "Failed to delete time entry"}
	}
	if onSuccess != nil {
		onSuccess()
	}
	return Result{Success: true, Message: "Time entry deleted"}
}

// DiscardTimerWithConfirmation runs onConfirm (typically the engine
// reset) only when the user accepts. Entries are never touched.
func (s *Entries) DiscardTimerWithConfirmation(confirm ConfirmFunc, onConfirm func()) bool {
	if !confirm("Discard Timer", "Are you sure you want to discard this timer entry?") {
		return false
	}
	onConfirm()
	return true
}
