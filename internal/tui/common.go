package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dkaraca/timecard/internal/service"
	"github.com/dkaraca/timecard/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewCalendar
	viewReports
	viewManage
)

var viewNames = []string{"Timer", "Calendar", "Reports", "Manage"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// entriesChangedMsg tells every view to re-derive from the store.
type entriesChangedMsg struct{}

type entriesDataMsg struct {
	entries []store.TimeEntry
	events  []service.CalendarEvent
}

type clientsDataMsg struct {
	clients  []store.Client
	projects []store.Project
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// answered adapts a resolved confirmation overlay to the action layer's
// gate: the overlay has already asked the user, so the func simply
// replays the answer.
func answered(yes bool) service.ConfirmFunc {
	return func(title, message string) bool { return yes }
}

func statusCmd(text string, isError bool) func() tea.Msg {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}
