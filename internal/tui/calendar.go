package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dkaraca/timecard/internal/service"
	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timecalc"
)

type calendarModel struct {
	store  *store.Store
	svc    *service.Entries
	width  int
	height int

	month   time.Time // first day of the displayed month
	entries []store.TimeEntry
	events  []service.CalendarEvent
	visible []service.CalendarEvent // events in the displayed month, sorted
	cursor  int

	clients  []store.Client
	projects []store.Project

	formActive    bool
	form          *entryForm
	confirmDelete bool
}

func newCalendarView(s *store.Store, svc *service.Entries) calendarModel {
	now := time.Now()
	return calendarModel{
		store: s,
		svc:   svc,
		month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}
}

func (m *calendarModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// refresh re-derives the projection from the store. The full working
// set is the coloring context, so colors stay correct across months.
// Client and project pickers reload alongside so the edit form always
// has current options.
func (m calendarModel) refresh() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			entries, err := m.svc.List()
			if err != nil {
				return statusMsg{text: "Failed to load time entries", isError: true}
			}
			return entriesDataMsg{entries: entries, events: service.CalendarEvents(entries)}
		},
		m.refreshPickers(),
	)
}

func (m calendarModel) refreshPickers() tea.Cmd {
	return func() tea.Msg {
		clients, _ := m.store.ListClients()
		projects, _ := m.store.ListProjects()
		return clientsDataMsg{clients: clients, projects: projects}
	}
}

func (m *calendarModel) rebuildVisible() {
	m.visible = m.visible[:0]
	for _, ev := range m.events {
		if ev.Start.Year() == m.month.Year() && ev.Start.Month() == m.month.Month() {
			m.visible = append(m.visible, ev)
		}
	}
	sort.Slice(m.visible, func(i, j int) bool {
		return m.visible[i].Start.Before(m.visible[j].Start)
	})
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m calendarModel) selectedEntry() (store.TimeEntry, bool) {
	if m.cursor >= len(m.visible) {
		return store.TimeEntry{}, false
	}
	id := m.visible[m.cursor].ID
	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return store.TimeEntry{}, false
}

func (m calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case entriesDataMsg:
		m.entries = msg.entries
		m.events = msg.events
		m.rebuildVisible()
		return m, nil

	case clientsDataMsg:
		m.clients = msg.clients
		m.projects = msg.projects
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.updateDeleteConfirm(msg)
		}

		switch {
		case key.Matches(msg, keys.Left):
			m.month = m.month.AddDate(0, -1, 0)
			m.rebuildVisible()
		case key.Matches(msg, keys.Right):
			m.month = m.month.AddDate(0, 1, 0)
			m.rebuildVisible()
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return m.openEditForm()
		case key.Matches(msg, keys.Delete):
			if len(m.visible) > 0 {
				m.confirmDelete = true
			}
		}
	}
	return m, nil
}

func (m calendarModel) updateDeleteConfirm(msg tea.KeyMsg) (calendarModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmDelete = false
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		res := m.svc.DeleteEntryWithConfirmation(entry, answered(true), nil)
		if !res.Success {
			return m, statusCmd(res.Message, true)
		}
		return m, tea.Batch(
			statusCmd(res.Message, false),
			func() tea.Msg { return entriesChangedMsg{} },
		)
	case "n", "N", "esc":
		m.confirmDelete = false
		return m, nil
	}
	return m, nil
}

func (m calendarModel) openEditForm() (calendarModel, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	if len(m.clients) == 0 || len(m.projects) == 0 {
		return m, statusCmd("Add a client and a project first (press 4)", true)
	}
	seed := service.SaveEntryData{
		ClientID:    entry.ClientID,
		ClientName:  entry.ClientName,
		ProjectID:   entry.ProjectID,
		ProjectName: entry.ProjectName,
		Description: entry.Description,
		Date:        entry.Date,
		StartTime:   entry.Start.Local().Format("15:04"),
		EndTime:     entry.End.Local().Format("15:04"),
	}
	e := entry
	m.form = newEntryForm(m.clients, m.projects, seed, &e)
	m.formActive = true
	return m, m.form.form.Init()
}

func (m calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}

	if m.form.form.State == huh.StateCompleted {
		data := m.form.data()
		editing := m.form.editing
		m.formActive = false
		m.form = nil
		res := m.svc.UpdateEntry(*editing, data)
		if !res.Success {
			return m, statusCmd(res.Message, true)
		}
		return m, tea.Batch(
			statusCmd(res.Message, false),
			func() tea.Msg { return entriesChangedMsg{} },
		)
	}

	return m, cmd
}

func (m calendarModel) view() string {
	w := m.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Edit Time Entry")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.form.View()),
		)
	}

	if m.confirmDelete {
		rows := []string{
			titleStyle.Render("Delete Entry"),
			"",
			"Are you sure you want to delete this time entry?",
			"",
			mutedStyle.Render("  y: delete  n/esc: cancel"),
		}
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	count := timecalc.CountEntriesInMonth(m.entries, m.month)
	noun := "entries"
	if count == 1 {
		noun = "entry"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(m.month.Format("January 2006")),
		"  ",
		mutedStyle.Render(fmt.Sprintf("%d %s this month", count, noun)),
	)

	if len(m.visible) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No entries this month"),
			"",
			mutedStyle.Render("  ←/→: change month"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header, "")

	lastDay := ""
	for i, ev := range m.visible {
		day := ev.Start.Local().Format("Mon Jan 02")
		if day != lastDay {
			if lastDay != "" {
				rows = append(rows, "")
			}
			rows = append(rows, highlightStyle.Render(day))
			lastDay = day
		}

		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(ev.Color)).Render("●")
		span := fmt.Sprintf("%s–%s", ev.Start.Local().Format("15:04"), ev.End.Local().Format("15:04"))
		dur := timecalc.FormatMinutes(timecalc.CalculateDuration(ev.Start, ev.End))

		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s%s %s  %s %s",
			cursor, dot, span, style.Render(ev.Title), mutedStyle.Render("("+dur+")"),
		))
	}

	rows = append(rows, "", mutedStyle.Render("  ←/→: month  e/enter: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
