package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dkaraca/timecard/internal/service"
	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timecalc"
	"github.com/dkaraca/timecard/internal/timer"
)

type timerViewModel struct {
	store  *store.Store
	engine *timer.Engine
	svc    *service.Entries
	width  int
	height int

	clients  []store.Client
	projects []store.Project

	formActive     bool
	form           *entryForm
	confirmDiscard bool
}

func newTimerView(s *store.Store, engine *timer.Engine, svc *service.Entries) timerViewModel {
	return timerViewModel{store: s, engine: engine, svc: svc}
}

func (m *timerViewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m timerViewModel) refresh() tea.Cmd {
	return func() tea.Msg {
		clients, _ := m.store.ListClients()
		projects, _ := m.store.ListProjects()
		return clientsDataMsg{clients: clients, projects: projects}
	}
}

func (m timerViewModel) update(msg tea.Msg) (timerViewModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case clientsDataMsg:
		m.clients = msg.clients
		m.projects = msg.projects
		return m, nil

	case tea.KeyMsg:
		if m.confirmDiscard {
			return m.updateDiscardConfirm(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			restarted := m.engine.Active()
			if err := m.engine.Start(); err != nil {
				return m, statusCmd("Failed to persist timer: "+err.Error(), true)
			}
			if restarted {
				return m, statusCmd("Timer restarted", false)
			}
			return m, statusCmd("Timer started", false)

		case key.Matches(msg, keys.Stop):
			if m.engine.Active() {
				if err := m.engine.Stop(); err != nil {
					return m, statusCmd("Failed to persist timer: "+err.Error(), true)
				}
				return m.openSaveForm()
			}
			if _, ok := m.engine.StartTime(); ok {
				// Anchor retained from an earlier stop; reopen the dialog.
				return m.openSaveForm()
			}
			return m, nil

		case key.Matches(msg, keys.Continue):
			if err := m.engine.Continue(); err != nil {
				if err == timer.ErrNoAnchor {
					return m, statusCmd("No stopped timer to continue", true)
				}
				return m, statusCmd("Failed to persist timer: "+err.Error(), true)
			}
			return m, statusCmd("Timer resumed", false)

		case key.Matches(msg, keys.Discard):
			if _, ok := m.engine.StartTime(); !ok {
				return m, nil
			}
			m.confirmDiscard = true
			return m, nil

		case key.Matches(msg, keys.New):
			return m.openManualForm()
		}
	}
	return m, nil
}

func (m timerViewModel) updateDiscardConfirm(msg tea.KeyMsg) (timerViewModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmDiscard = false
		m.svc.DiscardTimerWithConfirmation(answered(true), func() {
			m.engine.Reset()
		})
		return m, statusCmd("Timer discarded", false)
	case "n", "N", "esc":
		m.confirmDiscard = false
		m.svc.DiscardTimerWithConfirmation(answered(false), func() {
			m.engine.Reset()
		})
		return m, nil
	}
	return m, nil
}

// openSaveForm seeds the entry form from the just-stopped session: the
// anchor supplies the date and start clock, now supplies the end clock.
func (m timerViewModel) openSaveForm() (timerViewModel, tea.Cmd) {
	start, ok := m.engine.StartTime()
	if !ok {
		return m, nil
	}
	end := start.Add(time.Duration(m.engine.Elapsed()) * time.Second)
	seed := service.SaveEntryData{
		Date:      start.Format("2006-01-02"),
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
	}
	return m.openForm(seed)
}

func (m timerViewModel) openManualForm() (timerViewModel, tea.Cmd) {
	now := time.Now()
	seed := service.SaveEntryData{
		Date:      now.Format("2006-01-02"),
		StartTime: "09:00",
		EndTime:   "17:00",
	}
	return m.openForm(seed)
}

func (m timerViewModel) openForm(seed service.SaveEntryData) (timerViewModel, tea.Cmd) {
	if len(m.clients) == 0 || len(m.projects) == 0 {
		return m, statusCmd("Add a client and a project first (press 4)", true)
	}
	m.form = newEntryForm(m.clients, m.projects, seed, nil)
	m.formActive = true
	return m, m.form.form.Init()
}

func (m timerViewModel) updateForm(msg tea.Msg) (timerViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		// Cancelling the save keeps the stopped session's anchor, so
		// continue and discard both remain possible.
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
		m.formActive = false
		m.form = nil
		res := m.svc.CreateEntry(data)
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

func (m timerViewModel) view() string {
	w := m.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Save Time Entry")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.form.View()),
		)
	}

	if m.confirmDiscard {
		rows := []string{
			titleStyle.Render("Discard Timer"),
			"",
			"Are you sure you want to discard this timer entry?",
			"",
			mutedStyle.Render("  y: discard  n/esc: keep"),
		}
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	return m.renderClockPanel(w)
}

func (m timerViewModel) renderClockPanel(w int) string {
	var clock, indicator, hint string

	switch {
	case m.engine.Active():
		clock = clockRunningStyle.Width(w - 6).Render(timecalc.FormatClock(m.engine.Elapsed()))
		indicator = successStyle.Render("●  RUNNING")
		start, _ := m.engine.StartTime()
		hint = mutedStyle.Render("since " + start.Local().Format("15:04:05") + "  —  x: stop & save")
	default:
		if _, ok := m.engine.StartTime(); ok {
			// Stopped but not yet saved or discarded.
			clock = clockStoppedStyle.Width(w - 6).Render(timecalc.FormatClock(m.engine.Elapsed()))
			indicator = warningStyle.Render("⏸  STOPPED")
			hint = mutedStyle.Render("x: save  c: continue  d: discard")
		} else {
			clock = clockIdleStyle.Width(w - 6).Render("00:00:00")
			indicator = mutedStyle.Render("■  IDLE")
			hint = mutedStyle.Render("s: start tracking  n: manual entry")
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, clock, indicator, hint)
	if m.engine.Active() {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}
