package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dkaraca/timecard/internal/store"
)

// manageModel is the thin CRUD surface for the client and project
// collaborator collections. Entries only ever read {id, name} pairs
// from here; renames never rewrite historical entries.
type manageModel struct {
	store  *store.Store
	width  int
	height int

	clients  []store.Client
	projects []store.Project

	cursor          int
	projectCursor   int
	viewingProjects bool // projects of the selected client

	formActive bool
	form       *huh.Form
	formType   string // "client" or "project"
	formName   *string
}

func newManageView(s *store.Store) manageModel {
	name := ""
	return manageModel{store: s, formName: &name}
}

func (m *manageModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m manageModel) refresh() tea.Cmd {
	return func() tea.Msg {
		clients, _ := m.store.ListClients()
		projects, _ := m.store.ListProjects()
		return clientsDataMsg{clients: clients, projects: projects}
	}
}

func (m manageModel) selectedClient() (store.Client, bool) {
	if m.cursor >= len(m.clients) {
		return store.Client{}, false
	}
	return m.clients[m.cursor], true
}

func (m manageModel) clientProjects() []store.Project {
	c, ok := m.selectedClient()
	if !ok {
		return nil
	}
	var out []store.Project
	for _, p := range m.projects {
		if p.ClientID == c.ID {
			out = append(out, p)
		}
	}
	return out
}

func (m manageModel) update(msg tea.Msg) (manageModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case clientsDataMsg:
		m.clients = msg.clients
		m.projects = msg.projects
		if m.cursor >= len(m.clients) {
			m.cursor = max(0, len(m.clients)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.viewingProjects {
			return m.updateProjectList(msg)
		}
		return m.updateClientList(msg)
	}
	return m, nil
}

func (m manageModel) updateClientList(msg tea.KeyMsg) (manageModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.clients)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.clients) > 0 {
			m.viewingProjects = true
			m.projectCursor = 0
		}
	case key.Matches(msg, keys.New):
		return m.showForm("client")
	case key.Matches(msg, keys.Delete):
		if c, ok := m.selectedClient(); ok {
			if err := m.store.DeleteClient(c.ID); err != nil {
				return m, statusCmd("Failed to delete client", true)
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m manageModel) updateProjectList(msg tea.KeyMsg) (manageModel, tea.Cmd) {
	projects := m.clientProjects()
	switch {
	case key.Matches(msg, keys.Back):
		m.viewingProjects = false
	case key.Matches(msg, keys.Up):
		if m.projectCursor > 0 {
			m.projectCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.projectCursor < len(projects)-1 {
			m.projectCursor++
		}
	case key.Matches(msg, keys.New):
		return m.showForm("project")
	case key.Matches(msg, keys.Delete):
		if m.projectCursor < len(projects) {
			if err := m.store.DeleteProject(projects[m.projectCursor].ID); err != nil {
				return m, statusCmd("Failed to delete project", true)
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m manageModel) showForm(formType string) (manageModel, tea.Cmd) {
	*m.formName = ""
	m.formType = formType

	title := "Client Name"
	if formType == "project" {
		title = "Project Name"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(m.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m manageModel) updateForm(msg tea.Msg) (manageModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		name := strings.TrimSpace(*m.formName)
		if name == "" {
			return m, nil
		}
		switch m.formType {
		case "client":
			if _, err := m.store.AddClient(name); err != nil {
				return m, statusCmd("Failed to add client", true)
			}
		case "project":
			if c, ok := m.selectedClient(); ok {
				if _, err := m.store.AddProject(c.ID, name); err != nil {
					return m, statusCmd("Failed to add project", true)
				}
			}
		}
		return m, m.refresh()
	}

	return m, cmd
}

func (m manageModel) view() string {
	w := m.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Client")
		if m.formType == "project" {
			title = titleStyle.Render("New Project")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	if m.viewingProjects {
		return m.renderProjectList(w)
	}
	return m.renderClientList(w)
}

func (m manageModel) renderClientList(w int) string {
	title := titleStyle.Render("Clients")

	if len(m.clients) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No clients yet. Press n to add one."),
		))
	}

	var rows []string
	rows = append(rows, title, "")
	for i, c := range m.clients {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		count := 0
		for _, p := range m.projects {
			if p.ClientID == c.ID {
				count++
			}
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s", cursor, c.Name))+
			mutedStyle.Render(fmt.Sprintf("%d projects", count)))
	}
	rows = append(rows, "", mutedStyle.Render("  n: new  d: delete  enter: projects"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m manageModel) renderProjectList(w int) string {
	c, ok := m.selectedClient()
	if !ok {
		return ""
	}
	title := titleStyle.Render(c.Name + " — Projects")
	projects := m.clientProjects()

	if len(projects) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No projects. Press n to add one."),
		))
	}

	var rows []string
	rows = append(rows, title, "")
	for i, p := range projects {
		cursor := "  "
		style := normalItemStyle
		if i == m.projectCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+p.Name))
	}
	rows = append(rows, "", mutedStyle.Render("  n: new project  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
