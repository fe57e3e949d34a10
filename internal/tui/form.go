package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dkaraca/timecard/internal/service"
	"github.com/dkaraca/timecard/internal/store"
)

// entryForm collects SaveEntryData through a huh form. The same form
// backs saving a stopped timer, logging a manual entry, and editing an
// existing one; the field pointers survive bubbletea's value copies.
type entryForm struct {
	form *huh.Form

	clients  []store.Client
	projects []store.Project

	clientID    *string
	projectID   *string
	description *string
	date        *string
	startClock  *string
	endClock    *string

	editing *store.TimeEntry // nil when creating
}

func newEntryForm(clients []store.Client, projects []store.Project, seed service.SaveEntryData, editing *store.TimeEntry) *entryForm {
	clientID := seed.ClientID
	projectID := seed.ProjectID
	description := seed.Description
	date := seed.Date
	startClock := seed.StartTime
	endClock := seed.EndTime

	f := &entryForm{
		clients:     clients,
		projects:    projects,
		clientID:    &clientID,
		projectID:   &projectID,
		description: &description,
		date:        &date,
		startClock:  &startClock,
		endClock:    &endClock,
		editing:     editing,
	}

	clientOptions := make([]huh.Option[string], len(clients))
	for i, c := range clients {
		clientOptions[i] = huh.NewOption(c.Name, c.ID)
	}
	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.Name
	}
	projectOptions := make([]huh.Option[string], len(projects))
	for i, p := range projects {
		label := p.Name
		if cn, ok := clientNames[p.ClientID]; ok {
			label = fmt.Sprintf("%s / %s", cn, p.Name)
		}
		projectOptions[i] = huh.NewOption(label, p.ID)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Client").Options(clientOptions...).Value(f.clientID),
			huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(f.projectID),
			huh.NewInput().Title("Description").Value(f.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(f.date).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().Title("Start (HH:MM)").Value(f.startClock),
			huh.NewInput().Title("End (HH:MM)").Value(f.endClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return f
}

// data resolves the selected IDs to their display names so the entry
// carries denormalized copies.
func (f *entryForm) data() service.SaveEntryData {
	d := service.SaveEntryData{
		ClientID:    *f.clientID,
		ProjectID:   *f.projectID,
		Description: *f.description,
		Date:        *f.date,
		StartTime:   *f.startClock,
		EndTime:     *f.endClock,
	}
	for _, c := range f.clients {
		if c.ID == d.ClientID {
			d.ClientName = c.Name
			break
		}
	}
	for _, p := range f.projects {
		if p.ID == d.ProjectID {
			d.ProjectName = p.Name
			break
		}
	}
	return d
}
