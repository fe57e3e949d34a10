package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dkaraca/timecard/internal/service"
	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timer"
	"github.com/dkaraca/timecard/internal/tui"
)

func main() {
	dbFlag := flag.String("db", "", "path to the database file")
	flag.Parse()

	dbPath := *dbFlag
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	user, err := currentUser(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	engine := timer.NewEngine(s)
	if err := engine.Restore(); err != nil {
		fmt.Fprintf(os.Stderr, "error restoring timer: %v\n", err)
		os.Exit(1)
	}

	svc := service.NewEntries(s, user.ID, user.FullName, engine.Reset)

	app := tui.NewApp(s, engine, svc, user.FullName)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// currentUser restores the saved session, or asks who is tracking time
// on first run.
func currentUser(s *store.Store) (*store.User, error) {
	user, err := s.LoadSession()
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	var name, email string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your Name").
				Value(&name).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Value(&email),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	user, err = s.RegisterUser(strings.TrimSpace(name), strings.TrimSpace(email), "employee")
	if err != nil {
		return nil, err
	}
	if err := s.SaveSession(user.ID); err != nil {
		return nil, err
	}
	return user, nil
}
