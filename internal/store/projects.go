package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const projectsKey = "projects"

func (s *Store) ListProjects() ([]Project, error) {
	var projects []Project
	if _, err := s.getJSON(projectsKey, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ProjectsForClient filters the project collection by owning client.
func (s *Store) ProjectsForClient(clientID string) ([]Project, error) {
	all, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	var out []Project
	for _, p := range all {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) AddProject(clientID, name string) (*Project, error) {
	projects, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := Project{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.setJSON(projectsKey, append(projects, p)); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProject(project Project) error {
	projects, err := s.ListProjects()
	if err != nil {
		return err
	}
	for i := range projects {
		if projects[i].ID == project.ID {
			project.UpdatedAt = time.Now().UTC()
			projects[i] = project
			return s.setJSON(projectsKey, projects)
		}
	}
	return fmt.Errorf("update project: no project with id %q", project.ID)
}

func (s *Store) DeleteProject(id string) error {
	projects, err := s.ListProjects()
	if err != nil {
		return err
	}
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if kept == nil {
		kept = []Project{}
	}
	return s.setJSON(projectsKey, kept)
}
