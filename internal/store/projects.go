package store

import (
	"fmt"

	"github.com/google/uuid"
)

func (s *Store) Projects() []Project {
	var projects []Project
	s.loadSlice(KeyProjects, &projects)
	return projects
}

func (s *Store) SaveProjects(projects []Project) error {
	return s.saveSlice(KeyProjects, projects)
}

func (s *Store) CreateProject(name, color string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("create project: empty name")
	}
	if color == "" {
		color = "#6C63FF"
	}
	p := Project{ID: uuid.NewString(), Name: name, Color: color}
	projects := append(s.Projects(), p)
	if err := s.SaveProjects(projects); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetProject(id string) (*Project, bool) {
	for _, p := range s.Projects() {
		if p.ID == id {
			return &p, true
		}
	}
	return nil, false
}

func (s *Store) UpdateProject(id, name, color string) error {
	projects := s.Projects()
	for i := range projects {
		if projects[i].ID == id {
			if name != "" {
				projects[i].Name = name
			}
			if color != "" {
				projects[i].Color = color
			}
			return s.SaveProjects(projects)
		}
	}
	return fmt.Errorf("update project %s: not found", id)
}

// DeleteProject removes a project and cascades to its tasks. The
// current-project reference is cleared when it pointed at the deleted
// project.
func (s *Store) DeleteProject(id string) error {
	projects := s.Projects()
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if err := s.SaveProjects(kept); err != nil {
		return err
	}

	tasks := s.Tasks()
	keptTasks := tasks[:0]
	for _, t := range tasks {
		if t.ProjectID != id {
			keptTasks = append(keptTasks, t)
		}
	}
	if err := s.SaveTasks(keptTasks); err != nil {
		return err
	}

	if s.CurrentProject() == id {
		if err := s.SetCurrentProject(""); err != nil {
			return err
		}
	}
	return nil
}
