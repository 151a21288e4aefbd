package projects

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Project is one registered project: a display name and a base directory.
type Project struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Store persists the project list as a JSON file. Entries are deduplicated
// by resolved path; a missing or corrupt file reads as an empty list.
type Store struct {
	mu   sync.Mutex
	file string
}

func NewStore(file string) *Store {
	return &Store{file: file}
}

// List returns all known projects.
func (s *Store) List() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add registers a project, updating the name when the path is already
// known.
func (s *Store) Add(name, path string) ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := resolve(path)
	projects := s.load()
	for i := range projects {
		if resolve(projects[i].Path) == resolved {
			projects[i].Name = name
			return projects, s.save(projects)
		}
	}
	projects = append(projects, Project{Name: name, Path: resolved})
	return projects, s.save(projects)
}

// Remove drops the project with the given path.
func (s *Store) Remove(path string) ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := resolve(path)
	projects := s.load()
	kept := projects[:0]
	for _, p := range projects {
		if resolve(p.Path) != resolved {
			kept = append(kept, p)
		}
	}
	return kept, s.save(kept)
}

// Rename updates the display name of the project with the given path.
func (s *Store) Rename(path, newName string) ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := resolve(path)
	projects := s.load()
	for i := range projects {
		if resolve(projects[i].Path) == resolved {
			projects[i].Name = newName
			break
		}
	}
	return projects, s.save(projects)
}

func (s *Store) load() []Project {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return nil
	}
	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		slog.Warn("project list unreadable, starting empty", "file", s.file, "error", err)
		return nil
	}
	// Sanity filter: tolerate hand-edited files.
	valid := projects[:0]
	for _, p := range projects {
		if p.Path != "" {
			valid = append(valid, p)
		}
	}
	return valid
}

func (s *Store) save(projects []Project) error {
	if projects == nil {
		projects = []Project{}
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project list: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0755); err != nil {
		return fmt.Errorf("failed to create project list directory: %w", err)
	}
	if err := os.WriteFile(s.file, data, 0644); err != nil {
		return fmt.Errorf("failed to write project list: %w", err)
	}
	return nil
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
