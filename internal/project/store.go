// Package project persists Gridfinity projects as one JSON file per project
// plus a single-line pointer to the active project.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/banshee-data/gridfit/internal/fsutil"
	"github.com/banshee-data/gridfit/internal/security"
)

// File layout relative to the store root.
const (
	ProjectsDirName = "projects"
	ActiveFileName  = ".gridfinity-active"
	ConfigFileName  = "config.json"
)

var (
	// ErrProjectExists is returned by Create when the project directory exists.
	ErrProjectExists = errors.New("project already exists")
	// ErrProjectNotFound is returned when the project directory is missing.
	ErrProjectNotFound = errors.New("project does not exist")
	// ErrConfigNotFound is returned when the directory exists without config.json.
	ErrConfigNotFound = errors.New("project config not found")
)

// Project is the on-disk project configuration.
type Project struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// Find returns the component with the given name.
func (p *Project) Find(name string) (Component, bool) {
	for _, c := range p.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Upsert replaces the component with the same name in place, or appends it.
func (p *Project) Upsert(c Component) {
	for i := range p.Components {
		if p.Components[i].Name == c.Name {
			p.Components[i] = c
			return
		}
	}
	p.Components = append(p.Components, c)
}

// Summary is one entry of a project listing.
type Summary struct {
	Name   string
	Active bool
}

// Store reads and writes projects under Root. It assumes a single process
// and a single user: writes are whole-file overwrites without locking.
type Store struct {
	Root string
	FS   fsutil.FileSystem
}

// NewStore returns a store rooted at root on the OS filesystem.
func NewStore(root string) *Store {
	return &Store{Root: root, FS: fsutil.OSFileSystem{}}
}

// ProjectsDir returns the directory holding all project directories.
func (s *Store) ProjectsDir() string {
	return filepath.Join(s.Root, ProjectsDirName)
}

// ActivePath returns the path of the active-project pointer file.
func (s *Store) ActivePath() string {
	return filepath.Join(s.Root, ActiveFileName)
}

// Path returns the directory of the named project.
func (s *Store) Path(name string) string {
	return filepath.Join(s.ProjectsDir(), name)
}

// ComponentPath returns the path of a file inside a project directory.
func (s *Store) ComponentPath(name, file string) string {
	return filepath.Join(s.Path(name), file)
}

func (s *Store) configPath(name string) string {
	return filepath.Join(s.Path(name), ConfigFileName)
}

func (s *Store) validate(name string) error {
	if err := security.ValidateName("project", name); err != nil {
		return err
	}
	return security.ValidatePathWithinDirectory(s.Path(name), s.ProjectsDir())
}

// Exists reports whether the project directory exists.
func (s *Store) Exists(name string) bool {
	return fsutil.IsDir(s.FS, s.Path(name))
}

// Create writes an empty project and makes it the active one. It fails with
// ErrProjectExists if the project directory is already present.
func (s *Store) Create(name string) (*Project, error) {
	if err := s.validate(name); err != nil {
		return nil, err
	}
	if s.FS.Exists(s.Path(name)) {
		return nil, fmt.Errorf("project %q: %w", name, ErrProjectExists)
	}

	p := &Project{Name: name, Components: []Component{}}
	if err := s.Save(p); err != nil {
		return nil, err
	}
	if err := s.SetActive(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads a project's config. A missing directory is ErrProjectNotFound;
// a directory without config.json is ErrConfigNotFound.
func (s *Store) Load(name string) (*Project, error) {
	if err := s.validate(name); err != nil {
		return nil, err
	}
	if !s.Exists(name) {
		return nil, fmt.Errorf("project %q: %w", name, ErrProjectNotFound)
	}

	data, err := s.FS.ReadFile(s.configPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("project %q: %w", name, ErrConfigNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read project config: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project config %q: %w", name, err)
	}
	if p.Components == nil {
		p.Components = []Component{}
	}
	return &p, nil
}

// Save overwrites the project's config file, creating the directory.
func (s *Store) Save(p *Project) error {
	if err := s.validate(p.Name); err != nil {
		return err
	}
	if p.Components == nil {
		p.Components = []Component{}
	}

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := s.FS.MkdirAll(s.Path(p.Name), 0755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	if err := s.FS.WriteFile(s.configPath(p.Name), raw, 0644); err != nil {
		return fmt.Errorf("write project config: %w", err)
	}
	return nil
}

// AddComponent upserts c into the named project and saves it.
func (s *Store) AddComponent(name string, c Component) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p, err := s.Load(name)
	if err != nil {
		return err
	}
	p.Upsert(c)
	return s.Save(p)
}

// List returns all project directories sorted by name, flagging the active
// one. A missing projects directory is an empty listing.
func (s *Store) List() ([]Summary, error) {
	if !fsutil.IsDir(s.FS, s.ProjectsDir()) {
		return nil, nil
	}
	entries, err := s.FS.ReadDir(s.ProjectsDir())
	if err != nil {
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	active, err := s.Active()
	if err != nil {
		return nil, err
	}

	var out []Summary
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		out = append(out, Summary{Name: e.Name(), Active: e.Name() == active})
	}
	return out, nil
}

// Active returns the active project name, or "" when none is set.
func (s *Store) Active() (string, error) {
	data, err := s.FS.ReadFile(s.ActivePath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read active project: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetActive records name as the active project.
func (s *Store) SetActive(name string) error {
	if err := s.validate(name); err != nil {
		return err
	}
	if err := s.FS.WriteFile(s.ActivePath(), []byte(name), 0644); err != nil {
		return fmt.Errorf("write active project: %w", err)
	}
	return nil
}
