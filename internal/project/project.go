package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eljojo/riscpad/internal/editor"
)

const (
	ProjectFileName   = "riscpad.yml"
	DefaultSourceFile = "main.asm"
	ListingFileName   = "listing.txt"
)

// SavedFile records a source file written by Save.
type SavedFile struct {
	File     string    `yaml:"file"`
	Checksum string    `yaml:"checksum"`
	At       time.Time `yaml:"at"`
}

// Project represents a riscpad workspace configuration.
type Project struct {
	Name       string      `yaml:"name"`
	Created    string      `yaml:"created"`
	Source     string      `yaml:"source,omitempty"`      // Source file opened by default (relative to the workspace)
	Language   string      `yaml:"language,omitempty"`    // UI language (e.g. "en", "es")
	LoadPolicy string      `yaml:"load_policy,omitempty"` // "cancel-previous" or "reject-while-in-flight"
	Saved      []SavedFile `yaml:"saved,omitempty"`

	// Path is the directory containing this project (not serialized)
	Path string `yaml:"-"`
}

// Load reads a project from a directory.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}

	p.Path = dir
	return &p, nil
}

// Save writes the project configuration to disk.
func (p *Project) Save() error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}

	path := filepath.Join(p.Path, ProjectFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}

	return nil
}

// Validate checks that the project configuration is valid.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if filepath.IsAbs(p.Source) {
		return fmt.Errorf("source must be relative to the workspace, got %s", p.Source)
	}
	if _, err := editor.ParseLoadPolicy(p.LoadPolicy); err != nil {
		return err
	}
	for i, s := range p.Saved {
		if s.File == "" {
			return fmt.Errorf("saved file %d: file is required", i+1)
		}
	}
	return nil
}

// Policy returns the configured load policy.
func (p *Project) Policy() editor.LoadPolicy {
	policy, err := editor.ParseLoadPolicy(p.LoadPolicy)
	if err != nil {
		return editor.CancelPrevious
	}
	return policy
}

// SourcePath returns the path to the default source file.
func (p *Project) SourcePath() string {
	src := p.Source
	if src == "" {
		src = DefaultSourceFile
	}
	return filepath.Join(p.Path, src)
}

// SavePath returns where Save writes its export.
func (p *Project) SavePath() string {
	return filepath.Join(p.Path, editor.SaveFileName)
}

// ListingPath returns the default path of the assembled listing.
func (p *Project) ListingPath() string {
	return filepath.Join(p.Path, ListingFileName)
}

// WriteExport writes exp into the workspace and records its checksum,
// replacing any earlier record for the same file.
func (p *Project) WriteExport(exp editor.Export) (string, error) {
	path := filepath.Join(p.Path, exp.Name)
	if err := os.WriteFile(path, exp.Data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", exp.Name, err)
	}

	rec := SavedFile{
		File:     exp.Name,
		Checksum: Checksum(exp.Data),
		At:       time.Now().UTC(),
	}
	replaced := false
	for i := range p.Saved {
		if p.Saved[i].File == rec.File {
			p.Saved[i] = rec
			replaced = true
		}
	}
	if !replaced {
		p.Saved = append(p.Saved, rec)
	}

	if err := p.Save(); err != nil {
		return "", err
	}
	return path, nil
}

// FindProjectDir searches up the directory tree for a riscpad.yml file.
// Returns the directory containing the project, or an error if not found.
func FindProjectDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		projectPath := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(projectPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("no %s found in %s or any parent directory", ProjectFileName, startDir)
		}
		dir = parent
	}
}

// New creates a new workspace in dir and writes riscpad.yml.
func New(dir, name string) (*Project, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	p := &Project{
		Name:    name,
		Created: time.Now().Format("2006-01-02"),
		Source:  DefaultSourceFile,
		Path:    dir,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := p.Save(); err != nil {
		return nil, err
	}

	return p, nil
}
