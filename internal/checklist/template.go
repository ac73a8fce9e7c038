package checklist

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var defaultTemplatesFS embed.FS

// Template is a reusable checklist definition, loaded from YAML.
type Template struct {
	Name      string         `yaml:"name"`
	AppliesTo []string       `yaml:"applies_to"`
	Items     []TemplateItem `yaml:"items"`
}

// TemplateItem is one step in a template. Order in the file is the order
// the items are worked through.
type TemplateItem struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Details string `yaml:"details,omitempty"`
}

// Validate checks a parsed template for the invariants instantiation
// relies on.
func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template missing name")
	}
	if len(t.Items) == 0 {
		return fmt.Errorf("template %q has no items", t.Name)
	}
	seen := make(map[string]bool, len(t.Items))
	for i, item := range t.Items {
		if item.Key == "" {
			return fmt.Errorf("template %q item %d missing key", t.Name, i)
		}
		if item.Title == "" {
			return fmt.Errorf("template %q item %q missing title", t.Name, item.Key)
		}
		if seen[item.Key] {
			return fmt.Errorf("template %q has duplicate item key %q", t.Name, item.Key)
		}
		seen[item.Key] = true
	}
	return nil
}

// AppliesToType reports whether a template covers a puzzle type. An empty
// applies_to list means it covers everything.
func (t Template) AppliesToType(puzzleType string) bool {
	if len(t.AppliesTo) == 0 {
		return true
	}
	for _, pt := range t.AppliesTo {
		if pt == puzzleType {
			return true
		}
	}
	return false
}

// Registry holds the loaded templates by name.
type Registry struct {
	templates map[string]Template
}

// LoadRegistry parses the embedded default templates, then overlays any
// *.yaml files from overrideDir (same name replaces the default).
// overrideDir may be empty.
func LoadRegistry(overrideDir string) (*Registry, error) {
	reg := &Registry{templates: make(map[string]Template)}

	if err := reg.loadFS(defaultTemplatesFS, "templates"); err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}

	if overrideDir != "" {
		if err := reg.loadFS(os.DirFS(overrideDir), "."); err != nil {
			return nil, fmt.Errorf("template overrides in %s: %w", overrideDir, err)
		}
	}
	return reg, nil
}

func (reg *Registry) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		var tmpl Template
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if err := tmpl.Validate(); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		reg.templates[tmpl.Name] = tmpl
	}
	return nil
}

// Get returns a template by name.
func (reg *Registry) Get(name string) (Template, bool) {
	t, ok := reg.templates[name]
	return t, ok
}

// Names returns the registered template names.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.templates))
	for name := range reg.templates {
		names = append(names, name)
	}
	return names
}
