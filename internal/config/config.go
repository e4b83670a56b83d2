// Package config loads the CLI's project registry. The engine itself never
// reads configuration; the CLI resolves a project here and hands the engine
// a root and a merged exclusion set.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the project registry: a global exclusion list plus named
// projects, each with its own root and exclusions.
type Config struct {
	CurrentProject string                   `yaml:"current_project"`
	Excluded       []string                 `yaml:"excluded"`
	Projects       map[string]ProjectConfig `yaml:"projects"`
}

// ProjectConfig describes one project directory a session can be confined to.
type ProjectConfig struct {
	Root     string   `yaml:"root"`
	Excluded []string `yaml:"excluded"`
}

// DefaultConfig returns a registry with no projects and the exclusions that
// apply to virtually every project.
func DefaultConfig() *Config {
	return &Config{
		Excluded: []string{
			".git/**",
			"node_modules/**",
			"**/*.env",
			"**/*.pem",
		},
		Projects: map[string]ProjectConfig{},
	}
}

// Load reads the registry from the given path, falling back to default
// locations when path is empty.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	paths := []string{path}
	if path == "" {
		paths = []string{
			"./editor4ai.yaml",
			filepath.Join(homeDir(), ".config", "editor4ai", "config.yaml"),
		}
	}

	var loaded bool

	for _, p := range paths {
		if p == "" {
			continue
		}

		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", p, err)
		}

		loaded = true

		break
	}

	if !loaded && path != "" {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	return cfg, nil
}

// Project resolves a named project (or the configured current project when
// name is empty) into its root and the merged global + per-project
// exclusion patterns.
func (c *Config) Project(name string) (root string, excluded []string, err error) {
	if name == "" {
		name = c.CurrentProject
	}

	if name == "" {
		return "", nil, fmt.Errorf("no project selected and no current_project configured")
	}

	project, ok := c.Projects[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown project %q", name)
	}

	if project.Root == "" {
		return "", nil, fmt.Errorf("project %q has no root configured", name)
	}

	excluded = make([]string, 0, len(c.Excluded)+len(project.Excluded))
	excluded = append(excluded, c.Excluded...)
	excluded = append(excluded, project.Excluded...)

	return project.Root, excluded, nil
}

// Names returns the configured project names in no particular order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}

	return names
}

func homeDir() string {
	home, _ := os.UserHomeDir()

	return home
}
