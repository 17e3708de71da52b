package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/nosgen/internal/system"
)

// Write saves a project to a YAML file, creating the directory if needed
func Write(p *Project, path string) error {
	if p.Version == "" {
		p.Version = Version
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a project from a YAML file
func Read(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", path, err)
	}
	if p.Version != "" && p.Version != Version {
		return nil, fmt.Errorf("project %s has unsupported version %q", path, p.Version)
	}

	return &p, nil
}

// GeneratePath creates a timestamped project filename in dir
func GeneratePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("project_%s.yaml", timestamp))
}

// FindLatest finds the most recently modified project file in dir
func FindLatest(dir string) (string, error) {
	return system.FindLatest(dir, ".yaml", ".yml")
}
