// Package manifest loads the YAML file describing a multi-contract
// analysis: which contracts to analyse, where their sources live, and the
// optional per-contract app spec and original Solidity source.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Entry describes one contract in a manifest. Source is required; AppSpec
// and Solidity are optional artifact paths. Relative paths are resolved
// against the manifest's directory.
type Entry struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	AppSpec  string `yaml:"app_spec"`
	Solidity string `yaml:"solidity"`
}

// Manifest is a parsed multi-contract manifest.
type Manifest struct {
	Contracts []Entry `yaml:"contracts"`
}

// Load reads and validates a manifest file. An empty entry name is kept
// empty so the analyzer can fall back to the declared class name.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Contracts) == 0 {
		return nil, fmt.Errorf("manifest %s: no contracts listed", path)
	}

	dir := filepath.Dir(path)
	for i := range m.Contracts {
		e := &m.Contracts[i]
		if e.Source == "" {
			return nil, fmt.Errorf("manifest %s: contract %d has no source", path, i)
		}
		e.Source = resolve(dir, e.Source)
		if e.AppSpec != "" {
			e.AppSpec = resolve(dir, e.AppSpec)
		}
		if e.Solidity != "" {
			e.Solidity = resolve(dir, e.Solidity)
		}
	}

	return &m, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
