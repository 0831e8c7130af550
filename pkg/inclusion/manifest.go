package inclusion

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Manifest lists the page types a build ships, grouped by module.
type Manifest struct {
	Modules []ModuleManifest `yaml:"modules"`
}

type ModuleManifest struct {
	Name  string   `yaml:"name"`
	Types []string `yaml:"types,omitempty"`
}

// ParseManifest decodes a YAML manifest into a Registry.
func ParseManifest(data []byte) (*Registry, error) {
	var manifest Manifest
	if err := yaml.UnmarshalStrict(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse inclusion manifest: %w", err)
	}

	registry := NewRegistry()
	for i, module := range manifest.Modules {
		name := strings.TrimSpace(module.Name)
		if name == "" {
			return nil, fmt.Errorf("inclusion manifest: modules[%d] has no name", i)
		}
		registry.Register(name, module.Types...)
	}
	return registry, nil
}

// LoadManifest reads and parses the manifest at path. An empty path yields an empty registry.
func LoadManifest(fsys afero.Fs, path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(), nil
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inclusion manifest: %w", err)
	}
	return ParseManifest(data)
}
