// Package metadata reads charm metadata.yaml files.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.MetadataReader = (*Reader)(nil)

// Reader parses metadata.yaml with gopkg.in/yaml.v3.
type Reader struct{}

// NewReader creates a metadata reader.
func NewReader() *Reader {
	return &Reader{}
}

type charmMetadata struct {
	Name        string         `yaml:"name"`
	Summary     string         `yaml:"summary"`
	Description string         `yaml:"description"`
	Requires    map[string]any `yaml:"requires"`
	Provides    map[string]any `yaml:"provides"`
	Peers       map[string]any `yaml:"peers"`
}

// Read parses metadata.yaml in charmDir.
func (r *Reader) Read(charmDir string) (*domain.CharmMetadata, error) {
	path := filepath.Join(charmDir, domain.MetadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading charm metadata: %w", err)
	}
	return Parse(data)
}

// Parse decodes metadata.yaml content.
func Parse(data []byte) (*domain.CharmMetadata, error) {
	var meta charmMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing charm metadata: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing charm metadata: %w", err)
	}

	return &domain.CharmMetadata{
		Name:        meta.Name,
		Summary:     meta.Summary,
		Description: meta.Description,
		Requires:    meta.Requires,
		Provides:    meta.Provides,
		Peers:       meta.Peers,
		Raw:         raw,
	}, nil
}
