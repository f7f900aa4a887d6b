package driven

import "github.com/custodia-labs/hookenv/internal/core/domain"

// MetadataReader loads charm metadata.
type MetadataReader interface {
	// Read parses the metadata file in charmDir.
	Read(charmDir string) (*domain.CharmMetadata, error)
}
