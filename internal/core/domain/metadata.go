package domain

// MetadataFile is the charm metadata file name inside the charm directory.
const MetadataFile = "metadata.yaml"

// CharmMetadata is the subset of metadata.yaml the hook environment uses.
// Raw keeps the whole document.
type CharmMetadata struct {
	Name        string
	Summary     string
	Description string
	Requires    map[string]any
	Provides    map[string]any
	Peers       map[string]any
	Raw         map[string]any
}

// RelationTypes returns the relation names declared under requires,
// provides and peers, in that order.
func (m *CharmMetadata) RelationTypes() []string {
	var types []string
	for _, section := range []map[string]any{m.Requires, m.Provides, m.Peers} {
		types = append(types, sortedKeys(section)...)
	}
	return types
}
