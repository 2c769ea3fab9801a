package model

// Category is one entry of the annotation taxonomy. The taxonomy is an
// ordered sequence: output columns are keyed by Position, never by the
// order the model happens to emit labels in.
type Category struct {
	Name     string `json:"name"`     // Fixed display name
	Position int    `json:"position"` // 1-based ordinal in the taxonomy
}

// Taxonomy is the fixed, ordered list of categories for a run
type Taxonomy []Category

// NewTaxonomy builds a taxonomy from an ordered list of category names
func NewTaxonomy(names []string) Taxonomy {
	tax := make(Taxonomy, 0, len(names))
	for i, name := range names {
		tax = append(tax, Category{Name: name, Position: i + 1})
	}
	return tax
}

// Names returns the category names in taxonomy order
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// DefaultFrames is the default corruption-frame taxonomy. The wording is a
// configuration input; any ordered list of names may be supplied instead.
func DefaultFrames() []string {
	return []string{
		"Foreign influence threat",
		"Systemic institutional corruption",
		"Elite collusion",
		"Politicized investigations",
		"Authoritarian overreach",
		"Judicial loopholes enabling corruption",
		"Public outrage and call for reform",
	}
}
