package recipe

import (
	"fmt"
	"strings"

	"masterbatch/composition"
)

// DraftEntry is one ingredient row as entered by a user. Value is whatever the
// input widget produced: a number, a json.Number or text.
type DraftEntry struct {
	Name  string
	Value any
}

// Draft is the caller-owned list of ingredient rows being edited. The engine
// never keeps it.
type Draft []DraftEntry

// Composition converts the draft into a composition. Rows without a name are
// skipped as unfilled; every other row must carry a finite non-negative number
// and a unique name.
func (d Draft) Composition() (composition.Composition, error) {
	out := make(composition.Composition, 0, len(d))
	seen := make(map[string]struct{}, len(d))
	for _, e := range d {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, &composition.CompositionError{Ingredient: name, Err: composition.ErrDuplicateIngredient}
		}
		seen[name] = struct{}{}

		pct, err := composition.Percentage(e.Value)
		if err != nil {
			return nil, &composition.CompositionError{Ingredient: name, Err: err}
		}
		out = append(out, composition.Ingredient{Name: name, Percentage: pct})
	}
	return out, nil
}

// ParseDraftEntry parses a "Name=Percentage" pair as given on a command line.
// The last '=' separates the two, so names may contain '='.
func ParseDraftEntry(s string) (DraftEntry, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return DraftEntry{}, fmt.Errorf("ingredient %q: expected Name=Percentage", s)
	}
	return DraftEntry{Name: strings.TrimSpace(s[:i]), Value: strings.TrimSpace(s[i+1:])}, nil
}
