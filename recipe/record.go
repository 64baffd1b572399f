package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"masterbatch/composition"
)

// record is a persisted recipe as found on disk. Older files differ in how the
// base is kept:
//
//	"base": "Base PLA"                             canonical
//	"base": {"name": "Base PLA", "percentage": 97} nested, percentage ignored
//	no "base" field                                 see inlineBase, else DefaultBaseName
//
// Some files also list the base inside "ingredients"; that entry is dropped
// because the base share is always derived.
type record struct {
	Base        json.RawMessage         `json:"base"`
	Ingredients composition.Composition `json:"ingredients"`
}

type nestedBase struct {
	Name string `json:"name"`
}

func (rec record) normalize(name string) (Recipe, error) {
	base, err := rec.baseName()
	if err != nil {
		return Recipe{}, fmt.Errorf("decode recipe %q: %w", name, err)
	}
	if base == "" {
		base = rec.inlineBase()
	}

	r := Recipe{
		Name:        name,
		Base:        base,
		Ingredients: rec.Ingredients.Without(base),
	}
	if r.Ingredients == nil {
		r.Ingredients = composition.Composition{}
	}
	return r, nil
}

func (rec record) baseName() (string, error) {
	raw := bytes.TrimSpace(rec.Base)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var name string
	if raw[0] == '{' {
		var nb nestedBase
		if err := json.Unmarshal(raw, &nb); err != nil {
			return "", fmt.Errorf("base: %w", err)
		}
		name = nb.Name
	} else if err := json.Unmarshal(raw, &name); err != nil {
		return "", fmt.Errorf("base: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		return DefaultBaseName, nil
	}
	return name, nil
}

// inlineBase recovers the base of a record saved without a "base" field. When
// the ingredients make up a whole mixture and exactly one of them is named like
// a base ("Base PETG"), that one is the base. Anything else gets
// DefaultBaseName.
func (rec record) inlineBase() string {
	if math.Abs(rec.Ingredients.Sum()-composition.Full) > inlineTolerance {
		return DefaultBaseName
	}
	found := ""
	for _, ing := range rec.Ingredients {
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(ing.Name)), "base") {
			continue
		}
		if found != "" {
			return DefaultBaseName
		}
		found = ing.Name
	}
	if found == "" {
		return DefaultBaseName
	}
	return found
}

const inlineTolerance = 0.01
