package composition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalJSON encodes c as a JSON object keyed by ingredient name, keeping
// ingredient order.
func (c Composition) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ing := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ing.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(ing.Percentage)
		if err != nil {
			return nil, &CompositionError{Ingredient: ing.Name, Err: err}
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of ingredient name to percentage in
// document order. A value that is not a finite non-negative JSON number fails
// with a CompositionError naming the ingredient; quoted numbers included.
func (c *Composition) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode ingredients: %w", err)
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode ingredients: expected object, got %v", tok)
	}

	out := Composition{}
	seen := map[string]struct{}{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode ingredients: %w", err)
		}
		name, _ := tok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode ingredient %q: %w", name, err)
		}
		if strings.TrimSpace(name) == "" {
			return &CompositionError{Err: ErrEmptyIngredient}
		}
		if _, dup := seen[name]; dup {
			return &CompositionError{Ingredient: name, Err: ErrDuplicateIngredient}
		}
		seen[name] = struct{}{}

		pct, err := Number(raw)
		if err != nil {
			return &CompositionError{Ingredient: name, Err: err}
		}
		out = append(out, Ingredient{Name: name, Percentage: pct})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode ingredients: %w", err)
	}

	*c = out
	return nil
}
