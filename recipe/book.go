package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"masterbatch/composition"
)

// Book is the ordered set of recipes keyed by name. The zero value is not
// usable; call NewBook.
type Book struct {
	order   []string
	recipes map[string]Recipe
}

func NewBook() *Book {
	return &Book{recipes: map[string]Recipe{}}
}

func (b *Book) Len() int { return len(b.order) }

// Names returns recipe names in insertion order.
func (b *Book) Names() []string {
	return append([]string(nil), b.order...)
}

func (b *Book) Get(name string) (Recipe, bool) {
	r, ok := b.recipes[name]
	return r, ok
}

// Put inserts r or replaces the recipe with the same name in place.
func (b *Book) Put(r Recipe) {
	if _, exists := b.recipes[r.Name]; !exists {
		b.order = append(b.order, r.Name)
	}
	b.recipes[r.Name] = r
}

// Delete removes the named recipe and reports whether it existed.
func (b *Book) Delete(name string) bool {
	if _, ok := b.recipes[name]; !ok {
		return false
	}
	delete(b.recipes, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns every recipe in insertion order.
func (b *Book) All() []Recipe {
	out := make([]Recipe, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.recipes[name])
	}
	return out
}

// canonicalRecord is the only shape written to persisted state.
type canonicalRecord struct {
	Base        string                  `json:"base"`
	Ingredients composition.Composition `json:"ingredients"`
}

// MarshalJSON writes the canonical schema: an object keyed by recipe name in
// book order, each value holding the base name and the explicit ingredients.
func (b *Book) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range b.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(canonicalRecord{Base: r.BaseName(), Ingredients: r.Ingredients})
		if err != nil {
			return nil, composition.InRecipe(err, r.Name)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads every known record shape and normalises it; see record.
func (b *Book) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode recipes: %w", err)
	}
	fresh := NewBook()
	if tok == nil {
		*b = *fresh
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode recipes: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode recipes: %w", err)
		}
		name, _ := tok.(string)

		var rec record
		if err := dec.Decode(&rec); err != nil {
			var ce *composition.CompositionError
			if errors.As(err, &ce) {
				return composition.InRecipe(err, name)
			}
			return fmt.Errorf("decode recipe %q: %w", name, err)
		}
		if strings.TrimSpace(name) == "" {
			return ErrEmptyName
		}
		if _, dup := fresh.recipes[name]; dup {
			return fmt.Errorf("decode recipes: duplicate recipe %q", name)
		}

		r, err := rec.normalize(name)
		if err != nil {
			return err
		}
		fresh.Put(r)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode recipes: %w", err)
	}

	*b = *fresh
	return nil
}
