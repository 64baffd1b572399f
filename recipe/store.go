package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"masterbatch/storage"
)

// Store loads and saves the whole recipe book through a storage backend. It
// keeps nothing between calls: every operation reads the full book and every
// mutation writes it back.
type Store struct {
	state storage.RecipeState
}

func NewStore(state storage.RecipeState) *Store {
	return &Store{state: state}
}

// Load returns every persisted recipe. A backend with nothing saved yet, or an
// empty file, yields an empty book.
func (s *Store) Load(ctx context.Context) (*Book, error) {
	data, err := s.state.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewBook(), nil
	}

	book := NewBook()
	if err := json.Unmarshal(data, book); err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	return book, nil
}

// Save writes the full book, replacing whatever was persisted.
func (s *Store) Save(ctx context.Context, book *Book) error {
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Err: fmt.Errorf("encode recipes: %w", err)}
	}
	data = append(data, '\n')
	if err := s.state.Save(ctx, data); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

// EnsureInitialized persists an empty book when nothing exists yet. Existing
// content is left alone, even if it is malformed.
func (s *Store) EnsureInitialized(ctx context.Context) error {
	_, err := s.state.Load(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return s.Save(ctx, NewBook())
	default:
		return &StorageError{Op: "init", Err: err}
	}
}

// Get loads the book and returns the named recipe.
func (s *Store) Get(ctx context.Context, name string) (Recipe, error) {
	book, err := s.Load(ctx)
	if err != nil {
		return Recipe{}, err
	}
	r, ok := book.Get(name)
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %q", ErrRecipeNotFound, name)
	}
	return r, nil
}

// Put adds r or replaces the recipe with the same name. A recipe that fails
// Check is rejected before anything is read or written.
func (s *Store) Put(ctx context.Context, r Recipe) error {
	if err := r.Check(); err != nil {
		return err
	}
	book, err := s.Load(ctx)
	if err != nil {
		return err
	}
	book.Put(r)
	return s.Save(ctx, book)
}

// Delete removes the named recipe.
func (s *Store) Delete(ctx context.Context, name string) error {
	book, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if !book.Delete(name) {
		return fmt.Errorf("%w: %q", ErrRecipeNotFound, name)
	}
	return s.Save(ctx, book)
}
