package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is matched by the error a RecipeState returns when nothing has
// been persisted yet.
var ErrNotFound = errors.New("recipe state not found")

// RecipeState holds the raw bytes of the whole recipe book in one backend.
type RecipeState interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// TestRecipeState is a simple in-memory implementation for testing
type TestRecipeState struct {
	mu      sync.Mutex
	data    []byte
	exists  bool
	loadErr error
	saveErr error
	saves   int
}

func NewTestRecipeState(data []byte) *TestRecipeState {
	return &TestRecipeState{data: data, exists: true}
}

// NewEmptyTestRecipeState behaves like a backend where nothing was saved yet.
func NewEmptyTestRecipeState() *TestRecipeState {
	return &TestRecipeState{}
}

func NewTestRecipeStateWithError() *TestRecipeState {
	return &TestRecipeState{loadErr: errors.New("disk unavailable"), saveErr: errors.New("disk unavailable")}
}

// NewTestRecipeStateWithSaveError loads data but refuses every save.
func NewTestRecipeStateWithSaveError(data []byte) *TestRecipeState {
	return &TestRecipeState{data: data, exists: true, saveErr: errors.New("disk full")}
}

// NewEmptyTestRecipeStateWithSaveError has nothing saved and refuses every save.
func NewEmptyTestRecipeStateWithSaveError() *TestRecipeState {
	return &TestRecipeState{saveErr: errors.New("disk full")}
}

func (t *TestRecipeState) Load(ctx context.Context) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loadErr != nil {
		return nil, t.loadErr
	}
	if !t.exists {
		return nil, ErrNotFound
	}
	return append([]byte(nil), t.data...), nil
}

func (t *TestRecipeState) Save(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saveErr != nil {
		return t.saveErr
	}
	t.data = append([]byte(nil), data...)
	t.exists = true
	t.saves++
	return nil
}

// Data returns the last saved bytes.
func (t *TestRecipeState) Data() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]byte(nil), t.data...)
}

// Saves counts successful saves.
func (t *TestRecipeState) Saves() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saves
}
