package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecipeState(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{
			name:     "valid recipes file",
			filename: "recipes.json",
			data:     []byte(`{"Red PLA": {"base": "Base PLA", "ingredients": {"Red": 2.0}}}`),
		},
		{
			name:     "empty recipes file",
			filename: "empty.json",
			data:     []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)

			// Create the test file
			err := os.WriteFile(filePath, tt.data, 0644)
			require.NoError(t, err)

			recipeState := NewFileRecipeState(filePath)
			loadedData, err := recipeState.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.data, loadedData)
		})
	}

	t.Run("load nonexistent file", func(t *testing.T) {
		nonexistentPath := filepath.Join(tmpDir, "nonexistent.json")
		recipeState := NewFileRecipeState(nonexistentPath)
		_, err := recipeState.Load(context.Background())
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("save creates directories and replaces content", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "nested", "dir", "recipes.json")
		recipeState := NewFileRecipeState(filePath)
		ctx := context.Background()

		require.NoError(t, recipeState.Save(ctx, []byte(`{"a": 1}`)))
		require.NoError(t, recipeState.Save(ctx, []byte(`{}`)))

		got, err := recipeState.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), got)

		info, err := os.Stat(filePath)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm())

		entries, err := os.ReadDir(filepath.Dir(filePath))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp files must not be left behind")
	})

	t.Run("save into unwritable location", func(t *testing.T) {
		blocker := filepath.Join(tmpDir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		recipeState := NewFileRecipeState(filepath.Join(blocker, "recipes.json"))
		err := recipeState.Save(context.Background(), []byte(`{}`))
		assert.Error(t, err)
	})
}

func TestTestRecipeState(t *testing.T) {
	ctx := context.Background()

	t.Run("empty state reports not found", func(t *testing.T) {
		st := NewEmptyTestRecipeState()
		_, err := st.Load(ctx)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, st.Save(ctx, []byte(`{}`)))
		got, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), got)
		assert.Equal(t, 1, st.Saves())
	})

	t.Run("errors", func(t *testing.T) {
		st := NewTestRecipeStateWithError()
		_, err := st.Load(ctx)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Error(t, st.Save(ctx, nil))

		st = NewTestRecipeStateWithSaveError([]byte(`{}`))
		_, err = st.Load(ctx)
		assert.NoError(t, err)
		assert.Error(t, st.Save(ctx, []byte(`{"x": {}}`)))
		assert.Equal(t, []byte(`{}`), st.Data())
		assert.Zero(t, st.Saves())
	})
}
