package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreDelete(t *testing.T) {
	dir := t.TempDir()

	t.Run("removes existing file", func(t *testing.T) {
		path := filepath.Join(dir, "abc123")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

		s := NewLocalStore(dir)
		require.NoError(t, s.Delete(context.Background(), "abc123"))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		s := NewLocalStore(dir)
		assert.NoError(t, s.Delete(context.Background(), "does-not-exist"))
	})

	t.Run("path traversal is contained", func(t *testing.T) {
		outside := filepath.Join(t.TempDir(), "victim")
		require.NoError(t, os.WriteFile(outside, []byte("data"), 0o600))

		s := NewLocalStore(dir)
		require.NoError(t, s.Delete(context.Background(), "../"+outside))

		_, err := os.Stat(outside)
		assert.NoError(t, err)
	})
}
