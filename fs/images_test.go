package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/newsdigest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		position int
		want     string
	}{
		{position: 0, want: "article_1.jpg"},
		{position: 1, want: "article_2.jpg"},
		{position: 4, want: "article_5.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.ImageFilename(tt.position))
		})
	}
}

func TestImageStore_Path(t *testing.T) {
	t.Parallel()

	store := fs.NewImageStore("article_images")

	assert.Equal(t, filepath.Join("article_images", "article_3.jpg"), store.Path(2))
	assert.Equal(t, "article_images", store.Dir())
}

func TestImageStore_Prepare(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "article_images")
		store := fs.NewImageStore(dir)

		require.NoError(t, store.Prepare())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "article_images")
		store := fs.NewImageStore(dir)

		require.NoError(t, store.Prepare())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.jpg"), []byte("x"), 0644))
		require.NoError(t, store.Prepare())

		_, err := os.Stat(filepath.Join(dir, "keep.jpg"))
		assert.NoError(t, err, "existing files must survive a second Prepare")
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "article_1.jpg")

		n, err := fs.WriteFileAtomic(path, strings.NewReader("\xff\xd8jpeg"))

		require.NoError(t, err)
		assert.Equal(t, int64(6), n)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("\xff\xd8jpeg"), data)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "article_1.jpg")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		_, err := fs.WriteFileAtomic(path, strings.NewReader("new"))

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("failed read leaves existing file intact", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "article_1.jpg")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		_, err := fs.WriteFileAtomic(path, io.MultiReader(strings.NewReader("partial"), failingReader{}))

		require.Error(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file must be removed")
	})

	t.Run("failed read does not create file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "article_1.jpg")

		_, err := fs.WriteFileAtomic(path, failingReader{})

		require.Error(t, err)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}
