package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/sitegen/internal/chrome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWriter_WriteAndSkipUnchanged(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, zaptest.NewLogger(t).Sugar())

	changed, err := w.Write("products/widget.html", []byte("<p>v1</p>"))
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(filepath.Join(root, "products", "widget.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>v1</p>", string(got))

	info, err := os.Stat(filepath.Join(root, "products", "widget.html"))
	require.NoError(t, err)

	changed, err = w.Write("products/widget.html", []byte("<p>v1</p>"))
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := os.Stat(filepath.Join(root, "products", "widget.html"))
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())

	changed, err = w.Write("products/widget.html", []byte("<p>v2</p>"))
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 2, w.Written)
	assert.Equal(t, 1, w.Unchanged)
}

func TestWriter_WritePages(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, zaptest.NewLogger(t).Sugar())

	pages := []chrome.Page{
		{Path: "about.html", HTML: "about"},
		{Path: "products/a.html", HTML: "a"},
	}
	require.NoError(t, w.WritePages(pages))
	require.NoError(t, w.WritePages(pages))

	assert.Equal(t, 2, w.Written)
	assert.Equal(t, 2, w.Unchanged)
	assert.FileExists(t, filepath.Join(root, "about.html"))
	assert.FileExists(t, filepath.Join(root, "products", "a.html"))
}

func TestWriter_RootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	w := NewWriter(root, zaptest.NewLogger(t).Sugar())
	_, err := w.Write("about.html", []byte("about"))
	assert.Error(t, err)
}
