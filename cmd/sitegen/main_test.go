package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		siteRoot, configPath, verbose = "", "", false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))

	l, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}

func TestNavCommand(t *testing.T) {
	root := t.TempDir()
	page := `<ul>
<li><a href="index.html" data-depth="0"><span class="menu-label">Home</span></a></li>
<li><a href="product.html" data-depth="0"><span class="menu-label">Products</span></a></li>
</ul>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "product.html"), []byte(page), 0o644))

	out, err := execute(t, "nav", "--root", root, "--config", filepath.Join(root, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Home\nProducts\n", out)
}

func TestVerifyCommand_BrokenLinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "product.html"),
		[]byte(`<a href="products/gone.html">Gone</a>`), 0o644))

	out, err := execute(t, "verify", "--root", root, "--config", filepath.Join(root, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "missing: products/gone.html")
}

func TestCommandsRejectArguments(t *testing.T) {
	_, err := execute(t, "extract", "extra", "--root", t.TempDir())
	assert.Error(t, err)
}
