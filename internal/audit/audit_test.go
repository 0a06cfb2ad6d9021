package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestVerify(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "products", "widget.html"), "w")
	writeFile(t, filepath.Join(root, "products", "gadget.html"), "g")
	writeFile(t, filepath.Join(root, "products", "orphan.html"), "o")
	writeFile(t, filepath.Join(root, "product.html"), `<html><body>
<a href="products/widget.html"><img alt="Widget"></a>
<a href="products/widget.html">Widget</a>
<a href="products/gadget.html?ref=grid#top" target="_blank">Gadget</a>
<a href="products/missing.html">Missing</a>
<a href="https://legacy.example.com/x" target="_blank">Legacy</a>
<a href="contact.html">Contact</a>
</body></html>`)

	res, err := Verify(root, "product.html", "products")
	require.NoError(t, err)

	assert.Equal(t, 4, res.Links)
	assert.Equal(t, 3, res.Resolved)
	assert.Equal(t, []string{"products/missing.html"}, res.Missing)
	assert.Equal(t, []string{"products/gadget.html?ref=grid#top"}, res.WithTarget)
	assert.Equal(t, []string{"products/orphan.html"}, res.Orphans)
	assert.False(t, res.OK())
}

func TestVerify_Clean(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "products", "blue-film.html"), "b")
	writeFile(t, filepath.Join(root, "product.html"), `<a href="products/blue-film.html">Blue Film</a>`)

	res, err := Verify(root, "product.html", "products")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.Resolved)
	assert.Empty(t, res.Orphans)
}

func TestVerify_NoProductsDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "product.html"), `<a href="products/x.html">X</a>`)

	res, err := Verify(root, "product.html", "products")
	require.NoError(t, err)
	assert.Equal(t, []string{"products/x.html"}, res.Missing)
}

func TestVerify_MissingIndex(t *testing.T) {
	_, err := Verify(t.TempDir(), "product.html", "products")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNavLabels(t *testing.T) {
	page := `<nav><ul>
<li><a href="index.html" data-depth="0"><span class="menu-label"> Home </span></a>
  <ul><li><a href="x.html" data-depth="1"><span class="menu-label">Nested</span></a></li></ul>
</li>
<li><a href="product.html" data-depth="0"><i class="icon"></i><span class="menu-label">Products</span></a></li>
<li><a href="#" data-depth="0">No label</a></li>
<li><a href="contact.html" data-depth="0"><span class="menu-label">Contact Us</span></a></li>
</ul></nav>`

	labels, err := NavLabels(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "Products", "Contact Us"}, labels)
}
