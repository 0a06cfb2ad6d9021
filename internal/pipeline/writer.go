package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dgallion1/sitegen/internal/chrome"
	"go.uber.org/zap"
)

// Writer puts generated files under the site root. Files whose content hash
// already matches are left untouched.
type Writer struct {
	root string
	log  *zap.SugaredLogger

	Written   int
	Unchanged int
}

func NewWriter(root string, log *zap.SugaredLogger) *Writer {
	return &Writer{root: root, log: log}
}

// Write stores data at rel (slash-separated, relative to the root) and
// reports whether the file changed.
func (w *Writer) Write(rel string, data []byte) (bool, error) {
	path := filepath.Join(w.root, filepath.FromSlash(rel))

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if ContentHashHex(existing) == ContentHashHex(data) {
			w.Unchanged++
			w.log.Debugw("unchanged", "path", rel)
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", rel, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", rel, err)
	}
	w.Written++
	w.log.Debugw("wrote", "path", rel, "bytes", len(data))
	return true, nil
}

// WritePages writes every page, stopping at the first failure.
func (w *Writer) WritePages(pages []chrome.Page) error {
	for _, p := range pages {
		if _, err := w.Write(p.Path, []byte(p.HTML)); err != nil {
			return err
		}
	}
	return nil
}
