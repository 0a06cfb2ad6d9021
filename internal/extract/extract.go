// Package extract mines product records out of scraped legacy listing pages.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dgallion1/sitegen/internal/catalog"
	"github.com/dgallion1/sitegen/internal/config"
	"go.uber.org/zap"
)

// ErrNoContentRoot means the scraped content directory does not exist.
var ErrNoContentRoot = errors.New("content root not found")

// Extractor walks a directory of category listings and emits product records.
type Extractor struct {
	cfg      config.ExtractConfig
	siteRoot string
	listing  string
	log      *zap.SugaredLogger
}

func NewExtractor(cfg config.Config, log *zap.SugaredLogger) *Extractor {
	return &Extractor{
		cfg:      cfg.Extract,
		siteRoot: cfg.Root,
		listing:  cfg.ListingFile,
		log:      log,
	}
}

// Run scans every category directory under root in lexical order. Records are
// returned in discovery order and are not deduplicated.
func (e *Extractor) Run(root string) ([]catalog.ProductRecord, Stats, error) {
	var stats Stats

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, fmt.Errorf("%w: %s", ErrNoContentRoot, root)
		}
		return nil, stats, fmt.Errorf("stat content root: %w", err)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("%w: %s is not a directory", ErrNoContentRoot, root)
	}

	var records []catalog.ProductRecord
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == root {
			return nil
		}

		category, ok := e.Category(d.Name())
		if !ok {
			e.log.Debugw("skipping non-product section", "dir", d.Name())
			stats.SkippedDirs++
			return filepath.SkipDir
		}

		data, err := os.ReadFile(filepath.Join(p, e.listing))
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read listing %s: %w", p, err)
		}

		found := e.scanListing(string(data), category, e.imagePrefix(p), &stats)
		stats.addCategory(category, len(found))
		e.log.Infow("scanned category", "category", category, "records", len(found))
		records = append(records, found...)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}

	e.log.Infow("extraction complete",
		"categories", stats.Categories,
		"records", stats.Records,
		"untitled", stats.Untitled,
		"branded", stats.Branded,
		"default_images", stats.DefaultImages,
	)
	return records, stats, nil
}

// Category maps a directory name to its category label. ok is false for
// deny-listed sections.
func (e *Extractor) Category(dirName string) (string, bool) {
	if slices.Contains(e.cfg.DenyList, dirName) {
		return "", false
	}
	label := dirName
	for _, prefix := range e.cfg.CategoryPrefixes {
		label = strings.TrimPrefix(label, prefix)
	}
	if label == "" || slices.Contains(e.cfg.DenyList, label) {
		return "", false
	}
	return label, true
}

func (e *Extractor) scanListing(doc, category, imagePrefix string, stats *Stats) []catalog.ProductRecord {
	var out []catalog.ProductRecord
	for _, block := range Blocks(doc, e.cfg.BlockClass) {
		stats.Blocks++
		item, ok := ParseBlock(block)
		if !ok {
			stats.Untitled++
			continue
		}
		if e.cfg.BrandToken != "" && strings.Contains(item.Title, e.cfg.BrandToken) {
			stats.Branded++
			continue
		}

		image := item.Image
		switch {
		case image == "":
			image = e.cfg.PlaceholderImage
			stats.DefaultImages++
		case catalog.IsLocalPath(image):
			image = path.Join(imagePrefix, image)
		}

		out = append(out, catalog.ProductRecord{
			Category: category,
			Title:    item.Title,
			Link:     item.Link,
			Image:    image,
		})
	}
	return out
}

// imagePrefix is the listing directory relative to the site root, in URL form.
func (e *Extractor) imagePrefix(dir string) string {
	rel, err := filepath.Rel(e.siteRoot, dir)
	if err != nil {
		rel = dir
	}
	return filepath.ToSlash(rel)
}
