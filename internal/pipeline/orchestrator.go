// Package pipeline runs the generation stages and writes their output.
package pipeline

import (
	"fmt"
	"os"

	"github.com/dgallion1/sitegen/internal/catalog"
	"github.com/dgallion1/sitegen/internal/chrome"
	"github.com/dgallion1/sitegen/internal/config"
	"github.com/dgallion1/sitegen/internal/extract"
	"github.com/dgallion1/sitegen/internal/listing"
	"github.com/dgallion1/sitegen/internal/reconcile"
	"github.com/dgallion1/sitegen/internal/splice"
	"go.uber.org/zap"
)

// Orchestrator wires the stages together. Each Build method works in memory;
// the stage methods (Extract, Compose, ...) also persist their output.
type Orchestrator struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	run    *Run
	writer *Writer
}

func NewOrchestrator(cfg config.Config, log *zap.SugaredLogger) *Orchestrator {
	run := NewRun()
	log = log.With("run_id", run.ID)
	return &Orchestrator{
		cfg:    cfg,
		log:    log,
		run:    run,
		writer: NewWriter(cfg.Root, log),
	}
}

// Run returns the run being tracked.
func (o *Orchestrator) Run() *Run {
	return o.run
}

func (o *Orchestrator) readFile(rel string) (string, error) {
	data, err := os.ReadFile(o.cfg.Path(rel))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rel, err)
	}
	return string(data), nil
}

func (o *Orchestrator) write(rel string, data []byte) error {
	before, unchanged := o.writer.Written, o.writer.Unchanged
	_, err := o.writer.Write(rel, data)
	o.run.AddWrites(o.writer.Written-before, o.writer.Unchanged-unchanged)
	return err
}

func (o *Orchestrator) writePages(pages []chrome.Page) error {
	before, unchanged := o.writer.Written, o.writer.Unchanged
	err := o.writer.WritePages(pages)
	o.run.AddWrites(o.writer.Written-before, o.writer.Unchanged-unchanged)
	return err
}

func (o *Orchestrator) fail(err error) error {
	o.run.Fail(err)
	o.log.Errorw("run failed", "phase", o.run.Phase, "error", err)
	return err
}

// ExtractRecords mines records from the content directory, in discovery order.
func (o *Orchestrator) ExtractRecords() ([]catalog.ProductRecord, extract.Stats, error) {
	o.run.SetStatus(StatusExtracting, "scanning category listings")
	records, stats, err := extract.NewExtractor(o.cfg, o.log).Run(o.cfg.Path(o.cfg.ContentDir))
	if err != nil {
		return nil, stats, err
	}
	o.run.Progress.RecordsExtracted = len(records)
	return records, stats, nil
}

// LoadRecords reads the interchange file, deduplicated.
func (o *Orchestrator) LoadRecords() ([]catalog.ProductRecord, error) {
	records, err := catalog.Load(o.cfg.Path(o.cfg.RecordsFile))
	if err != nil {
		return nil, err
	}
	o.run.Progress.RecordsLoaded = len(records)
	return records, nil
}

// BuildPages renders one detail page per record.
func (o *Orchestrator) BuildPages(records []catalog.ProductRecord) ([]chrome.Page, *catalog.LinkMapping, error) {
	o.run.SetStatus(StatusComposing, "rendering detail pages")
	tmpl, err := o.readFile(o.cfg.TemplateFile)
	if err != nil {
		return nil, nil, err
	}
	c, err := chrome.NewCompositor(tmpl, o.cfg, o.log)
	if err != nil {
		return nil, nil, err
	}
	pages, mapping, err := c.Build(records)
	if err != nil {
		return nil, nil, err
	}
	o.run.AddPages(len(pages))
	return pages, mapping, nil
}

// BuildIndex renders the product index page with legacy links.
func (o *Orchestrator) BuildIndex(records []catalog.ProductRecord) (string, error) {
	o.run.SetStatus(StatusListing, "rendering product index")
	tmpl, err := o.readFile(o.cfg.TemplateFile)
	if err != nil {
		return "", err
	}
	doc, err := listing.NewGenerator(o.cfg, o.log).Build(tmpl, records)
	if err != nil {
		return "", err
	}
	o.run.AddPages(1)
	return doc, nil
}

// ReconcileIndex points the index links at the generated pages.
func (o *Orchestrator) ReconcileIndex(doc string, records []catalog.ProductRecord, mapping *catalog.LinkMapping) (string, reconcile.Report) {
	o.run.SetStatus(StatusReconciling, "rewriting index links")
	out, rep := reconcile.New(o.cfg.ProductsDir, o.log).Reconcile(doc, records, mapping)
	o.run.Progress.LinksReconciled = rep.Reconciled()
	o.run.Progress.LinksUnmatched = len(rep.Unmatched)
	return out, rep
}

// BuildStaticPages splices the configured static pages.
func (o *Orchestrator) BuildStaticPages() (splice.Result, error) {
	o.run.SetStatus(StatusSplicing, "splicing static pages")
	ref, err := o.readFile(o.cfg.Splice.ReferenceFile)
	if err != nil {
		return splice.Result{}, err
	}
	res, err := splice.New(o.cfg, o.log).Build(ref)
	if err != nil {
		return splice.Result{}, err
	}
	o.run.AddPages(len(res.Pages))
	return res, nil
}

func (o *Orchestrator) complete() {
	o.run.SetStatus(StatusCompleted, "done")
	snap := o.run.Snapshot()
	o.log.Infow("run completed",
		"written", snap.Progress.FilesWritten,
		"unchanged", snap.Progress.FilesUnchanged,
		"elapsed", snap.Elapsed,
	)
}

// Extract scans the content directory and writes the interchange file.
func (o *Orchestrator) Extract() (extract.Stats, error) {
	records, stats, err := o.ExtractRecords()
	if err != nil {
		return stats, o.fail(err)
	}
	data, err := catalog.Encode(records)
	if err != nil {
		return stats, o.fail(err)
	}
	if err := o.write(o.cfg.RecordsFile, data); err != nil {
		return stats, o.fail(err)
	}
	o.complete()
	return stats, nil
}

// Compose writes the detail pages for the records in the interchange file.
func (o *Orchestrator) Compose() (*catalog.LinkMapping, error) {
	records, err := o.LoadRecords()
	if err != nil {
		return nil, o.fail(err)
	}
	pages, mapping, err := o.BuildPages(records)
	if err != nil {
		return nil, o.fail(err)
	}
	if err := o.writePages(pages); err != nil {
		return nil, o.fail(err)
	}
	o.complete()
	return mapping, nil
}

// Listing writes the index page with legacy links.
func (o *Orchestrator) Listing() error {
	records, err := o.LoadRecords()
	if err != nil {
		return o.fail(err)
	}
	doc, err := o.BuildIndex(records)
	if err != nil {
		return o.fail(err)
	}
	if err := o.write(o.cfg.IndexFile, []byte(doc)); err != nil {
		return o.fail(err)
	}
	o.complete()
	return nil
}

// Reconcile rewrites the index page on disk in place.
func (o *Orchestrator) Reconcile() (reconcile.Report, error) {
	records, err := o.LoadRecords()
	if err != nil {
		return reconcile.Report{}, o.fail(err)
	}
	mapping, err := catalog.BuildMapping(records, o.cfg.ProductsDir)
	if err != nil {
		return reconcile.Report{}, o.fail(err)
	}
	doc, err := o.readFile(o.cfg.IndexFile)
	if err != nil {
		return reconcile.Report{}, o.fail(err)
	}
	out, rep := o.ReconcileIndex(doc, records, mapping)
	if err := o.write(o.cfg.IndexFile, []byte(out)); err != nil {
		return rep, o.fail(err)
	}
	o.complete()
	return rep, nil
}

// Splice writes the static pages.
func (o *Orchestrator) Splice() (splice.Result, error) {
	res, err := o.BuildStaticPages()
	if err != nil {
		return res, o.fail(err)
	}
	if err := o.writePages(res.Pages); err != nil {
		return res, o.fail(err)
	}
	o.complete()
	return res, nil
}

// Summary is what a full run produced.
type Summary struct {
	Stats  extract.Stats
	Report reconcile.Report
	Splice splice.Result
}

// All runs every stage. Everything is built in memory first, so a structural
// error in either template leaves the site root untouched.
func (o *Orchestrator) All() (Summary, error) {
	var sum Summary

	extracted, stats, err := o.ExtractRecords()
	if err != nil {
		return sum, o.fail(err)
	}
	sum.Stats = stats
	encoded, err := catalog.Encode(extracted)
	if err != nil {
		return sum, o.fail(err)
	}

	records := catalog.Dedup(extracted)
	o.run.Progress.RecordsLoaded = len(records)

	pages, mapping, err := o.BuildPages(records)
	if err != nil {
		return sum, o.fail(err)
	}
	index, err := o.BuildIndex(records)
	if err != nil {
		return sum, o.fail(err)
	}
	index, sum.Report = o.ReconcileIndex(index, records, mapping)

	sum.Splice, err = o.BuildStaticPages()
	if err != nil {
		return sum, o.fail(err)
	}

	if err := o.write(o.cfg.RecordsFile, encoded); err != nil {
		return sum, o.fail(err)
	}
	if err := o.writePages(pages); err != nil {
		return sum, o.fail(err)
	}
	if err := o.write(o.cfg.IndexFile, []byte(index)); err != nil {
		return sum, o.fail(err)
	}
	if err := o.writePages(sum.Splice.Pages); err != nil {
		return sum, o.fail(err)
	}

	o.complete()
	return sum, nil
}
