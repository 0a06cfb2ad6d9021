package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/sitegen/internal/audit"
	"github.com/dgallion1/sitegen/internal/extract"
	"github.com/dgallion1/sitegen/internal/pipeline"
	"github.com/dgallion1/sitegen/internal/reconcile"
	"github.com/dgallion1/sitegen/internal/splice"
	"github.com/spf13/cobra"
)

func newOrchestrator() *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(cfg, logger.Sugar())
}

func printWrites(w io.Writer, o *pipeline.Orchestrator) {
	snap := o.Run().Snapshot()
	fmt.Fprintf(w, "Files: %d written, %d unchanged (run %s)\n",
		snap.Progress.FilesWritten, snap.Progress.FilesUnchanged, snap.ID)
}

func printStats(w io.Writer, s extract.Stats) {
	fmt.Fprintf(w, "Extracted %d records from %d categories (%d blocks, %d untitled, %d brand, %d default images, %d sections skipped)\n",
		s.Records, s.Categories, s.Blocks, s.Untitled, s.Branded, s.DefaultImages, s.SkippedDirs)
	if empty := s.Empty(); len(empty) > 0 {
		fmt.Fprintf(w, "Categories without records: %s\n", strings.Join(empty, ", "))
	}
}

func printReport(w io.Writer, r reconcile.Report) {
	fmt.Fprintf(w, "Reconciled %d of %d records (%d by link, %d by title, %d already linked), %d new-tab markers removed\n",
		r.Reconciled(), r.Records, r.ByLink, r.ByTitle, r.AlreadyLinked, r.TargetsStripped)
	for _, title := range r.Unmatched {
		fmt.Fprintf(w, "  unmatched: %s\n", title)
	}
}

func printSplice(w io.Writer, r splice.Result) {
	fmt.Fprintf(w, "Spliced %d pages into lines %d-%d (%d news items)\n",
		len(r.Pages), r.Bounds.Start+1, r.Bounds.End+1, r.NewsItems)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Mine product records from the category listings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		stats, err := o.Extract()
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), stats)
		printWrites(cmd.OutOrStdout(), o)
		return nil
	},
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Render one detail page per product record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		mapping, err := o.Compose()
		if err != nil {
			return err
		}
		for _, m := range mapping.Entries() {
			logger.Sugar().Debugw("mapped", "title", m.Title, "path", m.Path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d pages under %s/\n", mapping.Len(), cfg.ProductsDir)
		printWrites(cmd.OutOrStdout(), o)
		return nil
	},
}

var listingCmd = &cobra.Command{
	Use:   "listing",
	Short: "Render the product index page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		if err := o.Listing(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s with %d products\n", cfg.IndexFile, o.Run().Snapshot().Progress.RecordsLoaded)
		printWrites(cmd.OutOrStdout(), o)
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Point index links at the generated detail pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		rep, err := o.Reconcile()
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), rep)
		printWrites(cmd.OutOrStdout(), o)
		return nil
	},
}

var spliceCmd = &cobra.Command{
	Use:   "splice",
	Short: "Render the static pages into the reference page chrome",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		res, err := o.Splice()
		if err != nil {
			return err
		}
		printSplice(cmd.OutOrStdout(), res)
		printWrites(cmd.OutOrStdout(), o)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every product link on the index resolves",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := audit.Verify(cfg.Root, cfg.IndexFile, cfg.ProductsDir)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%d product links, %d resolved, %d missing, %d open in a new tab, %d orphan pages\n",
			res.Links, res.Resolved, len(res.Missing), len(res.WithTarget), len(res.Orphans))
		for _, m := range res.Missing {
			fmt.Fprintf(w, "  missing: %s\n", m)
		}
		for _, m := range res.WithTarget {
			fmt.Fprintf(w, "  new tab: %s\n", m)
		}
		if !res.OK() {
			return fmt.Errorf("%s has broken product links", cfg.IndexFile)
		}
		return nil
	},
}

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "List the top-level menu labels of the index page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(cfg.Path(cfg.IndexFile))
		if err != nil {
			return err
		}
		defer f.Close()

		labels, err := audit.NavLabels(f)
		if err != nil {
			return err
		}
		for _, l := range labels {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every stage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		sum, err := o.All()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		printStats(w, sum.Stats)
		fmt.Fprintf(w, "Generated %d detail pages\n", o.Run().Snapshot().Progress.RecordsLoaded)
		printReport(w, sum.Report)
		printSplice(w, sum.Splice)
		printWrites(w, o)
		return nil
	},
}
