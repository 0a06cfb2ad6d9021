package reconcile

import (
	"strings"
	"testing"

	"github.com/dgallion1/sitegen/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	return New("products", zaptest.NewLogger(t).Sugar())
}

func mustMapping(t *testing.T, records []catalog.ProductRecord) *catalog.LinkMapping {
	t.Helper()
	m, err := catalog.BuildMapping(records, "products")
	require.NoError(t, err)
	return m
}

func TestReconcile_Widget(t *testing.T) {
	records := []catalog.ProductRecord{{Category: "Tools", Title: "Widget", Link: "https://legacy/x"}}
	doc := `<ul><li><a href="https://legacy/x" target="_blank">Widget</a></li></ul>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Contains(t, out, `<a href="products/widget.html">Widget</a>`)
	assert.NotContains(t, out, "https://legacy/x")
	assert.NotContains(t, out, `target="_blank"`)
	assert.Equal(t, 1, rep.Records)
	assert.Equal(t, 1, rep.ByLink)
	assert.Equal(t, 1, rep.TargetsStripped)
	assert.Empty(t, rep.Unmatched)
	assert.Equal(t, 1, rep.Reconciled())
}

func TestReconcile_ReplacesEveryOccurrence(t *testing.T) {
	records := []catalog.ProductRecord{{Title: "Widget", Link: "https://legacy/x"}}
	doc := `<a href="https://legacy/x" target="_blank"><img alt="Widget"></a>
<h3 class="post-title"><a href="https://legacy/x" target="_blank">Widget</a></h3>
<script>var url = "https://legacy/x";</script>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Equal(t, 3, strings.Count(out, "products/widget.html"))
	assert.NotContains(t, out, "https://legacy/x")
	assert.Equal(t, 2, rep.TargetsStripped)
}

func TestReconcile_LeavesOtherLinksAlone(t *testing.T) {
	records := []catalog.ProductRecord{{Title: "Widget", Link: "https://legacy/x"}}
	doc := `<a href="https://legacy/x" target="_blank">Widget</a>
<a href="https://elsewhere.example.com" target="_blank">Partner</a>`

	out, _ := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Contains(t, out, `<a href="https://elsewhere.example.com" target="_blank">Partner</a>`)
	assert.Equal(t, 1, strings.Count(out, `target="_blank"`))
}

func TestReconcile_EscapedLink(t *testing.T) {
	records := []catalog.ProductRecord{{Title: "Widget", Link: "https://legacy/p?id=1&cat=2"}}
	doc := `<a href="https://legacy/p?id=1&amp;cat=2" target="_blank">Widget</a>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Equal(t, `<a href="products/widget.html">Widget</a>`, out)
	assert.Equal(t, 1, rep.ByLink)
}

func TestReconcile_TitleFallback(t *testing.T) {
	records := []catalog.ProductRecord{
		{Title: "Widget", Link: "#"},
		{Title: "Gears & Cogs", Link: ""},
	}
	doc := `<a href="https://moved/widget" target="_blank">Widget</a>
<a href="https://moved/gears" target="_blank">Gears &amp; Cogs</a>
<a href="#">Other</a>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Contains(t, out, `<a href="products/widget.html">Widget</a>`)
	assert.Contains(t, out, `<a href="products/gears-cogs.html">Gears &amp; Cogs</a>`)
	assert.Contains(t, out, `<a href="#">Other</a>`)
	assert.Equal(t, 0, rep.ByLink)
	assert.Equal(t, 2, rep.ByTitle)
	assert.Empty(t, rep.Unmatched)
}

func TestReconcile_TitleFallbackNeedsWholeText(t *testing.T) {
	records := []catalog.ProductRecord{
		{Title: "Blue Widget", Link: "https://legacy/blue"},
		{Title: "Widget", Link: "https://legacy/gone"},
	}
	doc := `<a href="https://legacy/blue" target="_blank">Blue Widget</a>
<a href="https://legacy/other" target="_blank">
    Widget
</a>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Contains(t, out, `<a href="products/blue-widget.html">Blue Widget</a>`)
	assert.Contains(t, out, `<a href="products/widget.html">
    Widget
</a>`)
	assert.NotContains(t, out, "legacy/")
	assert.Equal(t, 1, rep.ByLink)
	assert.Equal(t, 1, rep.ByTitle)
	assert.Empty(t, rep.Unmatched)
}

func TestReconcile_TitleFallbackIgnoresLongerTitles(t *testing.T) {
	records := []catalog.ProductRecord{{Title: "Widget", Link: "https://legacy/gone"}}
	doc := `<a href="https://legacy/blue" target="_blank">Blue Widget</a>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Equal(t, doc, out)
	assert.Equal(t, 0, rep.ByTitle)
	assert.Equal(t, []string{"Widget"}, rep.Unmatched)
}

func TestReconcile_FragmentLinkNeverUsedAsKey(t *testing.T) {
	records := []catalog.ProductRecord{{Title: "Widget", Link: "#"}}
	doc := `<a href="#">Top</a>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Equal(t, doc, out)
	assert.Equal(t, []string{"Widget"}, rep.Unmatched)
}

func TestReconcile_UnmatchedIsReported(t *testing.T) {
	records := []catalog.ProductRecord{
		{Title: "Widget", Link: "https://legacy/x"},
		{Title: "Gadget", Link: "https://legacy/missing"},
	}
	doc := `<a href="https://legacy/x" target="_blank">Widget</a>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))

	assert.Equal(t, `<a href="products/widget.html">Widget</a>`, out)
	assert.Equal(t, 2, rep.Records)
	assert.Equal(t, 1, rep.Reconciled())
	assert.Equal(t, []string{"Gadget"}, rep.Unmatched)
}

func TestReconcile_RecordWithoutMapping(t *testing.T) {
	records := []catalog.ProductRecord{{Title: "Widget", Link: "https://legacy/x"}}
	doc := `<a href="https://legacy/x" target="_blank">Widget</a>`

	out, rep := newTestReconciler(t).Reconcile(doc, records, catalog.NewLinkMapping())

	assert.Equal(t, doc, out)
	assert.Equal(t, []string{"Widget"}, rep.Unmatched)
}

func TestReconcile_Idempotent(t *testing.T) {
	records := []catalog.ProductRecord{
		{Title: "Widget", Link: "https://legacy/x"},
		{Title: "Gadget", Link: "https://legacy/y"},
	}
	mapping := mustMapping(t, records)
	doc := `<a href="https://legacy/x" target="_blank">Widget</a>
<a target="_blank" href="https://legacy/y">Gadget</a>`

	rc := newTestReconciler(t)
	once, first := rc.Reconcile(doc, records, mapping)
	twice, second := rc.Reconcile(once, records, mapping)

	assert.Equal(t, once, twice)
	assert.Equal(t, `<a href="products/widget.html">Widget</a>
<a href="products/gadget.html">Gadget</a>`, once)
	assert.Equal(t, 2, first.ByLink)
	assert.Equal(t, 2, first.TargetsStripped)

	assert.Equal(t, 0, second.ByLink)
	assert.Equal(t, 2, second.AlreadyLinked)
	assert.Equal(t, 0, second.TargetsStripped)
	assert.Empty(t, second.Unmatched)
}

func TestReconcile_DuplicateRecordsCountedOnce(t *testing.T) {
	records := []catalog.ProductRecord{
		{Title: "Widget", Link: "https://legacy/x"},
		{Title: "Widget", Link: "https://legacy/x2"},
	}
	doc := `<a href="https://legacy/x" target="_blank">Widget</a>`

	_, rep := newTestReconciler(t).Reconcile(doc, records, mustMapping(t, records))
	assert.Equal(t, 1, rep.Records)
}

func TestReconcile_CustomDir(t *testing.T) {
	records := []catalog.ProductRecord{{Title: "Widget", Link: "https://legacy/x"}}
	mapping, err := catalog.BuildMapping(records, "items")
	require.NoError(t, err)
	doc := `<a href="https://legacy/x" target="_blank">Widget</a><a href="products/old.html" target="_blank">Old</a>`

	out, rep := New("items", zaptest.NewLogger(t).Sugar()).Reconcile(doc, records, mapping)

	assert.Equal(t, `<a href="items/widget.html">Widget</a><a href="products/old.html" target="_blank">Old</a>`, out)
	assert.Equal(t, 1, rep.TargetsStripped)
}
