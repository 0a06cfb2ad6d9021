package content

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/sitegen/internal/doctree"
)

// CSVParser reads question/answer sheets. The first row is a header; every
// following row becomes a node titled by its first column with the second
// column as text.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	if len(records) == 0 {
		return tree, nil
	}

	for i, row := range records[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected question and answer columns, got %d", i+2, len(row))
		}
		q, a := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if q == "" {
			continue
		}
		tree.Children = append(tree.Children, &doctree.DocNode{Title: q, Text: a})
	}
	return tree, nil
}
