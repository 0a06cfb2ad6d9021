package extract

// CategoryCount is the number of records one category contributed.
type CategoryCount struct {
	Category string `json:"category"`
	Records  int    `json:"records"`
}

// Stats counts what an extraction run saw. Anomalies are recovered locally
// and only show up here.
type Stats struct {
	Categories    int             `json:"categories"`
	SkippedDirs   int             `json:"skipped_dirs"`
	Blocks        int             `json:"blocks"`
	Records       int             `json:"records"`
	Untitled      int             `json:"untitled"`
	Branded       int             `json:"branded"`
	DefaultImages int             `json:"default_images"`
	PerCategory   []CategoryCount `json:"per_category"`
}

func (s *Stats) addCategory(category string, records int) {
	s.Categories++
	s.Records += records
	s.PerCategory = append(s.PerCategory, CategoryCount{Category: category, Records: records})
}

// Empty lists categories whose listing yielded no records.
func (s Stats) Empty() []string {
	var out []string
	for _, c := range s.PerCategory {
		if c.Records == 0 {
			out = append(out, c.Category)
		}
	}
	return out
}
