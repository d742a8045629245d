// Package schema has models, constants and errors shared by all parts of gitimpact.
package schema

import "time"

// ContributionRecord is one row of upstream statistics for an (author, date[, project]) pair.
type ContributionRecord struct {
	Author  string    // Raw author identity as emitted by the collector
	Project string    // Project name, empty in single-project mode
	Date    time.Time // Day of the contribution (UTC midnight)
	Added   int       // Lines added
	Removed int       // Lines removed
	Files   int       // Files touched
	Commits int       // Commits made
	Lines   *int      // Legacy total (added+removed) when the collector provides it
}

// LineCount returns the raw lines metric of the record.
func (r ContributionRecord) LineCount() int {
	if r.Lines != nil {
		return *r.Lines
	}
	return r.Added + r.Removed
}

// ScoredRecord is a ContributionRecord tagged with its relevance score.
type ScoredRecord struct {
	ContributionRecord
	Relevance float64
}

// Value returns the aggregated value of the record for the given metric.
func (r ScoredRecord) Value(metric MetricMode) float64 {
	if metric == LinesMetric {
		return float64(r.LineCount())
	}
	return r.Relevance
}

// Dataset is the decoded input document.
type Dataset struct {
	Mode      InputMode
	StartDate string // metadata.start_date or N/A
	EndDate   string // metadata.end_date or N/A
	Records   []ContributionRecord
}

// Pivot is a dense grid of summed values. Missing combinations are zero.
type Pivot struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Cells   [][]float64 `json:"cells"` // Cells[row][column]
}

// Value returns the cell for the given row and column labels, or zero.
func (p Pivot) Value(row, column string) float64 {
	ri, ci := -1, -1
	for i, r := range p.Rows {
		if r == row {
			ri = i
			break
		}
	}
	for i, c := range p.Columns {
		if c == column {
			ci = i
			break
		}
	}
	if ri < 0 || ci < 0 {
		return 0
	}
	return p.Cells[ri][ci]
}

// Column returns the values of one column across all rows.
func (p Pivot) Column(index int) []float64 {
	values := make([]float64, len(p.Rows))
	for i := range p.Rows {
		values[i] = p.Cells[i][index]
	}
	return values
}

// Entry is a named total with its share of the grand total.
type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}

// Summary holds every grouped view needed by the presentation layer.
type Summary struct {
	Mode           InputMode  `json:"mode"`
	Metric         MetricMode `json:"metric"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Timeseries     Pivot      `json:"timeseries"` // Rows are dates, columns are authors
	DailyTotals    []float64  `json:"daily_totals"`
	MovingAverage  []float64  `json:"moving_average"`
	ProjectAuthor  *Pivot     `json:"project_author,omitempty"` // Multi-project mode only
	ProjectTotals  []Entry    `json:"project_totals,omitempty"` // Multi-project mode only, after "Other" collapse
	AuthorTotals   []Entry    `json:"author_totals"`            // Leaderboard, descending
	GrandTotal     float64    `json:"grand_total"`
	AliasesApplied int        `json:"aliases_applied"` // Records whose author was rewritten
}
