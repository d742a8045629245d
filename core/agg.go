package core

import (
	"fmt"
	"sort"

	"github.com/huangsam/gitimpact/core/algo"
	"github.com/huangsam/gitimpact/schema"
)

// NoProject labels multi-project records that carry no project name.
const NoProject = "(none)"

// Options holds the external knobs of the aggregator. They are passed explicitly
// so the same records can be summarized with different mappings and thresholds.
type Options struct {
	Aliases    map[string]string // raw author -> canonical name
	Metric     schema.MetricMode // relevance or lines
	Threshold  float64           // share at or below which a project folds into OtherLabel
	OtherLabel string            // name of the synthetic bucket
	Window     int               // moving average window
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions(metric schema.MetricMode) Options {
	return Options{
		Metric:     metric,
		Threshold:  schema.DefaultThreshold(metric),
		OtherLabel: schema.OtherLabel,
		Window:     schema.MovingAverageWindow,
	}
}

// ResolveAliases returns a copy of records with each author replaced by its
// canonical name, and the number of records that were rewritten.
func ResolveAliases(records []schema.ScoredRecord, aliases map[string]string) ([]schema.ScoredRecord, int) {
	resolved := make([]schema.ScoredRecord, len(records))
	applied := 0
	for i, r := range records {
		if canonical, ok := aliases[r.Author]; ok && canonical != r.Author {
			r.Author = canonical
			applied++
		}
		resolved[i] = r
	}
	return resolved, applied
}

// Aggregate groups scored records into every summary needed by the charts.
// It returns schema.ErrEmptyResult when there is nothing to chart.
func Aggregate(records []schema.ScoredRecord, mode schema.InputMode, opts Options) (*schema.Summary, error) {
	if opts.Metric == "" {
		opts.Metric = schema.RelevanceMetric
	}
	if opts.Window < 1 {
		opts.Window = schema.MovingAverageWindow
	}
	if opts.OtherLabel == "" {
		opts.OtherLabel = schema.OtherLabel
	}

	if len(records) == 0 {
		return nil, &schema.InputError{Kind: schema.ErrEmptyResult, Detail: "no records found"}
	}

	resolved, applied := ResolveAliases(records, opts.Aliases)

	var grandTotal float64
	for _, r := range resolved {
		grandTotal += r.Value(opts.Metric)
	}
	if grandTotal == 0 {
		return nil, &schema.InputError{
			Kind:   schema.ErrEmptyResult,
			Detail: fmt.Sprintf("total %s is zero for the given period", opts.Metric),
		}
	}

	summary := &schema.Summary{
		Mode:           mode,
		Metric:         opts.Metric,
		StartDate:      schema.NotAvailable,
		EndDate:        schema.NotAvailable,
		GrandTotal:     grandTotal,
		AliasesApplied: applied,
	}

	summary.Timeseries = buildPivot(resolved, opts.Metric, dateKey, authorKey)
	summary.DailyTotals = rowTotals(summary.Timeseries)
	summary.MovingAverage = algo.MovingAverage(summary.DailyTotals, opts.Window)

	if mode == schema.MultiProjectMode {
		projectAuthor := buildPivot(resolved, opts.Metric, projectKey, authorKey)
		summary.ProjectAuthor = &projectAuthor
		projectTotals := groupTotals(resolved, opts.Metric, projectKey)
		summary.ProjectTotals = algo.CollapseSmall(
			algo.EntriesFromTotals(projectTotals, grandTotal),
			opts.Threshold,
			opts.OtherLabel,
		)
	}

	summary.AuthorTotals = algo.EntriesFromTotals(groupTotals(resolved, opts.Metric, authorKey), grandTotal)
	return summary, nil
}

// keyFunc extracts a grouping key. A false second value skips the record.
type keyFunc func(r schema.ScoredRecord) (string, bool)

func dateKey(r schema.ScoredRecord) (string, bool) {
	if r.Date.IsZero() {
		return "", false
	}
	return r.Date.Format(schema.DateLayout), true
}

func authorKey(r schema.ScoredRecord) (string, bool) {
	return r.Author, true
}

func projectKey(r schema.ScoredRecord) (string, bool) {
	if r.Project == "" {
		return NoProject, true
	}
	return r.Project, true
}

// buildPivot sums the metric into a dense grid. Rows and columns are sorted
// ascending; ISO dates therefore come out in chronological order.
func buildPivot(records []schema.ScoredRecord, metric schema.MetricMode, rowKey, colKey keyFunc) schema.Pivot {
	sums := make(map[string]map[string]float64)
	columnSet := make(map[string]struct{})
	for _, r := range records {
		row, ok := rowKey(r)
		if !ok {
			continue
		}
		col, ok := colKey(r)
		if !ok {
			continue
		}
		if sums[row] == nil {
			sums[row] = make(map[string]float64)
		}
		sums[row][col] += r.Value(metric)
		columnSet[col] = struct{}{}
	}

	rows := sortedKeys(sums)
	columns := sortedKeys(columnSet)
	cells := make([][]float64, len(rows))
	for i, row := range rows {
		cells[i] = make([]float64, len(columns))
		for j, col := range columns {
			cells[i][j] = sums[row][col]
		}
	}
	return schema.Pivot{Rows: rows, Columns: columns, Cells: cells}
}

// groupTotals sums the metric per key.
func groupTotals(records []schema.ScoredRecord, metric schema.MetricMode, key keyFunc) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		totals[k] += r.Value(metric)
	}
	return totals
}

// rowTotals sums each pivot row across all columns.
func rowTotals(p schema.Pivot) []float64 {
	totals := make([]float64, len(p.Rows))
	for i, row := range p.Cells {
		for _, v := range row {
			totals[i] += v
		}
	}
	return totals
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
