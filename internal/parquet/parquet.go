// Package parquet provides data structures and functions for exporting gitimpact
// records and summaries to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/gitimpact/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoredRecord is one scored contribution row.
type ScoredRecord struct {
	// Author is the canonical author name after alias resolution
	Author string `parquet:"author,snappy,dict"`

	// Project is the project name (nullable in single-project mode)
	Project *string `parquet:"project,optional,snappy,dict"`

	// Date is the day of the contribution (nullable when the producer omitted it)
	Date *time.Time `parquet:"date,optional,snappy"`

	// Added is the number of lines added
	Added int32 `parquet:"added,snappy"`

	// Removed is the number of lines removed
	Removed int32 `parquet:"removed,snappy"`

	// Files is the number of files touched
	Files int32 `parquet:"files,snappy"`

	// Commits is the number of commits
	Commits int32 `parquet:"commits,snappy"`

	// Lines is the raw lines metric (explicit lines or added+removed)
	Lines int32 `parquet:"lines,snappy"`

	// Relevance is the impact score
	Relevance float64 `parquet:"relevance,snappy"`
}

// SummaryEntry is one row of a ranked summary table.
type SummaryEntry struct {
	// Section is the summary table this entry belongs to (authors or projects)
	Section string `parquet:"section,snappy,dict"`

	// Rank is the 1-based position in the section
	Rank int32 `parquet:"rank,snappy"`

	// Name is the author or project name
	Name string `parquet:"name,snappy"`

	// Metric is the aggregated metric (relevance or lines)
	Metric string `parquet:"metric,snappy,dict"`

	// Value is the summed metric
	Value float64 `parquet:"value,snappy"`

	// Share is the fraction of the grand total
	Share float64 `parquet:"share,snappy"`
}

// Summary sections.
const (
	AuthorsSection  = "authors"
	ProjectsSection = "projects"
)

// WriteScoredRecords writes scored rows to w.
func WriteScoredRecords(w io.Writer, data []ScoredRecord) error {
	return writeRows(w, data)
}

// WriteSummaryEntries writes summary rows to w.
func WriteSummaryEntries(w io.Writer, data []SummaryEntry) error {
	return writeRows(w, data)
}

// writeRows writes rows using struct schema inference.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertScoredRecords converts schema.ScoredRecord to ScoredRecord for Parquet export.
func ConvertScoredRecords(records []schema.ScoredRecord) []ScoredRecord {
	result := make([]ScoredRecord, len(records))
	for i, r := range records {
		row := ScoredRecord{
			Author:    r.Author,
			Added:     int32(r.Added),
			Removed:   int32(r.Removed),
			Files:     int32(r.Files),
			Commits:   int32(r.Commits),
			Lines:     int32(r.LineCount()),
			Relevance: r.Relevance,
		}
		if r.Project != "" {
			project := r.Project
			row.Project = &project
		}
		if !r.Date.IsZero() {
			date := r.Date
			row.Date = &date
		}
		result[i] = row
	}
	return result
}

// ConvertSummary flattens the ranked tables of a summary for Parquet export.
func ConvertSummary(summary *schema.Summary) []SummaryEntry {
	var result []SummaryEntry
	appendSection := func(section string, entries []schema.Entry) {
		for i, e := range entries {
			result = append(result, SummaryEntry{
				Section: section,
				Rank:    int32(i + 1),
				Name:    e.Name,
				Metric:  string(summary.Metric),
				Value:   e.Value,
				Share:   e.Share,
			})
		}
	}
	appendSection(AuthorsSection, summary.AuthorTotals)
	appendSection(ProjectsSection, summary.ProjectTotals)
	return result
}
