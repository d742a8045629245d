package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/internal/parquet"
	"github.com/huangsam/gitimpact/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResults outputs the scored records, dispatching based on the output format configured.
func WriteScoreResults(w io.Writer, records []schema.ScoredRecord, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeTo(w, cfg.OutputFile, func(w io.Writer) error {
			return writeJSONScores(w, records)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTo(w, cfg.OutputFile, func(w io.Writer) error {
			return writeCSVScores(w, records, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteScoredRecords(w, parquet.ConvertScoredRecords(records))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeTo(w, cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(w, limitRecords(records, cfg.ResultLimit), len(records), cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// jsonScoredRecord is the flat JSON shape of one scored record.
type jsonScoredRecord struct {
	Author    string  `json:"author"`
	Project   string  `json:"project,omitempty"`
	Date      string  `json:"date,omitempty"`
	Added     int     `json:"added"`
	Removed   int     `json:"removed"`
	Files     int     `json:"files"`
	Commits   int     `json:"commits"`
	Lines     int     `json:"lines"`
	Relevance float64 `json:"relevance"`
}

// writeJSONScores writes the scored records as a JSON array.
func writeJSONScores(w io.Writer, records []schema.ScoredRecord) error {
	output := make([]jsonScoredRecord, len(records))
	for i, r := range records {
		output[i] = jsonScoredRecord{
			Author:    r.Author,
			Project:   r.Project,
			Date:      formatDate(r.Date),
			Added:     r.Added,
			Removed:   r.Removed,
			Files:     r.Files,
			Commits:   r.Commits,
			Lines:     r.LineCount(),
			Relevance: r.Relevance,
		}
	}
	return writeJSON(w, output)
}

// writeCSVScores writes the scored records in CSV format.
func writeCSVScores(w io.Writer, records []schema.ScoredRecord, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"author", "project", "date", "added", "removed", "files", "commits", "lines", "relevance"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{
				r.Author,
				r.Project,
				formatDate(r.Date),
				fmt.Sprintf(intFmt, r.Added),
				fmt.Sprintf(intFmt, r.Removed),
				fmt.Sprintf(intFmt, r.Files),
				fmt.Sprintf(intFmt, r.Commits),
				fmt.Sprintf(intFmt, r.LineCount()),
				fmtFloat(r.Relevance),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeScoreTable prints one row per scored record.
func writeScoreTable(w io.Writer, records []schema.ScoredRecord, total int, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Date", "Project", "Author", "Added", "Files", "Commits", "Relevance"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, r := range records {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			formatDate(r.Date),
			contract.TruncateLabel(r.Project, nameWidth),
			contract.TruncateLabel(r.Author, nameWidth),
			fmt.Sprintf(intFmt, r.Added),
			fmt.Sprintf(intFmt, r.Files),
			fmt.Sprintf(intFmt, r.Commits),
			fmtFloat(r.Relevance),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d of %d records\n", len(records), total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scoring completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// limitRecords returns at most limit records, or all of them when limit is 0.
func limitRecords(records []schema.ScoredRecord, limit int) []schema.ScoredRecord {
	if limit <= 0 || limit >= len(records) {
		return records
	}
	return records[:limit]
}

// formatDate prints a record date, or N/A when the producer omitted it.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return schema.NotAvailable
	}
	return t.Format(schema.DateLayout)
}
