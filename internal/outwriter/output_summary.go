package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/gitimpact/core/algo"
	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/internal/parquet"
	"github.com/huangsam/gitimpact/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummaryResults outputs the grouped summaries, dispatching based on the output format configured.
func WriteSummaryResults(w io.Writer, summary *schema.Summary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeTo(w, cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTo(w, cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSummary(w, summary, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteSummaryEntries(w, parquet.ConvertSummary(summary))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeTo(w, cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTables(w, summary, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryTables prints the leaderboard, the project totals and the daily trend.
func writeSummaryTables(w io.Writer, summary *schema.Summary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Period: %s → %s (%s mode, %s metric)\n",
		summary.StartDate, summary.EndDate, summary.Mode, summary.Metric); err != nil {
		return err
	}

	authors := algo.TopEntries(summary.AuthorTotals, cfg.ResultLimit)
	if err := writeEntryTable(w, "Author", authors, summary.Metric, cfg, fmtFloat); err != nil {
		return err
	}
	if summary.Mode == schema.MultiProjectMode && len(summary.ProjectTotals) > 0 {
		if err := writeEntryTable(w, "Project", summary.ProjectTotals, summary.Metric, cfg, fmtFloat); err != nil {
			return err
		}
	}
	if len(summary.Timeseries.Rows) > 0 {
		if err := writeTrendTable(w, summary, fmtFloat); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d authors (grand total: %s, aliases applied: %d)\n",
		len(authors), len(summary.AuthorTotals), formatValue(summary.GrandTotal, summary.Metric, fmtFloat), summary.AliasesApplied); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Summary completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeEntryTable prints a ranked table of named totals.
func writeEntryTable(w io.Writer, kind string, entries []schema.Entry, metric schema.MetricMode, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	table.Header([]string{"Rank", kind, valueHeader(metric), "Share"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1), // Rank
			colorName(contract.TruncateLabel(e.Name, nameWidth), i, cfg), // Name
			formatValue(e.Value, metric, fmtFloat),                       // Value
			fmt.Sprintf("%.1f%%", e.Share*100),                           // Share
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeTrendTable prints the daily totals next to the moving average.
func writeTrendTable(w io.Writer, summary *schema.Summary, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Total", "Trend"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, date := range summary.Timeseries.Rows {
		row := []string{date, formatValue(summary.DailyTotals[i], summary.Metric, fmtFloat), ""}
		if i < len(summary.MovingAverage) {
			row[2] = fmtFloat(summary.MovingAverage[i])
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVSummary writes the ranked sections, mirroring the Parquet layout.
func writeCSVSummary(w io.Writer, summary *schema.Summary, fmtFloat func(float64) string) error {
	header := []string{"section", "rank", "name", "metric", "value", "share"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range parquet.ConvertSummary(summary) {
			row := []string{
				e.Section,
				strconv.Itoa(int(e.Rank)),
				e.Name,
				e.Metric,
				fmtFloat(e.Value),
				strconv.FormatFloat(e.Share, 'f', 4, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// valueHeader names the value column after the metric.
func valueHeader(metric schema.MetricMode) string {
	if metric == schema.LinesMetric {
		return "Lines"
	}
	return "Impact"
}

// formatValue prints line counts with thousands separators and scores with the configured precision.
func formatValue(v float64, metric schema.MetricMode, fmtFloat func(float64) string) string {
	if metric == schema.LinesMetric {
		return humanize.Comma(int64(math.Round(v)))
	}
	return fmtFloat(v)
}

// colorName highlights the leader and the synthetic "Other" bucket.
func colorName(name string, rank int, cfg *contract.Config) string {
	if !cfg.UseColors {
		return name
	}
	switch {
	case name == cfg.OtherLabel:
		return contract.OtherColor.Sprint(name)
	case rank == 0:
		return contract.LeaderColor.Sprint(name)
	default:
		return name
	}
}
