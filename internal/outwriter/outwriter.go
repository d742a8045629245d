// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"
	"time"

	"github.com/huangsam/gitimpact/core/algo"
	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	w io.Writer
}

// NewOutWriter creates a new instance of the output writer that prints to stdout.
func NewOutWriter() *OutWriter {
	return &OutWriter{w: os.Stdout}
}

// NewOutWriterTo creates an output writer that prints to w unless an output file is configured.
func NewOutWriterTo(w io.Writer) *OutWriter {
	return &OutWriter{w: w}
}

// WriteSummary prints the grouped summaries using the configured output format.
func (ow *OutWriter) WriteSummary(summary *schema.Summary, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(ow.w, summary, cfg, duration)
}

// WriteScores prints the per-record scores using the configured output format.
func (ow *OutWriter) WriteScores(records []schema.ScoredRecord, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResults(ow.w, records, cfg, duration)
}

// WriteLeaderboard prints the author leaderboard table after a chart was rendered.
func (ow *OutWriter) WriteLeaderboard(summary *schema.Summary, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return writeEntryTable(ow.w, "Author", algo.TopEntries(summary.AuthorTotals, cfg.ResultLimit), summary.Metric, cfg, fmtFloat)
}

// getMaxTableNameWidth calculates the maximum width for author and project names
// in table output based on terminal width.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Value + Share + Bar columns with borders/padding
	available := termWidth - 60
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}
