package parquet

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/huangsam/gitimpact/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoredRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(ScoredRecord))
	require.NotNil(t, sch)

	for _, colName := range []string{"author", "project", "date", "added", "removed", "files", "commits", "lines", "relevance"} {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestSummaryEntryStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(SummaryEntry))
	require.NotNil(t, sch)

	for _, colName := range []string{"section", "rank", "name", "metric", "value", "share"} {
		_, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteScoredRecordsRoundTrip(t *testing.T) {
	lines := 42
	records := []schema.ScoredRecord{
		{
			ContributionRecord: schema.ContributionRecord{
				Author:  "alice",
				Project: "api",
				Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Added:   30,
				Removed: 12,
				Files:   3,
				Commits: 2,
			},
			Relevance: 4.75,
		},
		{
			ContributionRecord: schema.ContributionRecord{
				Author:  "bob",
				Files:   1,
				Commits: 1,
				Lines:   &lines,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteScoredRecords(&buf, ConvertScoredRecords(records)))
	require.Positive(t, buf.Len())

	reader := parquet.NewGenericReader[ScoredRecord](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()

	readData := make([]ScoredRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(records), n)

	assert.Equal(t, "alice", readData[0].Author)
	require.NotNil(t, readData[0].Project)
	assert.Equal(t, "api", *readData[0].Project)
	require.NotNil(t, readData[0].Date)
	assert.WithinDuration(t, records[0].Date, *readData[0].Date, time.Nanosecond)
	assert.Equal(t, int32(42), readData[0].Lines)
	assert.InDelta(t, 4.75, readData[0].Relevance, 1e-9)

	assert.Equal(t, "bob", readData[1].Author)
	assert.Nil(t, readData[1].Project)
	assert.Nil(t, readData[1].Date)
	assert.Equal(t, int32(42), readData[1].Lines)
}

func TestConvertSummary(t *testing.T) {
	summary := &schema.Summary{
		Metric: schema.RelevanceMetric,
		AuthorTotals: []schema.Entry{
			{Name: "alice", Value: 10, Share: 0.625},
			{Name: "bob", Value: 6, Share: 0.375},
		},
		ProjectTotals: []schema.Entry{
			{Name: "api", Value: 16, Share: 1},
		},
	}

	rows := ConvertSummary(summary)
	require.Len(t, rows, 3)
	assert.Equal(t, SummaryEntry{Section: AuthorsSection, Rank: 1, Name: "alice", Metric: "relevance", Value: 10, Share: 0.625}, rows[0])
	assert.Equal(t, int32(2), rows[1].Rank)
	assert.Equal(t, ProjectsSection, rows[2].Section)
	assert.Equal(t, int32(1), rows[2].Rank)

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryEntries(&buf, rows))
	assert.Positive(t, buf.Len())
}

func TestWriteSummaryEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryEntries(&buf, nil))
	assert.Positive(t, buf.Len(), "an empty parquet file still has a footer")
}
