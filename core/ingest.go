package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/huangsam/gitimpact/schema"
)

const excerptLength = 50

// metadata is the header of the multi-project document.
type metadata struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// flatRecord is one element of the multi-project data list.
type flatRecord struct {
	Author     *string `json:"author"`
	AuthorName *string `json:"author_name"`
	Project    string  `json:"project"`
	Date       string  `json:"date"`
	Added      int     `json:"added"`
	Removed    int     `json:"removed"`
	Files      int     `json:"files"`
	Commits    int     `json:"commits"`
	Lines      *int    `json:"lines"`
}

// dailyEntry is one day of the legacy single-project format.
type dailyEntry struct {
	Date    string `json:"date"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Files   int    `json:"files"`
	Commits int    `json:"commits"`
	Lines   *int   `json:"lines"`
}

// authorEntry is one author of the legacy single-project format.
type authorEntry struct {
	Author    *string      `json:"author"`
	DailyData []dailyEntry `json:"daily_data"`
}

// ReadInput reads the whole document from r and decodes it.
func ReadInput(r io.Reader) (*schema.Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return DecodeInput(raw)
}

// DecodeInput classifies the raw document and decodes it into a Dataset.
// Sentinel authors are dropped here so no later stage has to know about them.
func DecodeInput(raw []byte) (*schema.Dataset, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &schema.InputError{
			Kind: schema.ErrInputAbsent,
			Hint: "pipe the collector output into gitimpact, e.g. 'git_stats_collector.sh json | gitimpact report'",
		}
	}
	if trimmed[0] != '[' && trimmed[0] != '{' {
		return nil, &schema.InputError{
			Kind:    schema.ErrInputMalformed,
			Hint:    "was the collector run with the 'text' option instead of 'json'?",
			Excerpt: excerpt(trimmed),
		}
	}

	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, &schema.InputError{Kind: schema.ErrParse, Detail: err.Error()}
	}

	switch doc := probe.(type) {
	case map[string]any:
		_, hasMeta := doc["metadata"]
		_, hasData := doc["data"]
		if !hasMeta || !hasData {
			return nil, &schema.InputError{
				Kind:   schema.ErrSchemaMismatch,
				Detail: "expected an object with 'metadata' and 'data' keys",
			}
		}
		return decodeMultiProject(trimmed)
	case []any:
		if isLegacyList(doc) {
			return decodeSingleProject(trimmed)
		}
		return decodeFlatList(trimmed)
	default:
		return nil, &schema.InputError{Kind: schema.ErrSchemaMismatch, Detail: "expected a list or an object"}
	}
}

// isLegacyList reports whether the list uses the nested {author, daily_data} shape.
// An empty list is treated as legacy.
func isLegacyList(items []any) bool {
	if len(items) == 0 {
		return true
	}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := obj["daily_data"]; ok {
			return true
		}
	}
	return false
}

// decodeMultiProject decodes the {metadata, data} document.
func decodeMultiProject(raw []byte) (*schema.Dataset, error) {
	var doc struct {
		Metadata metadata     `json:"metadata"`
		Data     []flatRecord `json:"data"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, schemaMismatch(err)
	}
	records, err := convertFlatRecords(doc.Data)
	if err != nil {
		return nil, err
	}
	return &schema.Dataset{
		Mode:      schema.MultiProjectMode,
		StartDate: valueOrNotAvailable(doc.Metadata.StartDate),
		EndDate:   valueOrNotAvailable(doc.Metadata.EndDate),
		Records:   records,
	}, nil
}

// decodeFlatList decodes a list of flat records without metadata.
func decodeFlatList(raw []byte) (*schema.Dataset, error) {
	var items []flatRecord
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, schemaMismatch(err)
	}
	records, err := convertFlatRecords(items)
	if err != nil {
		return nil, err
	}
	return &schema.Dataset{
		Mode:      schema.MultiProjectMode,
		StartDate: schema.NotAvailable,
		EndDate:   schema.NotAvailable,
		Records:   records,
	}, nil
}

// decodeSingleProject decodes the legacy list of {author, daily_data}.
func decodeSingleProject(raw []byte) (*schema.Dataset, error) {
	var items []authorEntry
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, schemaMismatch(err)
	}

	var records []schema.ContributionRecord
	for _, item := range items {
		author := firstNonNil(item.Author)
		if schema.IsExcludedAuthor(author) {
			continue
		}
		for _, day := range item.DailyData {
			date, err := parseDate(day.Date)
			if err != nil {
				return nil, err
			}
			if date.IsZero() {
				return nil, &schema.InputError{
					Kind:   schema.ErrSchemaMismatch,
					Detail: fmt.Sprintf("daily entry of author %q has no date", author),
				}
			}
			records = append(records, schema.ContributionRecord{
				Author:  author,
				Date:    date,
				Added:   day.Added,
				Removed: day.Removed,
				Files:   day.Files,
				Commits: day.Commits,
				Lines:   day.Lines,
			})
		}
	}

	return &schema.Dataset{
		Mode:      schema.SingleProjectMode,
		StartDate: schema.NotAvailable,
		EndDate:   schema.NotAvailable,
		Records:   records,
	}, nil
}

// convertFlatRecords maps decoded flat records to ContributionRecords.
func convertFlatRecords(items []flatRecord) ([]schema.ContributionRecord, error) {
	records := make([]schema.ContributionRecord, 0, len(items))
	for _, item := range items {
		author := firstNonNil(item.AuthorName, item.Author)
		if schema.IsExcludedAuthor(author) {
			continue
		}
		date, err := parseDate(item.Date)
		if err != nil {
			return nil, err
		}
		records = append(records, schema.ContributionRecord{
			Author:  author,
			Project: item.Project,
			Date:    date,
			Added:   item.Added,
			Removed: item.Removed,
			Files:   item.Files,
			Commits: item.Commits,
			Lines:   item.Lines,
		})
	}
	return records, nil
}

// parseDate parses a YYYY-MM-DD date. An empty string yields the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(schema.DateLayout, s)
	if err != nil {
		return time.Time{}, &schema.InputError{
			Kind:   schema.ErrSchemaMismatch,
			Detail: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s),
		}
	}
	return t, nil
}

// schemaMismatch converts a typed decoding failure into the taxonomy.
func schemaMismatch(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &schema.InputError{
			Kind:   schema.ErrSchemaMismatch,
			Detail: fmt.Sprintf("field %q cannot hold a JSON %s", typeErr.Field, typeErr.Value),
		}
	}
	return &schema.InputError{Kind: schema.ErrSchemaMismatch, Detail: err.Error()}
}

// firstNonNil returns the first present author field, or UnknownAuthor.
func firstNonNil(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return schema.UnknownAuthor
}

func valueOrNotAvailable(s string) string {
	if s == "" {
		return schema.NotAvailable
	}
	return s
}

// excerpt returns the beginning of the input for diagnostics.
func excerpt(raw []byte) string {
	if utf8.RuneCount(raw) <= excerptLength {
		return string(raw)
	}
	runes := []rune(string(raw))
	return string(runes[:excerptLength]) + "..."
}
