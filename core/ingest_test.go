package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gitimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyDoc = `[
  {"author": "Alice", "daily_data": [
    {"date": "2024-01-01", "added": 2000, "removed": 10, "files": 5, "commits": 1},
    {"date": "2024-01-03", "added": 50, "files": 2, "commits": 1, "lines": 70}
  ]},
  {"author": "TOTALE", "daily_data": [
    {"date": "2024-01-01", "added": 2050, "files": 7, "commits": 2}
  ]},
  {"author": "Bob", "daily_data": [
    {"date": "2024-01-02", "added": 10, "files": 1, "commits": 1}
  ]}
]`

const multiDoc = `{
  "metadata": {"start_date": "2024-01-01", "end_date": "2024-01-31"},
  "data": [
    {"author_name": "Alice", "author": "alice@example.com", "project": "api", "date": "2024-01-02", "added": 100, "files": 3, "commits": 2},
    {"author": "Bob", "project": "web", "date": "2024-01-03", "added": 10, "files": 1, "commits": 1},
    {"author": "TOTALE", "project": "api", "date": "2024-01-02", "added": 110, "files": 4, "commits": 3},
    {"project": "web", "added": 5, "files": 1, "commits": 1}
  ]
}`

func TestDecodeInputLegacy(t *testing.T) {
	ds, err := DecodeInput([]byte(legacyDoc))
	require.NoError(t, err)

	assert.Equal(t, schema.SingleProjectMode, ds.Mode)
	assert.Equal(t, schema.NotAvailable, ds.StartDate)
	require.Len(t, ds.Records, 3)
	for _, r := range ds.Records {
		assert.NotEqual(t, schema.TotalAuthor, r.Author)
		assert.Empty(t, r.Project)
	}
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ds.Records[0].Date)
	assert.Equal(t, 2010, ds.Records[0].LineCount())
	assert.Equal(t, 70, ds.Records[1].LineCount())
}

func TestDecodeInputMultiProject(t *testing.T) {
	ds, err := DecodeInput([]byte(multiDoc))
	require.NoError(t, err)

	assert.Equal(t, schema.MultiProjectMode, ds.Mode)
	assert.Equal(t, "2024-01-01", ds.StartDate)
	assert.Equal(t, "2024-01-31", ds.EndDate)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, "Alice", ds.Records[0].Author, "author_name takes precedence")
	assert.Equal(t, "api", ds.Records[0].Project)
	assert.Equal(t, schema.UnknownAuthor, ds.Records[2].Author)
	assert.True(t, ds.Records[2].Date.IsZero())
}

func TestDecodeInputFlatList(t *testing.T) {
	ds, err := DecodeInput([]byte(`[{"author":"A","project":"p","date":"2024-02-01","added":1,"files":1,"commits":1}]`))
	require.NoError(t, err)
	assert.Equal(t, schema.MultiProjectMode, ds.Mode)
	assert.Equal(t, schema.NotAvailable, ds.StartDate)
	assert.Equal(t, schema.NotAvailable, ds.EndDate)
	assert.Len(t, ds.Records, 1)
}

func TestDecodeInputEmptyList(t *testing.T) {
	ds, err := DecodeInput([]byte(`  []  `))
	require.NoError(t, err)
	assert.Equal(t, schema.SingleProjectMode, ds.Mode)
	assert.Empty(t, ds.Records)
}

func TestDecodeInputErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind error
	}{
		{name: "empty", doc: "", kind: schema.ErrInputAbsent},
		{name: "whitespace", doc: " \n\t ", kind: schema.ErrInputAbsent},
		{name: "text mode output", doc: "Author: Alice\nLines: 10", kind: schema.ErrInputMalformed},
		{name: "truncated json", doc: `[{"author": "A"`, kind: schema.ErrParse},
		{name: "object without data", doc: `{"metadata": {}}`, kind: schema.ErrSchemaMismatch},
		{name: "object with other keys", doc: `{"authors": []}`, kind: schema.ErrSchemaMismatch},
		{name: "wrong field type", doc: `[{"author":"A","project":"p","added":"many"}]`, kind: schema.ErrSchemaMismatch},
		{name: "list of scalars", doc: `[1, 2, 3]`, kind: schema.ErrSchemaMismatch},
		{name: "bad date", doc: `[{"author":"A","daily_data":[{"date":"01/02/2024","added":1,"files":1,"commits":1}]}]`, kind: schema.ErrSchemaMismatch},
		{name: "legacy without date", doc: `[{"author":"A","daily_data":[{"added":1,"files":1,"commits":1}]}]`, kind: schema.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInput([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.True(t, schema.IsFatal(err))
		})
	}
}

func TestDecodeInputMalformedExcerpt(t *testing.T) {
	doc := strings.Repeat("x", 80)
	_, err := DecodeInput([]byte(doc))

	var inputErr *schema.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, strings.Repeat("x", 50)+"...", inputErr.Excerpt)
	assert.Contains(t, inputErr.Hint, "text")
}

func TestDecodeInputShortExcerpt(t *testing.T) {
	_, err := DecodeInput([]byte("hello"))

	var inputErr *schema.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "hello", inputErr.Excerpt)
}

func TestReadInput(t *testing.T) {
	ds, err := ReadInput(strings.NewReader(legacyDoc))
	require.NoError(t, err)
	assert.Len(t, ds.Records, 3)
}
