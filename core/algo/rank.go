// Package algo has the ranking and series helpers used by the aggregator.
package algo

import (
	"sort"

	"github.com/huangsam/gitimpact/schema"
)

// RankEntries sorts entries by value in descending order. Ties are broken
// by name so that repeated runs render identical charts.
func RankEntries(entries []schema.Entry) []schema.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// EntriesFromTotals converts a name -> total map into ranked entries with shares.
func EntriesFromTotals(totals map[string]float64, grandTotal float64) []schema.Entry {
	entries := make([]schema.Entry, 0, len(totals))
	for name, value := range totals {
		entries = append(entries, schema.Entry{
			Name:  name,
			Value: value,
			Share: share(value, grandTotal),
		})
	}
	return RankEntries(entries)
}

// TopEntries returns at most limit entries. A non-positive limit returns all of them.
func TopEntries(entries []schema.Entry, limit int) []schema.Entry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	return entries[:limit]
}

func share(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total
}
