package algo

import "github.com/huangsam/gitimpact/schema"

// CollapseSmall folds every entry whose share of the total is at or below threshold
// into a single entry named label, then re-ranks the result. When nothing falls
// below the threshold the input is returned ranked and no label entry is created.
//
// The label value is the sum of the folded values, so the displayed total always
// matches the original total.
func CollapseSmall(entries []schema.Entry, threshold float64, label string) []schema.Entry {
	var total float64
	for _, e := range entries {
		total += e.Value
	}

	kept := make([]schema.Entry, 0, len(entries))
	var folded float64
	var foldedCount int
	for _, e := range entries {
		if share(e.Value, total) <= threshold {
			folded += e.Value
			foldedCount++
			continue
		}
		kept = append(kept, e)
	}
	if foldedCount == 0 {
		return RankEntries(kept)
	}

	for i := range kept {
		if kept[i].Name == label {
			kept[i].Value += folded
			kept[i].Share = share(kept[i].Value, total)
			return RankEntries(kept)
		}
	}
	kept = append(kept, schema.Entry{
		Name:  label,
		Value: folded,
		Share: share(folded, total),
	})
	return RankEntries(kept)
}
