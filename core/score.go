package core

import (
	"math"

	"github.com/huangsam/gitimpact/schema"
)

// computeRelevance calculates the impact score of a single contribution record.
//
// The score is ln(1+min(added, MaxLinesPerDay)) * ln(1+files). Both dimensions are
// logarithmic so that neither a vendored mega-commit nor a bulk rename touching
// hundreds of files dominates the charts. Records without commits or files score 0.
func computeRelevance(added, files, commits int) float64 {
	if commits <= 0 || files <= 0 {
		return 0
	}
	capped := min(max(added, 0), schema.MaxLinesPerDay)
	return math.Log1p(float64(capped)) * math.Log1p(float64(files))
}

// ComputeRelevance exposes the score engine for a single record.
func ComputeRelevance(r schema.ContributionRecord) float64 {
	return computeRelevance(r.Added, r.Files, r.Commits)
}

// ScoreRecords tags every record with its relevance score.
func ScoreRecords(records []schema.ContributionRecord) []schema.ScoredRecord {
	scored := make([]schema.ScoredRecord, len(records))
	for i, r := range records {
		scored[i] = schema.ScoredRecord{
			ContributionRecord: r,
			Relevance:          ComputeRelevance(r),
		}
	}
	return scored
}
