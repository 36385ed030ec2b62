package scoring

import (
	"math"
	"sort"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

// Normalize rescales raw scores to a percentage of the best score in the set
// and sorts the results best-first.
//
// Percentage is max(0, round(raw/max x 1000) / 10) when the maximum raw
// score is positive, 0 for everyone otherwise. The sort is stable, so ties
// keep their input order.
func Normalize(results []model.FitResult) []model.FitResult {
	if len(results) == 0 {
		return results
	}

	maxScore := results[0].Score
	for _, r := range results[1:] {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	for i := range results {
		if maxScore > 0 {
			results[i].Percentage = math.Max(0, math.Round(results[i].Score/maxScore*1000)/10)
		} else {
			results[i].Percentage = 0
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Percentage > results[j].Percentage
	})

	return results
}
