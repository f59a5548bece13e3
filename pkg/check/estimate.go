package check

import "github.com/modelfit/modelfit/pkg/quant"

// Estimate fills each candidate's multiplier and estimated resident memory.
// The estimate is exactly TotalSize × multiplier with no rounding; display
// rounding belongs to the formatting layer so comparisons stay exact.
func Estimate(cands []Candidate, table *quant.Table) {
	for i := range cands {
		m, resolved := table.Resolve(cands[i].Label)
		cands[i].Multiplier = m
		cands[i].FallbackMultiplier = !resolved
		cands[i].Estimated = float64(cands[i].TotalSize) * m
	}
}
