package check

import (
	"github.com/modelfit/modelfit/pkg/memory"
	"github.com/modelfit/modelfit/pkg/modelurl"
	"github.com/modelfit/modelfit/pkg/quant"
)

// VRAMFit is the three-valued outcome of the VRAM comparison. The absence
// of a GPU is a normal state, not a zero-byte GPU, so "not evaluated" stays
// distinct from "does not fit".
type VRAMFit int

const (
	// VRAMNotEvaluated means no GPU was detected and the comparison never
	// ran.
	VRAMNotEvaluated VRAMFit = iota
	// VRAMFits means the estimate fits in the detected GPU memory.
	VRAMFits
	// VRAMDoesNotFit means the estimate exceeds the detected GPU memory.
	VRAMDoesNotFit
)

// String implements fmt.Stringer.
func (v VRAMFit) String() string {
	switch v {
	case VRAMFits:
		return "fits"
	case VRAMDoesNotFit:
		return "does not fit"
	default:
		return "not evaluated"
	}
}

// Verdict is the feasibility assessment of one candidate.
type Verdict struct {
	Candidate Candidate
	// FitsRAM is whether the estimate fits in total physical RAM.
	FitsRAM bool
	// VRAM is the three-valued GPU comparison.
	VRAM VRAMFit
	// Margin is the candidate's best usable capacity minus its estimate,
	// in bytes. Negative means overshoot.
	Margin float64
}

// Fits reports whether the candidate fits in any probed capacity.
func (v Verdict) Fits() bool {
	return v.FitsRAM || v.VRAM == VRAMFits
}

// Result is the complete feasibility answer for one request.
type Result struct {
	Request   modelurl.Request
	Resources memory.Resources
	// Verdicts follows candidate aggregation order.
	Verdicts []Verdict
	// Recommended indexes Verdicts. When Feasible is false it points at
	// the closest candidate (smallest overshoot) instead.
	Recommended int
	// Feasible is whether any candidate fits.
	Feasible bool
}

// Best returns the recommended verdict.
func (r *Result) Best() Verdict {
	return r.Verdicts[r.Recommended]
}

// Judge compares candidates against the probed resources and selects a
// recommendation: the smallest fitting estimate, preferring GPU-resident
// candidates, with ties broken toward higher precision. It is a pure
// function of its inputs, so re-runs give identical answers.
func Judge(cands []Candidate, res memory.Resources) ([]Verdict, int, bool) {
	if len(cands) == 0 {
		return nil, -1, false
	}
	verdicts := make([]Verdict, len(cands))
	for i, cand := range cands {
		v := Verdict{
			Candidate: cand,
			FitsRAM:   cand.Estimated <= float64(res.RAM),
			VRAM:      VRAMNotEvaluated,
		}
		if res.HasGPU {
			if cand.Estimated <= float64(res.VRAM) {
				v.VRAM = VRAMFits
			} else {
				v.VRAM = VRAMDoesNotFit
			}
		}
		v.Margin = margin(v, res)
		verdicts[i] = v
	}
	recommended, feasible := recommend(verdicts)
	return verdicts, recommended, feasible
}

// margin measures against the best capacity the candidate can use: VRAM
// when it fits there, RAM otherwise.
func margin(v Verdict, res memory.Resources) float64 {
	if v.VRAM == VRAMFits {
		return float64(res.VRAM) - v.Candidate.Estimated
	}
	return float64(res.RAM) - v.Candidate.Estimated
}

func recommend(verdicts []Verdict) (int, bool) {
	if i := pick(verdicts, func(v Verdict) bool { return v.VRAM == VRAMFits }); i >= 0 {
		return i, true
	}
	if i := pick(verdicts, func(v Verdict) bool { return v.FitsRAM }); i >= 0 {
		return i, true
	}
	return pickClosest(verdicts), false
}

// pick returns the eligible verdict with the smallest estimate. Equal
// estimates resolve toward the less lossy quantization: saving nothing is
// no reason to drop precision.
func pick(verdicts []Verdict, eligible func(Verdict) bool) int {
	best := -1
	for i, v := range verdicts {
		if !eligible(v) {
			continue
		}
		if best < 0 || less(v, verdicts[best]) {
			best = i
		}
	}
	return best
}

// pickClosest returns the verdict with the smallest overshoot.
func pickClosest(verdicts []Verdict) int {
	best := 0
	for i := 1; i < len(verdicts); i++ {
		if less(verdicts[i], verdicts[best]) {
			best = i
		}
	}
	return best
}

func less(a, b Verdict) bool {
	if a.Candidate.Estimated != b.Candidate.Estimated {
		return a.Candidate.Estimated < b.Candidate.Estimated
	}
	return quant.BitsPerWeight(a.Candidate.Label) > quant.BitsPerWeight(b.Candidate.Label)
}
