package check

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelfit/modelfit/pkg/memory"
	"github.com/modelfit/modelfit/pkg/quant"
)

// estimated builds a judged candidate set from the default table.
func estimated(t *testing.T, cands []Candidate) []Candidate {
	t.Helper()
	Estimate(cands, quant.DefaultTable())
	return cands
}

func TestJudgeRawRepoExceedsRAM(t *testing.T) {
	cands := estimated(t, []Candidate{{Label: quant.LabelNone, TotalSize: 140e9}})
	res := memory.Resources{RAM: 64e9}

	verdicts, recommended, feasible := Judge(cands, res)

	require.Len(t, verdicts, 1)
	require.False(t, feasible)
	require.False(t, verdicts[0].FitsRAM)
	require.Equal(t, VRAMNotEvaluated, verdicts[0].VRAM, "no GPU means no VRAM comparison")
	require.Equal(t, 0, recommended, "the closest candidate is still reported")
	require.Negative(t, verdicts[0].Margin)
}

func TestJudgeRecommendsSmallestFitting(t *testing.T) {
	cands := estimated(t, []Candidate{
		{Label: "Q8_0", TotalSize: 70e9},
		{Label: "Q4_K_M", TotalSize: 40e9},
	})
	res := memory.Resources{RAM: 48e9}

	verdicts, recommended, feasible := Judge(cands, res)

	require.True(t, feasible)
	require.Equal(t, 1, recommended)
	require.Equal(t, "Q4_K_M", verdicts[recommended].Candidate.Label)
	require.True(t, verdicts[1].FitsRAM)
	require.False(t, verdicts[0].FitsRAM, "75.6 GB does not fit in 48 GB")
}

func TestJudgeTieBreaksTowardPrecision(t *testing.T) {
	// Equal estimates: the less lossy quantization wins regardless of
	// listing order.
	cands := []Candidate{
		{Label: "Q4_K_M", Estimated: 10e9, Multiplier: 1.0},
		{Label: "Q8_0", Estimated: 10e9, Multiplier: 1.0},
	}
	res := memory.Resources{RAM: 16e9}

	_, recommended, feasible := Judge(cands, res)

	require.True(t, feasible)
	require.Equal(t, 1, recommended)
}

func TestJudgePrefersGPUFit(t *testing.T) {
	cands := []Candidate{
		{Label: "Q8_0", Estimated: 30e9, Multiplier: 1.0},
		{Label: "Q4_K_M", Estimated: 20e9, Multiplier: 1.0},
	}
	res := memory.Resources{RAM: 32e9, VRAM: 24e9, HasGPU: true}

	verdicts, recommended, feasible := Judge(cands, res)

	require.True(t, feasible)
	require.Equal(t, 1, recommended)
	require.Equal(t, VRAMFits, verdicts[1].VRAM)
	require.Equal(t, VRAMDoesNotFit, verdicts[0].VRAM)
	require.True(t, verdicts[0].FitsRAM, "RAM fit is judged independently of VRAM")

	require.Equal(t, float64(24e9)-20e9, verdicts[1].Margin, "margin against VRAM when it fits there")
	require.Equal(t, float64(32e9)-30e9, verdicts[0].Margin, "margin against RAM otherwise")
}

func TestJudgeClosestMissWhenNothingFits(t *testing.T) {
	cands := []Candidate{
		{Label: "F16", Estimated: 100e9, Multiplier: 1.0},
		{Label: "Q4_K_M", Estimated: 80e9, Multiplier: 1.0},
	}
	res := memory.Resources{RAM: 64e9}

	verdicts, recommended, feasible := Judge(cands, res)

	require.False(t, feasible)
	require.Equal(t, 1, recommended, "smallest overshoot is the closest miss")
	require.False(t, verdicts[recommended].Fits())
}

func TestJudgeNoGPUNeverEvaluatesVRAM(t *testing.T) {
	cands := []Candidate{{Label: "Q4_K_M", Estimated: 10e9, Multiplier: 1.0}}
	res := memory.Resources{RAM: 64e9, VRAM: 0, HasGPU: false}

	verdicts, _, feasible := Judge(cands, res)

	require.True(t, feasible)
	require.Equal(t, VRAMNotEvaluated, verdicts[0].VRAM)
	require.True(t, verdicts[0].Fits())
}

func TestJudgeDeterministic(t *testing.T) {
	cands := estimated(t, []Candidate{
		{Label: "Q8_0", TotalSize: 70e9},
		{Label: "Q4_K_M", TotalSize: 40e9},
		{Label: "Q6_K", TotalSize: 55e9},
	})
	res := memory.Resources{RAM: 48e9, VRAM: 24e9, HasGPU: true}

	v1, r1, f1 := Judge(cands, res)
	v2, r2, f2 := Judge(cands, res)

	require.Equal(t, v1, v2)
	require.Equal(t, r1, r2)
	require.Equal(t, f1, f2)
}

func TestJudgeEmpty(t *testing.T) {
	verdicts, recommended, feasible := Judge(nil, memory.Resources{RAM: 64e9})

	require.Nil(t, verdicts)
	require.Equal(t, -1, recommended)
	require.False(t, feasible)
}

func TestVRAMFitString(t *testing.T) {
	require.Equal(t, "fits", VRAMFits.String())
	require.Equal(t, "does not fit", VRAMDoesNotFit.String())
	require.Equal(t, "not evaluated", VRAMNotEvaluated.String())
}
