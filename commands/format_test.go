package commands

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/modelfit/modelfit/pkg/check"
	"github.com/modelfit/modelfit/pkg/memory"
	"github.com/modelfit/modelfit/pkg/modelurl"
)

func plainColors(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes float64
		want  string
	}{
		{0, "0.00B"},
		{999, "999.00B"},
		{1000, "1.00kB"},
		{46e9, "46.00GB"},
		{1.4e11, "140.00GB"},
		{2.5e12, "2.50TB"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, humanSize(tt.bytes))
	}
}

func TestRenderResultFeasible(t *testing.T) {
	plainColors(t)
	result := &check.Result{
		Request: modelurl.Request{
			Kind:       modelurl.KindQuantizedFamily,
			Repository: "TheBloke/Llama-2-7B-GGUF",
		},
		Resources: memory.Resources{RAM: 48e9},
		Verdicts: []check.Verdict{
			{
				Candidate: check.Candidate{Label: "Q8_0", TotalSize: 70e9, Multiplier: 1.08, Estimated: 75.6e9},
				FitsRAM:   false,
				VRAM:      check.VRAMNotEvaluated,
				Margin:    48e9 - 75.6e9,
			},
			{
				Candidate: check.Candidate{Label: "Q4_K_M", TotalSize: 40e9, Multiplier: 1.15, Estimated: 46e9},
				FitsRAM:   true,
				VRAM:      check.VRAMNotEvaluated,
				Margin:    48e9 - 46e9,
			},
		},
		Recommended: 1,
		Feasible:    true,
	}

	out := renderResult(result)

	require.Contains(t, out, "Repository:  TheBloke/Llama-2-7B-GGUF")
	require.Contains(t, out, "Kind:        GGUF family")
	require.Contains(t, out, "RAM:         48.00GB")
	require.Contains(t, out, "VRAM:        none detected")
	require.Contains(t, out, "Q8_0")
	require.Contains(t, out, "75.60GB")
	require.Contains(t, out, "Q4_K_M")
	require.Contains(t, out, "46.00GB")
	require.Contains(t, out, "n/a", "VRAM column shows n/a without a GPU")
	require.Contains(t, out, "Recommended: Q4_K_M (46.00GB estimated) fits in RAM with 2.00GB to spare.")
	require.NotContains(t, out, "*", "no fallback footnote without a fallback candidate")
}

func TestRenderResultNotFeasible(t *testing.T) {
	plainColors(t)
	result := &check.Result{
		Request: modelurl.Request{
			Kind:       modelurl.KindRawWeights,
			Repository: "meta-llama/Llama-3.3-70B-Instruct",
		},
		Resources: memory.Resources{RAM: 64e9},
		Verdicts: []check.Verdict{
			{
				Candidate: check.Candidate{Label: "none", TotalSize: 140e9, Multiplier: 1.2, Estimated: 168e9},
				FitsRAM:   false,
				VRAM:      check.VRAMNotEvaluated,
				Margin:    64e9 - 168e9,
			},
		},
		Recommended: 0,
		Feasible:    false,
	}

	out := renderResult(result)

	require.Contains(t, out, "Kind:        raw weights")
	require.Contains(t, out, "Not feasible: closest option none needs 168.00GB, 104.00GB more than this machine has.")
}

func TestRenderResultQuantizedFileShowsPath(t *testing.T) {
	plainColors(t)
	result := &check.Result{
		Request: modelurl.Request{
			Kind:       modelurl.KindQuantizedFile,
			Repository: "TheBloke/Llama-2-7B-GGUF",
			FilePath:   "llama-2-7b.Q4_K_M.gguf",
		},
		Resources: memory.Resources{RAM: 16e9, VRAM: 24e9, HasGPU: true},
		Verdicts: []check.Verdict{
			{
				Candidate: check.Candidate{Label: "Q4_K_M", TotalSize: 4e9, Multiplier: 1.15, Estimated: 4.6e9},
				FitsRAM:   true,
				VRAM:      check.VRAMFits,
				Margin:    24e9 - 4.6e9,
			},
		},
		Recommended: 0,
		Feasible:    true,
	}

	out := renderResult(result)

	require.Contains(t, out, "File:        llama-2-7b.Q4_K_M.gguf")
	require.Contains(t, out, "VRAM:        24.00GB")
	require.Contains(t, out, "fits in VRAM")
}

func TestRenderResultFlagsFallbackMultiplier(t *testing.T) {
	plainColors(t)
	result := &check.Result{
		Request:   modelurl.Request{Kind: modelurl.KindQuantizedFamily, Repository: "org/franken-GGUF"},
		Resources: memory.Resources{RAM: 48e9},
		Verdicts: []check.Verdict{
			{
				Candidate: check.Candidate{
					Label:              "unknown",
					TotalSize:          9e9,
					Multiplier:         1.0,
					FallbackMultiplier: true,
					Estimated:          9e9,
				},
				FitsRAM: true,
				VRAM:    check.VRAMNotEvaluated,
				Margin:  48e9 - 9e9,
			},
		},
		Recommended: 0,
		Feasible:    true,
	}

	out := renderResult(result)

	require.Contains(t, out, "unknown*")
	require.Contains(t, out, "no multiplier configured for this quantization")
}

func TestResourceTable(t *testing.T) {
	plainColors(t)
	out := resourceTable(memory.Resources{RAM: 64e9, VRAM: 24e9, HasGPU: true})
	require.Contains(t, out, "RAM")
	require.Contains(t, out, "64.00GB")
	require.Contains(t, out, "VRAM")
	require.Contains(t, out, "24.00GB")

	out = resourceTable(memory.Resources{RAM: 64e9})
	require.Contains(t, out, "not detected")
}
