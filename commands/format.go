package commands

import (
	"bytes"
	"fmt"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/modelfit/modelfit/pkg/check"
	"github.com/modelfit/modelfit/pkg/memory"
	"github.com/modelfit/modelfit/pkg/modelurl"
)

var sizeUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// humanSize renders a byte count with decimal units and two digits of
// precision, matching the hub's own file size display.
func humanSize(v float64) string {
	return units.CustomSize("%.2f%s", v, 1000.0, sizeUnits)
}

func newPlainTable(buf *bytes.Buffer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	alignment := make([]int, len(headers))
	for i := range alignment {
		alignment[i] = tablewriter.ALIGN_LEFT
	}
	table.SetColumnAlignment(alignment)
	return table
}

// renderResult produces the feasibility report for one request: a summary
// header, one row per candidate and the recommendation line.
func renderResult(result *check.Result) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Repository:  %s\n", result.Request.Repository)
	fmt.Fprintf(&buf, "Kind:        %s\n", result.Request.Kind)
	if result.Request.Kind == modelurl.KindQuantizedFile {
		fmt.Fprintf(&buf, "File:        %s\n", result.Request.FilePath)
	}
	fmt.Fprintf(&buf, "RAM:         %s\n", humanSize(float64(result.Resources.RAM)))
	if result.Resources.HasGPU {
		fmt.Fprintf(&buf, "VRAM:        %s\n", humanSize(float64(result.Resources.VRAM)))
	} else {
		fmt.Fprintf(&buf, "VRAM:        none detected\n")
	}
	buf.WriteString("\n")
	buf.WriteString(verdictTable(result.Verdicts))
	buf.WriteString("\n")
	buf.WriteString(recommendation(result))
	buf.WriteString("\n")
	if hasFallback(result.Verdicts) {
		buf.WriteString("* no multiplier configured for this quantization; the file size is used as the estimate\n")
	}
	return buf.String()
}

func verdictTable(verdicts []check.Verdict) string {
	var buf bytes.Buffer
	table := newPlainTable(&buf, []string{"QUANT", "SIZE", "EST. MEMORY", "RAM", "VRAM"})
	for _, v := range verdicts {
		label := v.Candidate.Label
		if v.Candidate.FallbackMultiplier {
			label += "*"
		}
		table.Append([]string{
			label,
			humanSize(float64(v.Candidate.TotalSize)),
			humanSize(v.Candidate.Estimated),
			fitCell(v.FitsRAM),
			vramCell(v.VRAM),
		})
	}
	table.Render()
	return buf.String()
}

func fitCell(fits bool) string {
	if fits {
		return color.GreenString("yes")
	}
	return color.RedString("no")
}

func vramCell(fit check.VRAMFit) string {
	switch fit {
	case check.VRAMFits:
		return color.GreenString("yes")
	case check.VRAMDoesNotFit:
		return color.RedString("no")
	default:
		return color.New(color.Faint).Sprint("n/a")
	}
}

func hasFallback(verdicts []check.Verdict) bool {
	for _, v := range verdicts {
		if v.Candidate.FallbackMultiplier {
			return true
		}
	}
	return false
}

// recommendation summarizes the judgement: the smallest fitting candidate,
// or the closest miss when nothing fits.
func recommendation(result *check.Result) string {
	best := result.Best()
	cand := best.Candidate
	if !result.Feasible {
		return color.YellowString("Not feasible: closest option %s needs %s, %s more than this machine has.",
			cand.Label, humanSize(cand.Estimated), humanSize(-best.Margin))
	}
	target := "RAM"
	if best.VRAM == check.VRAMFits {
		target = "VRAM"
	}
	return color.GreenString("Recommended: %s (%s estimated) fits in %s with %s to spare.",
		cand.Label, humanSize(cand.Estimated), target, humanSize(best.Margin))
}

func resourceTable(res memory.Resources) string {
	var buf bytes.Buffer
	table := newPlainTable(&buf, []string{"RESOURCE", "CAPACITY"})
	table.Append([]string{"RAM", humanSize(float64(res.RAM))})
	if res.HasGPU {
		table.Append([]string{"VRAM", humanSize(float64(res.VRAM))})
	} else {
		table.Append([]string{"VRAM", "not detected"})
	}
	table.Render()
	return buf.String()
}
