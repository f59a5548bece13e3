package gpuinfo

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const smiTimeout = 30 * time.Second

// smiVRAMSize shells out to nvidia-smi for GPU memory totals.
func (g *GPUInfo) smiVRAMSize() (uint64, error) {
	smi, err := exec.LookPath("nvidia-smi")
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), smiTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, smi, "--query-gpu=memory.total", "--format=csv,noheader,nounits").Output()
	if err != nil {
		return 0, fmt.Errorf("nvidia-smi: %w", err)
	}
	return parseSMIMemory(string(out))
}

// parseSMIMemory reads the first GPU's total memory from nvidia-smi CSV
// output. Values are MiB per the nounits format. Unified-memory devices
// report "[N/A]" and are skipped.
func parseSMIMemory(out string) (uint64, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "[N/A]") {
			continue
		}
		mib, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		return uint64(mib) * 1024 * 1024, nil
	}
	return 0, errors.New("no parsable GPU memory in nvidia-smi output")
}
