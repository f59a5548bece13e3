package gpuinfo

import (
	"errors"

	"github.com/modelfit/modelfit/pkg/logging"
)

// ErrNotDetected reports that no usable GPU was found.
var ErrNotDetected = errors.New("no GPU detected")

// GPUInfo detects the total memory of the primary GPU.
type GPUInfo struct {
	log logging.Logger
}

func New(log logging.Logger) *GPUInfo {
	return &GPUInfo{log: log}
}

// GetVRAMSize returns the primary GPU's total memory in bytes. Strategies
// are tried in order: NVML (builds with the cuda tag), nvidia-smi, then the
// PCI inventory. ErrNotDetected means every strategy came up empty.
func (g *GPUInfo) GetVRAMSize() (uint64, error) {
	vram, err := nvmlVRAMSize()
	if err == nil {
		return vram, nil
	}
	g.log.Debugf("nvml: %s", err)

	vram, err = g.smiVRAMSize()
	if err == nil {
		return vram, nil
	}
	g.log.Debugf("nvidia-smi: %s", err)

	vram, err = g.ghwVRAMSize()
	if err == nil {
		return vram, nil
	}
	g.log.Debugf("pci inventory: %s", err)

	return 0, ErrNotDetected
}
