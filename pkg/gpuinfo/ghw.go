package gpuinfo

import (
	"errors"

	"github.com/jaypipes/ghw"
)

// ghwVRAMSize reads GPU memory from the PCI inventory. It is the last
// resort when no NVIDIA tooling is installed; integrated GPUs without a
// dedicated memory node report nothing here.
func (g *GPUInfo) ghwVRAMSize() (uint64, error) {
	gpu, err := ghw.GPU()
	if err != nil {
		return 0, err
	}
	for _, card := range gpu.GraphicsCards {
		if card == nil || card.Node == nil || card.Node.Memory == nil {
			continue
		}
		if card.Node.Memory.TotalUsableBytes > 0 {
			return uint64(card.Node.Memory.TotalUsableBytes), nil
		}
	}
	return 0, errors.New("no graphics card reports dedicated memory")
}
