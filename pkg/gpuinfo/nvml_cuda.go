//go:build cuda

package gpuinfo

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// nvmlVRAMSize queries the primary device through NVML. Preferred over
// nvidia-smi because it reports exact byte counts.
func nvmlVRAMSize() (uint64, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return 0, fmt.Errorf("nvml init: %s", nvml.ErrorString(ret))
	}
	defer nvml.Shutdown()

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("nvml device 0: %s", nvml.ErrorString(ret))
	}
	mem, ret := device.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("nvml memory info: %s", nvml.ErrorString(ret))
	}
	return mem.Total, nil
}
