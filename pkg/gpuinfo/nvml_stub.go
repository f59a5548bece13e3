//go:build !cuda

package gpuinfo

import "errors"

func nvmlVRAMSize() (uint64, error) {
	return 0, errors.New("built without cuda support")
}
