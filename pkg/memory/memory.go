package memory

import (
	"errors"
	"fmt"

	"github.com/elastic/go-sysinfo"
	"golang.org/x/sync/errgroup"

	"github.com/modelfit/modelfit/pkg/logging"
)

// Resources holds the memory capacities of the local machine.
type Resources struct {
	// RAM is total physical memory in bytes.
	RAM uint64
	// VRAM is the total memory of the primary GPU in bytes. Zero when
	// HasGPU is false.
	VRAM uint64
	// HasGPU reports whether a usable GPU was detected. Absence of a GPU
	// is a normal state, distinct from a GPU with no memory.
	HasGPU bool
}

// VRAMSource supplies the primary GPU's total memory size.
type VRAMSource interface {
	GetVRAMSize() (uint64, error)
}

// Option adjusts probing behavior.
type Option func(*prober)

// WithRAMOverride skips the RAM probe and uses the given value.
func WithRAMOverride(bytes uint64) Option {
	return func(p *prober) {
		p.ramSet = true
		p.ram = bytes
	}
}

// WithVRAMOverride skips the VRAM probe and uses the given value. A zero
// value declares that no GPU is present.
func WithVRAMOverride(bytes uint64) Option {
	return func(p *prober) {
		p.vramSet = true
		p.vram = bytes
	}
}

type prober struct {
	log     logging.Logger
	gpu     VRAMSource
	ramSet  bool
	ram     uint64
	vramSet bool
	vram    uint64
}

// Probe measures the local machine once; the returned Resources value is
// immutable. RAM and VRAM are probed concurrently. A VRAM failure degrades
// to HasGPU=false with a warning; a RAM failure is an error, since verdicts
// without a RAM figure are meaningless.
func Probe(log logging.Logger, gpu VRAMSource, opts ...Option) (Resources, error) {
	p := &prober{log: log, gpu: gpu}
	for _, opt := range opts {
		opt(p)
	}

	var (
		ram    uint64
		vram   uint64
		hasGPU bool
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		r, err := p.probeRAM()
		if err != nil {
			return err
		}
		ram = r
		return nil
	})
	g.Go(func() error {
		vram, hasGPU = p.probeVRAM()
		return nil
	})
	if err := g.Wait(); err != nil {
		return Resources{}, err
	}

	p.log.Debugf("Detected %d MB RAM", ram/1024/1024)
	if hasGPU {
		p.log.Debugf("Detected %d MB VRAM", vram/1024/1024)
	} else {
		p.log.Debugf("No GPU detected")
	}
	return Resources{RAM: ram, VRAM: vram, HasGPU: hasGPU}, nil
}

func (p *prober) probeRAM() (uint64, error) {
	if p.ramSet {
		return p.ram, nil
	}
	host, err := sysinfo.Host()
	if err != nil {
		return 0, fmt.Errorf("reading host info: %w", err)
	}
	mem, err := host.Memory()
	if err != nil {
		return 0, fmt.Errorf("reading host memory: %w", err)
	}
	if mem.Total == 0 {
		return 0, errors.New("host reports zero physical memory")
	}
	return mem.Total, nil
}

func (p *prober) probeVRAM() (uint64, bool) {
	if p.vramSet {
		return p.vram, p.vram > 0
	}
	if p.gpu == nil {
		return 0, false
	}
	vram, err := p.gpu.GetVRAMSize()
	if err != nil {
		p.log.Warnf("Could not read VRAM size: %s", err)
		return 0, false
	}
	if vram == 0 {
		p.log.Debugf("GPU reports no dedicated memory")
		return 0, false
	}
	return vram, true
}
