package commands

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	parser "github.com/gpustack/gguf-parser-go"
	"github.com/spf13/cobra"

	"github.com/modelfit/modelfit/pkg/modelurl"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var contextSize int32
	c := &cobra.Command{
		Use:   "inspect URL",
		Short: "Display GGUF metadata for one quantized file",
		Long: `Inspect reads the header of a remote GGUF file with ranged requests and
prints its architecture, parameter count and quantization, plus a llama.cpp
memory estimate for the file. Nothing is downloaded.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf(
					"'modelfit inspect' requires 1 argument.\n\n" +
						"Usage:  modelfit inspect URL\n\n" +
						"See 'modelfit inspect --help' for more information",
				)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := newRuntime(opts)
			req, err := modelurl.Classify(args[0])
			if err != nil {
				return guidance(err)
			}
			if req.Kind != modelurl.KindQuantizedFile {
				return fmt.Errorf("%q does not point at a single .gguf file; link one with /blob/main/", args[0])
			}

			url := rt.client.ResolveURL(req.Repository, req.FilePath)
			var file *parser.GGUFFile
			err = withSpinner("Reading GGUF metadata...", !opts.noColor, func() error {
				var perr error
				if token := os.Getenv("HF_TOKEN"); token != "" {
					file, perr = parser.ParseGGUFFileRemote(cmd.Context(), url, parser.UseBearerAuth(token))
				} else {
					file, perr = parser.ParseGGUFFileRemote(cmd.Context(), url)
				}
				return perr
			})
			if err != nil {
				return fmt.Errorf("reading GGUF metadata for %q: %w", req.FilePath, err)
			}
			cmd.Print(ggufTable(req, file, contextSize))
			return nil
		},
	}
	c.Flags().Int32Var(&contextSize, "context", 0, "Context length for the memory estimate (0 means the model's maximum)")
	return c
}

// ggufTable renders the file's metadata and a llama.cpp runtime estimate.
func ggufTable(req modelurl.Request, file *parser.GGUFFile, contextSize int32) string {
	md := file.Metadata()
	arch := file.Architecture()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Repository:  %s\n", req.Repository)
	fmt.Fprintf(&buf, "File:        %s\n", req.FilePath)
	buf.WriteString("\n")

	table := newPlainTable(&buf, []string{"PROPERTY", "VALUE"})
	table.Append([]string{"Model name", md.Name})
	table.Append([]string{"Architecture", arch.Architecture})
	table.Append([]string{"Parameters", md.Parameters.String()})
	table.Append([]string{"Quantization", md.FileType.String()})
	table.Append([]string{"Block count", strconv.FormatUint(uint64(arch.BlockCount), 10)})
	table.Append([]string{"Max context", strconv.FormatUint(uint64(arch.MaximumContextLength), 10)})
	table.Append([]string{"Embedding length", strconv.FormatUint(uint64(arch.EmbeddingLength), 10)})
	table.Append([]string{"Model size", humanSize(float64(md.Size))})
	table.Render()

	buf.WriteString("\n")
	buf.WriteString(runEstimate(file, contextSize))
	return buf.String()
}

// runEstimate sums the weight, KV cache and compute buffers that a
// llama.cpp run of this file would resident-allocate, split by device. The
// host row carries everything a CPU-only run needs; the offload row is the
// GPU share with every layer offloaded.
func runEstimate(file *parser.GGUFFile, contextSize int32) string {
	eopts := []parser.GGUFRunEstimateOption{
		parser.WithLLaMACppLogicalBatchSize(2048),
		parser.WithLLaMACppOffloadLayers(999),
	}
	if contextSize > 0 {
		eopts = append(eopts, parser.WithLLaMACppContextSize(contextSize))
	}
	estimate := file.EstimateLLaMACppRun(eopts...)

	ram := uint64(estimate.Devices[0].Weight.Sum() + estimate.Devices[0].KVCache.Sum() + estimate.Devices[0].Computation.Sum())
	var vram uint64
	if len(estimate.Devices) > 1 {
		vram = uint64(estimate.Devices[1].Weight.Sum() + estimate.Devices[1].KVCache.Sum() + estimate.Devices[1].Computation.Sum())
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Estimated llama.cpp memory at context %d:\n", estimate.ContextSize)
	table := newPlainTable(&buf, []string{"DEVICE", "REQUIRED"})
	table.Append([]string{"Host RAM", humanSize(float64(ram))})
	if vram > 0 {
		table.Append([]string{"GPU (full offload)", humanSize(float64(vram))})
	}
	table.Render()
	return buf.String()
}
