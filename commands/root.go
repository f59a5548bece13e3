package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/modelfit/modelfit/pkg/check"
	"github.com/modelfit/modelfit/pkg/gpuinfo"
	"github.com/modelfit/modelfit/pkg/huggingface"
	"github.com/modelfit/modelfit/pkg/logging"
	"github.com/modelfit/modelfit/pkg/memory"
	"github.com/modelfit/modelfit/pkg/quant"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	logLevel    string
	multipliers string
	hubURL      string
	ram         string
	vram        string
	noColor     bool
}

// NewRootCmd builds the modelfit command tree. Without arguments the root
// command runs the interactive prompt loop; with one argument it behaves
// like `modelfit check`.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	c := &cobra.Command{
		Use:   "modelfit [IDENTIFIER]",
		Short: "Estimate whether a Hugging Face model fits in local memory",
		Long: `modelfit compares a model's published weight sizes against the RAM and VRAM
of this machine and, for GGUF repositories, recommends the most
memory-efficient quantization that still fits.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := newRuntime(opts)
			if len(args) == 1 {
				return rt.checkOne(cmd, args[0])
			}
			return rt.interact(cmd)
		},
	}

	flags := c.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warning, error)")
	flags.StringVar(&opts.multipliers, "multipliers", "", "Path to a quantization multiplier table (.yaml, .json or .toml)")
	flags.StringVar(&opts.ram, "ram", "", "Override detected RAM (e.g. 64GiB)")
	flags.StringVar(&opts.vram, "vram", "", "Override detected VRAM (e.g. 24GiB; 0 means no GPU)")
	flags.StringVar(&opts.hubURL, "hub-url", "", "Alternative Hugging Face hub endpoint")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output and the progress spinner")
	_ = flags.MarkHidden("hub-url")

	c.AddCommand(
		newCheckCmd(opts),
		newInspectCmd(opts),
		newResourcesCmd(opts),
		newVersionCmd(),
	)
	return c
}

// runtime bundles the collaborators wired from flags and environment for
// one invocation.
type runtime struct {
	opts   *rootOptions
	log    logging.Logger
	table  *quant.Table
	client *huggingface.Client
}

func newRuntime(opts *rootOptions) *runtime {
	level := opts.logLevel
	if level == "" {
		level = os.Getenv("MODELFIT_LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}
	log := logging.New(level)

	multipliers := opts.multipliers
	if multipliers == "" {
		multipliers = os.Getenv("MODELFIT_MULTIPLIERS")
	}

	return &runtime{
		opts:  opts,
		log:   log,
		table: quant.LoadTable(multipliers, logging.ForComponent(log, "config")),
		client: huggingface.NewClient(
			huggingface.WithEndpoint(opts.hubURL),
			huggingface.WithToken(os.Getenv("HF_TOKEN")),
			huggingface.WithUserAgent("modelfit/"+Version),
		),
	}
}

// probe measures the machine, honoring the --ram/--vram overrides.
func (rt *runtime) probe() (memory.Resources, error) {
	var popts []memory.Option
	if rt.opts.ram != "" {
		n, err := units.RAMInBytes(rt.opts.ram)
		if err != nil {
			return memory.Resources{}, fmt.Errorf("parsing --ram %q: %w", rt.opts.ram, err)
		}
		popts = append(popts, memory.WithRAMOverride(uint64(n)))
	}
	if rt.opts.vram != "" {
		n, err := units.RAMInBytes(rt.opts.vram)
		if err != nil {
			return memory.Resources{}, fmt.Errorf("parsing --vram %q: %w", rt.opts.vram, err)
		}
		popts = append(popts, memory.WithVRAMOverride(uint64(n)))
	}
	gpu := gpuinfo.New(logging.ForComponent(rt.log, "gpuinfo"))
	return memory.Probe(logging.ForComponent(rt.log, "memory"), gpu, popts...)
}

// checkOne runs the full pipeline for one identifier and renders the
// report. Resources are probed fresh per request, so nothing carries over
// between loop iterations.
func (rt *runtime) checkOne(cmd *cobra.Command, identifier string) error {
	var result *check.Result
	err := withSpinner("Analyzing model...", !rt.opts.noColor, func() error {
		res, err := rt.probe()
		if err != nil {
			return err
		}
		checker := check.New(logging.ForComponent(rt.log, "check"), rt.client, rt.table, nil, res)
		result, err = checker.Check(cmd.Context(), identifier)
		return err
	})
	if err != nil {
		return guidance(err)
	}
	cmd.Print(renderResult(result))
	return nil
}

// interact prompts for identifiers until 'exit' or EOF. Pipeline errors
// are reported and the loop continues.
func (rt *runtime) interact(cmd *cobra.Command) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Println("\nEnter a Hugging Face model URL (or 'exit' to quit):")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			cmd.Println()
			return nil
		}
		identifier := strings.TrimSpace(scanner.Text())
		if identifier == "" {
			continue
		}
		if strings.EqualFold(identifier, "exit") {
			return nil
		}
		cmd.Printf("\nAnalyzing: %s\n", logging.Sanitize(identifier))
		if err := rt.checkOne(cmd, identifier); err != nil {
			cmd.PrintErrln(err)
		}
	}
}
