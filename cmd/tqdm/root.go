package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tqdm-go/tqdm/internal/config"
	"github.com/tqdm-go/tqdm/internal/pipe"
	"github.com/tqdm-go/tqdm/pkg/tqdm"
)

var flags = struct {
	desc        string
	total       int64
	leave       bool
	noLeave     bool
	file        string
	ncols       int
	minInterval float64
	minIters    int64
	ascii       bool
	disable     bool
	unit        string
	unitScale   bool
	dynNCols    bool
	smoothing   float64
	barFormat   string
	initial     int64
	position    int
	postfix     string
	unitDivisor float64
	colour      string
	delay       float64

	bytes    bool
	delim    string
	bufSize  int
	tee      bool
	update   bool
	updateTo bool
	nullOK   bool
}{}

var rootCmd = &cobra.Command{
	Use:   "tqdm",
	Short: "Monitor progress of data through a pipe",
	Long: `tqdm renders a live progress meter for data flowing through a pipe.

By default every newline on stdin advances the meter by one. With --bytes
the meter counts raw bytes instead; with --update or --update-to each input
line is parsed as a numeric increment or absolute counter value. Combine
with --tee to pass the stream through to stdout while monitoring it.

Defaults can be set through TQDM_* environment variables
(TQDM_MININTERVAL, TQDM_NCOLS, TQDM_ASCII, ...) or
~/.config/tqdm/config.yaml; command-line flags win.`,
	Example: `  seq 9999999 | tqdm --unit-scale | wc -l
  tar -cf - docs/ | tqdm --bytes --total $(du -sb docs/ | cut -f1) --tee > backup.tar
  seq 100 | while read n; do echo $n; sleep 0.02; done | tqdm --total 100 --update-to`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(cmd)
		if err != nil {
			return err
		}

		out, cleanup, err := openOutput(flags.file)
		if err != nil {
			return err
		}
		defer cleanup()
		opts.Writer = out

		bar := tqdm.New(opts)
		defer bar.Close()

		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Reading from terminal (Ctrl+D to end)")
		}

		popts, err := pipeOptions()
		if err != nil {
			return err
		}

		if _, err := pipe.Process(bar, os.Stdin, os.Stdout, popts); err != nil {
			return fmt.Errorf("processing input: %w", err)
		}
		return nil
	},
}

// buildOptions layers flag values over the environment/file configuration.
// Only flags the user actually set override the loaded config.
func buildOptions(cmd *cobra.Command) (tqdm.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return tqdm.Options{}, fmt.Errorf("loading config: %w", err)
	}
	opts := cfg.Apply(tqdm.DefaultOptions())

	changed := cmd.Flags().Changed

	opts.Desc = flags.desc
	opts.Total = flags.total
	opts.BarFormat = flags.barFormat
	opts.Initial = flags.initial
	opts.Position = flags.position
	opts.Postfix = flags.postfix

	if flags.noLeave {
		opts.Leave = false
	}
	if changed("ncols") {
		opts.NCols = flags.ncols
	}
	if changed("mininterval") {
		opts.MinInterval = time.Duration(flags.minInterval * float64(time.Second))
	}
	if changed("miniters") {
		opts.MinIters = flags.minIters
	}
	if changed("ascii") {
		opts.ASCII = flags.ascii
	}
	if changed("disable") {
		opts.Disable = flags.disable
	}
	if changed("unit") {
		opts.Unit = flags.unit
	}
	if changed("unit-scale") {
		opts.UnitScale = flags.unitScale
	}
	if changed("dynamic-ncols") {
		opts.DynamicNCols = flags.dynNCols
	}
	if changed("smoothing") {
		opts.Smoothing = flags.smoothing
	}
	if changed("unit-divisor") {
		opts.UnitDivisor = flags.unitDivisor
	}
	if changed("colour") {
		opts.Colour = flags.colour
	}
	if changed("delay") {
		opts.Delay = time.Duration(flags.delay * float64(time.Second))
	}

	if flags.bytes {
		opts.Unit = "B"
		opts.UnitScale = true
		opts.UnitDivisor = 1024
	}

	return opts, nil
}

// pipeOptions translates the processing flags, parsing the delimiter
// escape forms the CLI accepts.
func pipeOptions() (pipe.Options, error) {
	popts := pipe.Options{
		BufSize:  flags.bufSize,
		Tee:      flags.tee,
		Update:   flags.update,
		UpdateTo: flags.updateTo,
		NullOK:   flags.nullOK,
	}

	switch flags.delim {
	case "\\n", "\n":
		popts.Delim = '\n'
	case "\\0", "0":
		popts.Delim = 0
	default:
		if len(flags.delim) != 1 {
			return popts, fmt.Errorf("invalid delimiter %q: must be a single character, \\n or \\0", flags.delim)
		}
		popts.Delim = flags.delim[0]
	}

	if flags.bytes {
		popts.Delim = 0
	}
	return popts, nil
}

// openOutput resolves --file. The cleanup closes the file when one was
// opened; for stdout/stderr it is a no-op.
func openOutput(name string) (*os.File, func(), error) {
	switch name {
	case "", "stderr":
		return os.Stderr, func() {}, nil
	case "stdout":
		return os.Stdout, func() {}, nil
	default:
		f, err := os.Create(name)
		if err != nil {
			return nil, nil, fmt.Errorf("opening output file %s: %w", name, err)
		}
		return f, func() {
			if err := f.Close(); err != nil {
				log.Printf("closing %s: %v", name, err)
			}
		}, nil
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()

	f.StringVar(&flags.desc, "desc", "", "Prefix for the progress bar")
	f.Int64Var(&flags.total, "total", 0, "Total expected items/bytes (0 = unknown)")
	f.BoolVar(&flags.leave, "leave", true, "Leave progress bar after completion")
	f.BoolVar(&flags.noLeave, "no-leave", false, "Erase the progress bar on completion")
	f.StringVar(&flags.file, "file", "stderr", "Output stream: stdout, stderr or a path")
	f.IntVar(&flags.ncols, "ncols", -1, "Width of progress display")
	f.Float64Var(&flags.minInterval, "mininterval", 0.1, "Minimum update interval (s)")
	f.Int64Var(&flags.minIters, "miniters", 0, "Minimum iterations between refreshes (0 = auto)")
	f.BoolVar(&flags.ascii, "ascii", false, "Use ASCII bar characters")
	f.BoolVar(&flags.disable, "disable", false, "Disable the progress bar")
	f.StringVar(&flags.unit, "unit", "it", "Unit text")
	f.BoolVar(&flags.unitScale, "unit-scale", false, "Auto-scale units")
	f.BoolVar(&flags.dynNCols, "dynamic-ncols", false, "Re-query terminal width while running")
	f.Float64Var(&flags.smoothing, "smoothing", 0.3, "Rate smoothing factor")
	f.StringVar(&flags.barFormat, "bar-format", "", "Custom bar format string")
	f.Int64Var(&flags.initial, "initial", 0, "Initial counter value")
	f.IntVar(&flags.position, "position", -1, "Line position for multi-bars")
	f.StringVar(&flags.postfix, "postfix", "", "Postfix annotation text")
	f.Float64Var(&flags.unitDivisor, "unit-divisor", 1000, "Unit divisor (1000/1024)")
	f.StringVar(&flags.colour, "colour", "", "Progress bar colour")
	f.Float64Var(&flags.delay, "delay", 0, "Initial delay before showing (s)")

	f.BoolVar(&flags.bytes, "bytes", false, "Bytes mode (unit=B, scaled, divisor 1024)")
	f.StringVar(&flags.delim, "delim", "\\n", "Delimiter to count (\\n, \\0 or a character)")
	f.IntVar(&flags.bufSize, "buf-size", 8192, "I/O buffer size")
	f.BoolVar(&flags.tee, "tee", false, "Copy input to stdout as well")
	f.BoolVar(&flags.update, "update", false, "Treat each input line as an increment")
	f.BoolVar(&flags.updateTo, "update-to", false, "Treat each input line as an absolute value")
	f.BoolVar(&flags.nullOK, "null", false, "Allow NUL bytes in tee output")

	rootCmd.AddCommand(versionCmd)
}
