package tqdm

import (
	"io"
	"sync"
	"time"
)

// Options configures a progress bar. Start from DefaultOptions and override
// the fields you need; New silently replaces malformed values (negative
// interval, out-of-range smoothing, non-positive divisor) with defaults.
type Options struct {
	// Desc is the prefix text shown before the bar.
	Desc string

	// Total is the expected number of iterations. 0 means unknown.
	Total int64

	// Leave keeps the final rendered line on screen after Close.
	// When false, Close erases the line instead.
	Leave bool

	// Writer is the output stream. Default: os.Stderr.
	Writer io.Writer

	// NCols is the display width in columns. Values <= 0 mean "query the
	// terminal".
	NCols int

	// MinInterval is the minimum wall-clock time between redraws.
	MinInterval time.Duration

	// MinIters is the minimum number of iterations between redraws.
	// 0 enables the dynamic auto-tune (see Bar).
	MinIters int64

	// ASCII selects '#' fill characters instead of Unicode eighth-blocks.
	ASCII bool

	// Disable suppresses all output.
	Disable bool

	// Unit is the iteration unit label. Default: "it".
	Unit string

	// UnitScale formats counts and rate with k/M/G/... prefixes.
	UnitScale bool

	// DynamicNCols re-queries the terminal width on redraw instead of
	// trusting NCols.
	DynamicNCols bool

	// Smoothing is the configured rate-smoothing weight in [0,1].
	// It is validated and stored but the displayed rate is always the
	// instantaneous n/elapsed; see the package doc.
	Smoothing float64

	// BarFormat, when non-empty, switches rendering to a fixed simplified
	// shape instead of the standard meter. This is a stand-in, not a
	// template engine.
	BarFormat string

	// Initial is the counter's starting value.
	Initial int64

	// Position is an advisory line offset for stacking multiple bars on
	// one stream. Ordering across bars is the caller's responsibility.
	Position int

	// Postfix is trailing annotation text appended to the meter.
	Postfix string

	// UnitDivisor is the scaling divisor for UnitScale, 1000 or 1024.
	UnitDivisor float64

	// Colour tints the bar segment when the stream is a terminal.
	// Recognised values: black, red, green, yellow, blue, magenta, cyan,
	// white. Unknown values are ignored.
	Colour string

	// Delay is slept once before the bar is first shown.
	Delay time.Duration

	// WriteLock coordinates external writes (log lines) with bar redraws
	// sharing the same stream. When nil a package-private shared lock is
	// used. See Write.
	WriteLock sync.Locker
}

// DefaultOptions returns the baseline configuration: leave the bar on
// screen, redraw at most every 100ms, unit "it", decimal scaling.
func DefaultOptions() Options {
	return Options{
		Leave:       true,
		NCols:       -1,
		MinInterval: 100 * time.Millisecond,
		Unit:        "it",
		Smoothing:   0.3,
		Position:    -1,
		UnitDivisor: 1000,
	}
}

// normalize replaces malformed values with defaults. Malformed
// configuration is never an error.
func (o *Options) normalize() {
	if o.Writer == nil {
		o.Writer = defaultWriter
	}
	if o.Unit == "" {
		o.Unit = "it"
	}
	if o.MinInterval < 0 {
		o.MinInterval = 100 * time.Millisecond
	}
	if o.MinIters < 0 {
		o.MinIters = 0
	}
	if o.Smoothing < 0 || o.Smoothing > 1 {
		o.Smoothing = 0.3
	}
	if o.UnitDivisor <= 0 {
		o.UnitDivisor = 1000
	}
	if o.Initial < 0 {
		o.Initial = 0
	}
}
