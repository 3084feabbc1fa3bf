package tqdm

import (
	"fmt"
	"sync"
	"time"
)

const rateHistoryCap = 10

// epsilon below which elapsed time is treated as zero for the rate.
const rateEpsilon = 1e-6 // seconds

// Bar is a progress meter over a monotonically advancing counter.
// All methods are safe for concurrent use. Once closed, mutating calls
// are silent no-ops.
type Bar struct {
	mu   sync.Mutex
	opts Options

	writeLock sync.Locker

	n              int64 // current value; may exceed opts.Total
	count          int64 // number of Add calls / iterator yields
	lastPrintCount int64

	startTime     time.Time
	lastPrintTime time.Time

	closed     bool
	paused     bool
	pauseStart time.Time
	totalPause time.Duration

	// minIters is the live redraw gate. It starts at opts.MinIters and,
	// in auto mode (0), may be raised once by the dynamic tuner; it never
	// returns to auto on its own, not even across Reset.
	minIters int64

	// rateHistory is allocated for smoothing but never consulted; the
	// displayed rate is the instantaneous n/elapsed. See the package doc.
	rateHistory    []float64
	rateHistoryIdx int

	cachedWidth    int
	lastWidthCheck time.Time
}

// New creates a progress bar from opts. Malformed option values are
// silently replaced with defaults. When opts.Delay is positive, New
// sleeps for that long before returning.
func New(opts Options) *Bar {
	opts.normalize()

	now := time.Now()
	b := &Bar{
		opts:           opts,
		writeLock:      opts.WriteLock,
		n:              opts.Initial,
		lastPrintCount: opts.Initial,
		startTime:      now,
		lastPrintTime:  now,
		minIters:       opts.MinIters,
		rateHistory:    make([]float64, rateHistoryCap),
		cachedWidth:    80,
	}
	if b.writeLock == nil {
		b.writeLock = &defaultWriteLock
	}

	if opts.Delay > 0 {
		time.Sleep(opts.Delay)
	}
	return b
}

// N returns the current counter value.
func (b *Bar) N() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

// Count returns the number of advance calls since creation or the last
// Reset.
func (b *Bar) Count() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Total returns the configured total, 0 when unknown.
func (b *Bar) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opts.Total
}

// MinIters returns the live minimum-iterations redraw gate. Starts at
// Options.MinIters and may have been raised by the auto-tuner.
func (b *Bar) MinIters() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.minIters
}

// Add advances the counter by delta (which may be 0) and redraws when the
// cadence policy says one is due.
func (b *Bar) Add(delta int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.opts.Disable {
		return
	}

	b.n += delta
	b.count++

	now := time.Now()
	b.tuneMinIters(now)
	if b.shouldPrint(now, b.n-b.lastPrintCount) {
		b.render(now)
	}
}

// Set moves the counter to target, upward or downward, and reports
// whether a redraw happened. The cadence decision counts only forward
// movement.
func (b *Bar) Set(target int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.opts.Disable {
		return false
	}

	delta := target - b.n
	if delta < 0 {
		delta = 0
	}
	b.n = target

	now := time.Now()
	b.tuneMinIters(now)
	if !b.shouldPrint(now, delta) {
		return false
	}
	b.render(now)
	return true
}

// Reset restarts the bar: the counter returns to Options.Initial, timers
// and pause bookkeeping restart, and the rate history is cleared. A
// positive newTotal replaces the configured total; 0 keeps it. The
// auto-tuned redraw gate is deliberately not reset.
func (b *Bar) Reset(newTotal int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	now := time.Now()
	b.n = b.opts.Initial
	b.count = 0
	b.startTime = now
	b.lastPrintTime = now
	b.lastPrintCount = b.n
	b.totalPause = 0
	b.paused = false
	b.pauseStart = time.Time{}

	if newTotal > 0 {
		b.opts.Total = newTotal
	}

	for i := range b.rateHistory {
		b.rateHistory[i] = 0
	}
	b.rateHistoryIdx = 0
}

// Close finalizes the bar. With Leave set it forces one last render and
// appends a newline so the line survives; otherwise it erases the line.
// Close is idempotent and later mutating calls are no-ops.
func (b *Bar) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	if b.opts.Leave && !b.opts.Disable {
		b.render(time.Now())
		fmt.Fprint(b.opts.Writer, "\n")
	} else if !b.opts.Leave {
		b.clear()
	}
	b.closed = true
}

// Clear erases the current line without finalizing the bar.
func (b *Bar) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear()
}

// Refresh forces an immediate redraw, bypassing the cadence policy.
func (b *Bar) Refresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.opts.Disable {
		return
	}
	b.render(time.Now())
}

// Pause stops the elapsed clock until Unpause. Paused time is excluded
// from the elapsed and rate calculations once Unpause is called.
func (b *Bar) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.paused {
		return
	}
	b.paused = true
	b.pauseStart = time.Now()
}

// Unpause restarts the elapsed clock, folding the paused span into the
// pause total. A no-op when the bar is not paused.
func (b *Bar) Unpause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.paused {
		return
	}
	b.totalPause += time.Since(b.pauseStart)
	b.paused = false
	b.pauseStart = time.Time{}
}

// SetDescription replaces the prefix text, optionally forcing a redraw.
func (b *Bar) SetDescription(desc string, refresh bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.opts.Desc = desc
	if refresh && !b.opts.Disable {
		b.render(time.Now())
	}
}

// SetPostfixText replaces the trailing annotation text, optionally
// forcing a redraw.
func (b *Bar) SetPostfixText(text string, refresh bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.opts.Postfix = text
	if refresh && !b.opts.Disable {
		b.render(time.Now())
	}
}

// SetPostfix stores a rendered snapshot of p as the trailing annotation.
// The Postfix itself stays owned by the caller; later mutations of p are
// not reflected until SetPostfix is called again. A nil p clears the
// annotation.
func (b *Bar) SetPostfix(p *Postfix) {
	text := ""
	if p != nil {
		text = p.Format()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.opts.Postfix = text
}

// Write emits a log line on the bar's stream without corrupting the
// meter: the current line is cleared, s is printed with a trailing
// newline, and the next redraw repaints the bar. The bar's injected
// write lock (Options.WriteLock) serialises this against redraws and
// other writers sharing the stream.
func (b *Bar) Write(s string) {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	fmt.Fprintf(b.opts.Writer, "\r\x1b[K%s\n", s)
}

// tuneMinIters is the dynamic redraw gate: in auto mode (minIters == 0),
// when updates arrive faster than MinInterval, the gate is raised to
// twice the count observed since the last print. The raise is one-way.
func (b *Bar) tuneMinIters(now time.Time) {
	if b.minIters != 0 {
		return
	}
	dt := now.Sub(b.lastPrintTime)
	if dt <= 0 || dt >= b.opts.MinInterval {
		return
	}
	if diff := b.n - b.lastPrintCount; diff > 0 {
		b.minIters = 2 * diff
	}
}

// shouldPrint evaluates the redraw cadence. Completion always prints;
// otherwise the iteration gate and then the wall-clock gate must both
// pass.
func (b *Bar) shouldPrint(now time.Time, countSince int64) bool {
	complete := b.opts.Total > 0 && b.n >= b.opts.Total
	if !complete && b.minIters != 0 && countSince < b.minIters {
		return false
	}
	return complete || now.Sub(b.lastPrintTime) >= b.opts.MinInterval
}

// elapsedSeconds returns wall-clock seconds since start, excluding
// accumulated pause time. Never negative.
func (b *Bar) elapsedSeconds(now time.Time) float64 {
	e := now.Sub(b.startTime) - b.totalPause
	if e < 0 {
		e = 0
	}
	return e.Seconds()
}

// render composes and writes the meter, then records the print. Callers
// hold b.mu.
func (b *Bar) render(now time.Time) {
	if b.closed || b.opts.Disable {
		return
	}

	elapsed := b.elapsedSeconds(now)
	rate := 0.0
	if elapsed > rateEpsilon {
		rate = float64(b.n) / elapsed
	}

	colour := ""
	if b.opts.Colour != "" && isTerminal(b.opts.Writer) {
		colour = b.opts.Colour
	}

	meter := formatMeter(meterParams{
		n:           b.n,
		total:       b.opts.Total,
		elapsed:     elapsed,
		ncols:       b.ncols(now),
		prefix:      b.opts.Desc,
		ascii:       b.opts.ASCII,
		unit:        b.opts.Unit,
		unitScale:   b.opts.UnitScale,
		rate:        rate,
		barFormat:   b.opts.BarFormat,
		postfix:     b.opts.Postfix,
		unitDivisor: b.opts.UnitDivisor,
		colour:      colour,
	})

	fmt.Fprintf(b.opts.Writer, "\r\x1b[K%s", meter)

	b.lastPrintTime = now
	b.lastPrintCount = b.n
}

// clear erases the current line. Callers hold b.mu.
func (b *Bar) clear() {
	if b.opts.Disable {
		return
	}
	fmt.Fprint(b.opts.Writer, "\r\x1b[K")
}
