package tqdm

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// testOptions returns options that render deterministically into buf:
// fixed width, no redraw throttling, no startup delay.
func testOptions(buf *bytes.Buffer) Options {
	opts := DefaultOptions()
	opts.Writer = buf
	opts.NCols = 80
	opts.MinInterval = 0
	return opts
}

func TestAddAccumulates(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 100
	bar := New(opts)

	bar.Add(1)
	bar.Add(1)
	bar.Add(0)
	bar.Add(5)

	if got := bar.N(); got != 7 {
		t.Errorf("N() = %d, want 7", got)
	}
	if got := bar.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}

func TestSetMovesBothWays(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 100
	bar := New(opts)

	bar.Set(50)
	bar.Set(10)
	if got := bar.N(); got != 10 {
		t.Errorf("N() after rewind = %d, want 10", got)
	}

	bar.Set(60)
	if got := bar.N(); got != 60 {
		t.Errorf("N() after re-advance = %d, want 60", got)
	}
}

func TestSetReportsRedraw(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 100
	opts.MinInterval = time.Hour
	opts.MinIters = 1
	bar := New(opts)

	if bar.Set(10) {
		t.Error("Set(10) redrew despite the interval gate")
	}
	// Completion bypasses both gates.
	if !bar.Set(100) {
		t.Error("Set(100) did not redraw on completion")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 100
	opts.Initial = 5
	bar := New(opts)

	bar.Add(20)
	bar.rateHistory[0] = 1.5
	bar.Reset(200)

	if got := bar.N(); got != 5 {
		t.Errorf("N() after Reset = %d, want initial 5", got)
	}
	if got := bar.Count(); got != 0 {
		t.Errorf("Count() after Reset = %d, want 0", got)
	}
	if got := bar.Total(); got != 200 {
		t.Errorf("Total() after Reset(200) = %d, want 200", got)
	}
	if bar.rateHistory[0] != 0 {
		t.Error("rate history not cleared by Reset")
	}

	// A zero newTotal keeps the current total.
	bar.Reset(0)
	if got := bar.Total(); got != 200 {
		t.Errorf("Total() after Reset(0) = %d, want 200", got)
	}
}

func TestRenderStartsWithLineClear(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	bar := New(opts)

	bar.Refresh()
	if !strings.HasPrefix(buf.String(), "\r\x1b[K") {
		t.Errorf("render output %q does not start with CR + line clear", buf.String())
	}
}

func TestRefreshContainsMeter(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 1000
	opts.Desc = "Processing"
	bar := New(opts)

	bar.Set(750)
	bar.Refresh()

	out := buf.String()
	if !strings.Contains(out, "75%") {
		t.Errorf("output %q missing 75%%", out)
	}
	if !strings.Contains(out, "Processing") {
		t.Errorf("output %q missing description", out)
	}
}

func TestCloseIdempotent(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	bar := New(opts)
	bar.Add(10)

	bar.Close()
	first := buf.String()
	bar.Close()

	if got := buf.String(); got != first {
		t.Errorf("second Close changed output: %q -> %q", first, got)
	}
	if !strings.HasSuffix(first, "\n") {
		t.Errorf("Close with Leave did not end with newline: %q", first)
	}
}

func TestCloseWithoutLeaveClearsLine(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	opts.Leave = false
	bar := New(opts)

	bar.Add(5)
	bar.Close()

	if !strings.HasSuffix(buf.String(), "\r\x1b[K") {
		t.Errorf("Close without Leave did not clear the line: %q", buf.String())
	}
}

func TestClosedBarIsInert(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	bar := New(opts)
	bar.Close()
	after := buf.Len()

	bar.Add(5)
	bar.Set(7)
	bar.Reset(20)
	bar.Refresh()
	bar.SetDescription("late", true)
	bar.SetPostfixText("late", true)

	if bar.N() != 0 {
		t.Errorf("closed bar counter moved to %d", bar.N())
	}
	if buf.Len() != after {
		t.Error("closed bar wrote output")
	}
}

func TestDisableSuppressesOutput(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	opts.Disable = true
	bar := New(opts)

	bar.Add(10)
	bar.Refresh()
	bar.Close()

	if buf.Len() != 0 {
		t.Errorf("disabled bar wrote %q", buf.String())
	}
}

func TestIntervalGateHoldsUntilComplete(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	opts.MinInterval = time.Hour
	opts.MinIters = 1
	bar := New(opts)

	bar.Add(5)
	if buf.Len() != 0 {
		t.Errorf("redraw happened before the interval elapsed: %q", buf.String())
	}

	bar.Add(5) // completion overrides the interval gate
	if buf.Len() == 0 {
		t.Error("no redraw on completion")
	}
}

func TestDynamicMinItersAutoTune(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 1000000
	opts.MinInterval = 100 * time.Millisecond
	bar := New(opts)

	// A burst completing well under MinInterval must raise the gate to
	// twice the count seen since the last print.
	time.Sleep(time.Millisecond)
	for i := 0; i < 50; i++ {
		bar.Add(1)
	}

	got := bar.MinIters()
	if got == 0 {
		t.Fatal("auto-tune did not trigger")
	}
	if got != 2 {
		t.Errorf("MinIters() = %d, want 2 (first burst step was 1)", got)
	}

	// The raise is sticky: waiting out the interval must not reset it.
	time.Sleep(120 * time.Millisecond)
	bar.Add(1)
	if bar.MinIters() != got {
		t.Errorf("MinIters() reset to %d after interval", bar.MinIters())
	}

	// And it survives Reset.
	bar.Reset(0)
	if bar.MinIters() != got {
		t.Errorf("MinIters() = %d after Reset, want %d", bar.MinIters(), got)
	}
}

func TestDynamicMinItersTracksBurstSize(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 1000000
	opts.MinInterval = 100 * time.Millisecond
	bar := New(opts)

	time.Sleep(time.Millisecond)
	bar.Add(25)

	if got := bar.MinIters(); got != 50 {
		t.Errorf("MinIters() = %d, want 2*25", got)
	}
}

func TestExplicitMinItersNeverTunes(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 1000000
	opts.MinInterval = 100 * time.Millisecond
	opts.MinIters = 3
	bar := New(opts)

	time.Sleep(time.Millisecond)
	for i := 0; i < 50; i++ {
		bar.Add(1)
	}

	if got := bar.MinIters(); got != 3 {
		t.Errorf("MinIters() = %d, want configured 3", got)
	}
}

func TestPauseExcludedFromElapsed(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	bar := New(opts)

	bar.Pause()
	time.Sleep(30 * time.Millisecond)
	bar.Unpause()

	bar.mu.Lock()
	pause := bar.totalPause
	elapsed := bar.elapsedSeconds(time.Now())
	bar.mu.Unlock()

	if pause < 30*time.Millisecond {
		t.Errorf("totalPause = %v, want >= 30ms", pause)
	}
	if elapsed >= pause.Seconds() {
		t.Errorf("elapsed %vs does not exclude pause %v", elapsed, pause)
	}
}

func TestUnpauseWithoutPause(t *testing.T) {
	var buf bytes.Buffer
	bar := New(testOptions(&buf))

	bar.Unpause()
	if bar.totalPause != 0 {
		t.Errorf("totalPause = %v after spurious Unpause", bar.totalPause)
	}
}

func TestSetDescriptionRefresh(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	bar := New(opts)

	bar.SetDescription("stage two", false)
	if buf.Len() != 0 {
		t.Error("refresh=false still rendered")
	}

	bar.SetDescription("stage two", true)
	if !strings.Contains(buf.String(), "stage two") {
		t.Errorf("output %q missing new description", buf.String())
	}
}

func TestSetPostfixSnapshot(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 10
	bar := New(opts)

	p := &Postfix{}
	p.Add("loss", "0.5")
	bar.SetPostfix(p)

	// Later mutations must not leak into the bar.
	p.Add("acc", "0.9")

	bar.Refresh()
	out := buf.String()
	if !strings.Contains(out, "loss=0.5") {
		t.Errorf("output %q missing postfix snapshot", out)
	}
	if strings.Contains(out, "acc=") {
		t.Errorf("output %q reflects mutation after snapshot", out)
	}
}

func TestConcurrentAdd(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf)
	opts.Total = 1000
	bar := New(opts)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				bar.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := bar.N(); got != 1000 {
		t.Errorf("N() = %d after concurrent adds, want 1000", got)
	}
	if got := bar.Count(); got != 1000 {
		t.Errorf("Count() = %d after concurrent adds, want 1000", got)
	}
}

func TestNewNormalizesMalformedOptions(t *testing.T) {
	var buf bytes.Buffer
	bar := New(Options{
		Writer:      &buf,
		MinInterval: -time.Second,
		Smoothing:   7,
		UnitDivisor: -3,
	})

	if bar.opts.MinInterval != 100*time.Millisecond {
		t.Errorf("MinInterval = %v, want defaulted 100ms", bar.opts.MinInterval)
	}
	if bar.opts.Smoothing != 0.3 {
		t.Errorf("Smoothing = %v, want defaulted 0.3", bar.opts.Smoothing)
	}
	if bar.opts.UnitDivisor != 1000 {
		t.Errorf("UnitDivisor = %v, want defaulted 1000", bar.opts.UnitDivisor)
	}
	if bar.opts.Unit != "it" {
		t.Errorf("Unit = %q, want defaulted \"it\"", bar.opts.Unit)
	}
}
