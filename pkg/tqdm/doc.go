// Package tqdm renders a live, single-line progress meter on a terminal
// stream, throttling redraws so tight loops do not flood the output.
//
// A Bar is driven by a monotonically advancing counter:
//
//	bar := tqdm.New(tqdm.Options{Total: 1000, Desc: "download"})
//	for range work {
//		bar.Add(1)
//	}
//	bar.Close()
//
// Redraw cadence is governed by two gates, MinInterval (wall clock) and
// MinIters (iteration count). With MinIters left at 0 the bar auto-tunes:
// when a burst of updates arrives faster than MinInterval, MinIters is
// raised to twice the burst size and stays there. This is a deliberate
// one-way throttle; it never falls back to auto mode.
//
// The Smoothing option and the per-bar rate history are accepted and kept
// for compatibility but the displayed rate is always the instantaneous
// n/elapsed.
//
// All Bar methods are safe for concurrent use; each runs as a single
// critical section under the bar's own lock. Use Write (or Bar.Write) to
// interleave log lines with an active bar on the same stream.
package tqdm
