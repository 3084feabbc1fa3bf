package tqdm

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const fallbackWidth = 80

// widthCacheTTL amortizes terminal size queries under tight loops.
const widthCacheTTL = time.Second

// ncols resolves the display width for a render. An explicit positive
// NCols wins unless DynamicNCols asks for live re-measurement; otherwise
// the terminal is queried, with the answer cached for widthCacheTTL.
// Callers hold b.mu.
func (b *Bar) ncols(now time.Time) int {
	if b.opts.NCols > 0 && !b.opts.DynamicNCols {
		return b.opts.NCols
	}
	if now.Sub(b.lastWidthCheck) < widthCacheTTL {
		return b.cachedWidth
	}
	b.cachedWidth = terminalWidth(b.opts.Writer)
	b.lastWidthCheck = now
	return b.cachedWidth
}

// terminalWidth queries the column count of w, falling back to 80 for
// non-terminal writers.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallbackWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols < 1 {
		return fallbackWidth
	}
	return cols
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
