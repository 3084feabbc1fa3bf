package tqdm

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// unicodeBlocks is the eighths-resolution fill ramp: empty, 1/8 .. 7/8,
// full.
var unicodeBlocks = [9]string{" ", "▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}

// colourAttrs maps recognised colour names to terminal attributes.
var colourAttrs = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// meterParams carries one render's worth of inputs to formatMeter.
type meterParams struct {
	n           int64
	total       int64
	elapsed     float64 // seconds, pause time already subtracted
	ncols       int
	prefix      string
	ascii       bool
	unit        string
	unitScale   bool
	rate        float64 // units per second, 0 when elapsed ~ 0
	barFormat   string
	postfix     string
	unitDivisor float64
	colour      string // empty unless the stream supports colour
}

// formatMeter composes the one-line meter display. Token order and
// separators are a compatibility contract; golden tests compare exact
// substrings.
func formatMeter(p meterParams) string {
	if p.barFormat != "" {
		// Simplified fixed shape, not a template engine.
		return fmt.Sprintf("%s: %d/%d [%.1fs, %.1fit/s] %s",
			p.prefix, p.n, p.total, p.elapsed, p.rate, p.postfix)
	}

	percentage := 0.0
	if p.total > 0 {
		percentage = 100 * float64(p.n) / float64(p.total)
	}
	if percentage > 100 {
		percentage = 100
	}

	remainingStr := "?"
	if p.total > 0 && p.n > 0 && p.rate > 0 && p.n < p.total {
		remainingStr = FormatInterval(float64(p.total-p.n) / p.rate)
	}
	elapsedStr := FormatInterval(p.elapsed)

	var nStr, totalStr, rateStr string
	if p.unitScale {
		nStr = FormatSizeof(float64(p.n), p.unit, p.unitDivisor)
		totalStr = "?"
		if p.total > 0 {
			totalStr = FormatSizeof(float64(p.total), p.unit, p.unitDivisor)
		}
		rateStr = "?"
		if p.rate > 0 {
			rateStr = FormatSizeof(p.rate, p.unit, p.unitDivisor)
		}
	} else {
		nStr = FormatNum(float64(p.n))
		totalStr = "?"
		if p.total > 0 {
			totalStr = FormatNum(float64(p.total))
		}
		rateStr = "?"
		if p.rate > 0 {
			rateStr = FormatNum(p.rate)
		}
	}

	bar := renderBar(p.n, p.total, barWidth(p.ncols, p.prefix, p.postfix), p.ascii)
	if attr, ok := colourAttrs[strings.ToLower(p.colour)]; ok {
		c := color.New(attr)
		c.EnableColor()
		bar = c.Sprint(bar)
	}

	descSep := ""
	if p.prefix != "" {
		descSep = ": "
	}
	rateUnit := p.unit
	if p.unitScale {
		rateUnit = ""
	}
	postfixSep := ""
	if p.postfix != "" {
		postfixSep = " "
	}

	return fmt.Sprintf("%s%s%3.0f%%|%s| %s/%s [%s<%s, %s%s/s]%s%s",
		p.prefix, descSep, percentage, bar, nStr, totalStr,
		elapsedStr, remainingStr, rateStr, rateUnit,
		postfixSep, p.postfix)
}

// barWidth estimates how many columns are left for the bar once the fixed
// tokens, prefix and postfix are accounted for. Byte length is used for
// the variable parts, so multi-byte glyphs can skew the estimate; this is
// inherited behaviour, a heuristic rather than an exact fit.
func barWidth(ncols int, prefix, postfix string) int {
	fixed := 50 + len(prefix) + len(postfix)

	width := 10
	if ncols > fixed {
		width = ncols - fixed
	}
	if width < 1 {
		width = 1
	}
	if width > 100 {
		width = 100
	}
	return width
}

// renderBar fills width cells proportionally to n/total. The ASCII bar
// uses whole '#' cells; the Unicode bar refines the leading edge with
// eighth-block glyphs. Unknown totals render an empty bar.
func renderBar(n, total int64, width int, ascii bool) string {
	if ascii {
		filled := 0
		if total > 0 {
			filled = int(float64(width) * float64(n) / float64(total))
		}
		if filled > width {
			filled = width
		}
		if filled < 0 {
			filled = 0
		}
		return strings.Repeat("#", filled) + strings.Repeat(" ", width-filled)
	}

	if total <= 0 || n <= 0 {
		return strings.Repeat(unicodeBlocks[0], width)
	}

	eighths := n * 8 * int64(width) / total
	full := int(eighths / 8)
	partial := int(eighths % 8)
	if full > width {
		full = width
		partial = 0
	}

	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteString(unicodeBlocks[8])
	}
	if full < width && partial > 0 {
		b.WriteString(unicodeBlocks[partial])
		full++
	}
	for i := full; i < width; i++ {
		b.WriteString(unicodeBlocks[0])
	}
	return b.String()
}
