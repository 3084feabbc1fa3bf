package tqdm

import (
	"fmt"
	"math"
	"strconv"
)

// sizePrefixes are the decimal/binary magnitude letters used by
// FormatSizeof, indexed by the number of divisions applied.
var sizePrefixes = [9]string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

const maxInterval = 86400 * 365 // beyond a year the estimate is noise

// FormatInterval renders a duration in seconds as "MM:SS", or "HH:MM:SS"
// once a full hour is reached. Negative durations and durations over a
// year render as "?".
func FormatInterval(seconds float64) string {
	if seconds < 0 || seconds > maxInterval {
		return "?"
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 99999 {
		hours = 99999
	}
	if minutes > 59 {
		minutes = 59
	}
	if secs > 59 {
		secs = 59
	}

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatSizeof renders num scaled by divisor (1000 or 1024) with a
// magnitude prefix and unit suffix, e.g. FormatSizeof(1536, "B", 1024)
// == "1.50kB". Precision drops as the scaled value grows: exact integers
// under 1e6 and values >= 100 get no decimals, >= 10 one decimal,
// otherwise two.
func FormatSizeof(num float64, suffix string, divisor float64) string {
	idx := 0
	if divisor == 1024 {
		for num >= 1024 && idx < 8 {
			num /= 1024
			idx++
		}
	} else {
		for num >= divisor && idx < 8 {
			num /= divisor
			idx++
		}
	}

	switch {
	case num == math.Trunc(num) && num < 1e6:
		return fmt.Sprintf("%d%s%s", int64(num), sizePrefixes[idx], suffix)
	case num >= 100 || idx == 0:
		return fmt.Sprintf("%.0f%s%s", num, sizePrefixes[idx], suffix)
	case num >= 10:
		return fmt.Sprintf("%.1f%s%s", num, sizePrefixes[idx], suffix)
	default:
		return fmt.Sprintf("%.2f%s%s", num, sizePrefixes[idx], suffix)
	}
}

// FormatNum renders a count compactly with k/m/b/t suffixes
// (thousand, million, billion, trillion), e.g. FormatNum(1234567.89) ==
// "1.23m". Integers under 1000 print exactly; unsuffixed values under
// 1e15 print with no decimals; anything larger falls back to scientific
// notation with 3 significant digits.
func FormatNum(n float64) string {
	abs := math.Abs(n)
	suffix := ""
	scaled := n

	switch {
	case abs >= 1e12 && abs < 1e15:
		suffix = "t"
		scaled = n / 1e12
	case abs >= 1e9:
		suffix = "b"
		scaled = n / 1e9
	case abs >= 1e6:
		suffix = "m"
		scaled = n / 1e6
	case abs >= 1e3:
		suffix = "k"
		scaled = n / 1e3
	}

	if suffix != "" {
		switch as := math.Abs(scaled); {
		case as >= 100:
			return fmt.Sprintf("%.0f%s", scaled, suffix)
		case as >= 10:
			return fmt.Sprintf("%.1f%s", scaled, suffix)
		default:
			return fmt.Sprintf("%.2f%s", scaled, suffix)
		}
	}

	switch {
	case abs < 1000 && n == math.Trunc(n):
		return strconv.FormatInt(int64(n), 10)
	case abs < 1e15:
		return fmt.Sprintf("%.0f", n)
	default:
		return fmt.Sprintf("%.3g", n)
	}
}
