// Package pipe feeds a progress bar from a byte stream, the way the tqdm
// CLI monitors data flowing through a pipe. It counts delimiters (lines),
// raw bytes, or numeric updates, and can tee the stream through to another
// writer.
package pipe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tqdm-go/tqdm/pkg/tqdm"
)

const defaultBufSize = 8192

// Options controls how the input stream is interpreted.
type Options struct {
	// Delim is the byte whose occurrences advance the bar. The zero byte
	// counts raw bytes instead (one advance per byte read).
	Delim byte
	// BufSize is the chunk size for reads. Default 8192.
	BufSize int
	// Tee mirrors the input to the tee writer as it is counted.
	Tee bool
	// Update treats each input line as a numeric increment.
	Update bool
	// UpdateTo treats each input line as an absolute counter value.
	UpdateTo bool
	// NullOK permits NUL bytes in teed line output. Without it, line mode
	// suppresses the tee copy of lines containing NUL.
	NullOK bool
}

// Process consumes in until EOF, advancing bar as configured, optionally
// mirroring the stream to tee. It returns the number of items processed
// (updates applied, delimiters seen, or bytes counted).
func Process(bar *tqdm.Bar, in io.Reader, tee io.Writer, opts Options) (int64, error) {
	if opts.BufSize <= 0 {
		opts.BufSize = defaultBufSize
	}
	if opts.Update || opts.UpdateTo {
		return processUpdates(bar, in, tee, opts)
	}
	return processStream(bar, in, tee, opts)
}

// processUpdates reads numeric lines and applies them as increments or
// absolute values. Non-numeric lines are skipped.
func processUpdates(bar *tqdm.Bar, in io.Reader, tee io.Writer, opts Options) (int64, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, opts.BufSize), opts.BufSize*16)

	var processed int64
	for scanner.Scan() {
		line := scanner.Text()
		val, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			continue
		}
		if opts.UpdateTo {
			bar.Set(int64(val))
		} else {
			bar.Add(int64(val))
		}
		processed++
		if opts.Tee && (opts.NullOK || !strings.ContainsRune(line, 0)) {
			fmt.Fprintln(tee, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return processed, fmt.Errorf("reading updates: %w", err)
	}
	return processed, nil
}

// processStream reads raw chunks, teeing them through verbatim and
// advancing the bar per delimiter (or per byte when Delim is zero).
func processStream(bar *tqdm.Bar, in io.Reader, tee io.Writer, opts Options) (int64, error) {
	buf := make([]byte, opts.BufSize)

	var processed int64
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if opts.Tee {
				if _, werr := tee.Write(buf[:n]); werr != nil {
					return processed, fmt.Errorf("tee write: %w", werr)
				}
			}
			if opts.Delim == 0 {
				bar.Add(int64(n))
				processed += int64(n)
			} else {
				for _, c := range buf[:n] {
					if c == opts.Delim {
						bar.Add(1)
						processed++
					}
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return processed, nil
			}
			return processed, fmt.Errorf("reading input: %w", err)
		}
	}
}
