package tqdm

import "io"

// ByteBar creates a bar preconfigured for byte counts: unit "B", unit
// scaling on, divisor 1024. A total of 0 means unknown size.
func ByteBar(total int64, opts Options) *Bar {
	opts.Total = total
	opts.Unit = "B"
	opts.UnitScale = true
	opts.UnitDivisor = 1024
	return New(opts)
}

// Reader counts bytes through an io.Reader into a Bar.
type Reader struct {
	r   io.Reader
	bar *Bar
}

// NewReader wraps r so every read advances bar by the bytes transferred.
func NewReader(r io.Reader, bar *Bar) *Reader {
	return &Reader{r: r, bar: bar}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.bar.Add(int64(n))
	}
	return n, err
}

// Close finalizes the bar and closes the underlying reader when it is an
// io.Closer.
func (r *Reader) Close() error {
	r.bar.Close()
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Writer counts bytes through an io.Writer into a Bar.
type Writer struct {
	w   io.Writer
	bar *Bar
}

// NewWriter wraps w so every write advances bar by the bytes transferred.
func NewWriter(w io.Writer, bar *Bar) *Writer {
	return &Writer{w: w, bar: bar}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if n > 0 {
		w.bar.Add(int64(n))
	}
	return n, err
}

// Close finalizes the bar and closes the underlying writer when it is an
// io.Closer.
func (w *Writer) Close() error {
	w.bar.Close()
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
