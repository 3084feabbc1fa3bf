package tqdm

import "iter"

// Slice returns a progress-reporting sequence over items. The bar
// advances after each element is consumed and closes when the sequence
// ends or the consumer breaks. When opts.Total is 0 it defaults to
// len(items).
func Slice[T any](items []T, opts Options) iter.Seq[T] {
	if opts.Total == 0 {
		opts.Total = int64(len(items))
	}
	return func(yield func(T) bool) {
		bar := New(opts)
		defer bar.Close()
		for _, item := range items {
			if !yield(item) {
				return
			}
			bar.Add(1)
		}
	}
}

// Wrap decorates an arbitrary sequence with a progress bar. The wrapped
// sequence is as lazy, finite and non-restartable as seq itself. Set
// opts.Total when the length is known; 0 renders an unknown-total meter.
func Wrap[T any](seq iter.Seq[T], opts Options) iter.Seq[T] {
	return func(yield func(T) bool) {
		bar := New(opts)
		defer bar.Close()
		for item := range seq {
			if !yield(item) {
				return
			}
			bar.Add(1)
		}
	}
}

// Range returns a progress-reporting sequence over 0..n-1 with default
// options.
func Range(n int) iter.Seq[int] {
	return RangeStep(0, n, 1)
}

// RangeFrom returns a progress-reporting sequence over start..end-1.
func RangeFrom(start, end int) iter.Seq[int] {
	return RangeStep(start, end, 1)
}

// RangeStep returns a progress-reporting sequence from start towards end
// in increments of step, which may be negative. The sequence is empty when
// the bounds are inverted for the sign of step, or when step is 0.
func RangeStep(start, end, step int) iter.Seq[int] {
	opts := DefaultOptions()
	opts.Total = rangeLen(start, end, step)
	return func(yield func(int) bool) {
		if step == 0 {
			return
		}
		bar := New(opts)
		defer bar.Close()
		for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
			if !yield(i) {
				return
			}
			bar.Add(1)
		}
	}
}

func rangeLen(start, end, step int) int64 {
	switch {
	case step > 0 && end > start:
		return int64((end - start + step - 1) / step)
	case step < 0 && start > end:
		return int64((start - end + (-step) - 1) / -step)
	default:
		return 0
	}
}
