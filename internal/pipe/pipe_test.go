package pipe

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tqdm-go/tqdm/pkg/tqdm"
)

func testBar(buf *bytes.Buffer, total int64) *tqdm.Bar {
	opts := tqdm.DefaultOptions()
	opts.Writer = buf
	opts.NCols = 80
	opts.MinInterval = 0
	opts.Total = total
	return tqdm.New(opts)
}

func TestProcessCountsLines(t *testing.T) {
	var meter bytes.Buffer
	bar := testBar(&meter, 3)

	in := strings.NewReader("alpha\nbeta\ngamma\n")
	processed, err := Process(bar, in, nil, Options{Delim: '\n'})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if processed != 3 {
		t.Errorf("processed = %d, want 3", processed)
	}
	if bar.N() != 3 {
		t.Errorf("bar.N() = %d, want 3", bar.N())
	}
}

func TestProcessCountsBytes(t *testing.T) {
	var meter bytes.Buffer
	input := "twelve bytes"
	bar := testBar(&meter, int64(len(input)))

	processed, err := Process(bar, strings.NewReader(input), nil, Options{Delim: 0})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if processed != int64(len(input)) {
		t.Errorf("processed = %d, want %d", processed, len(input))
	}
	if bar.N() != int64(len(input)) {
		t.Errorf("bar.N() = %d, want %d", bar.N(), len(input))
	}
}

func TestProcessTee(t *testing.T) {
	var meter, tee bytes.Buffer
	bar := testBar(&meter, 0)

	input := "line one\nline two\n"
	if _, err := Process(bar, strings.NewReader(input), &tee, Options{Delim: '\n', Tee: true}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if tee.String() != input {
		t.Errorf("tee = %q, want verbatim input %q", tee.String(), input)
	}
}

func TestProcessUpdateMode(t *testing.T) {
	var meter bytes.Buffer
	bar := testBar(&meter, 0)

	in := strings.NewReader("5\n3\nnot-a-number\n2\n")
	processed, err := Process(bar, in, nil, Options{Update: true})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if processed != 3 {
		t.Errorf("processed = %d, want 3 numeric lines", processed)
	}
	if bar.N() != 10 {
		t.Errorf("bar.N() = %d, want 10", bar.N())
	}
}

func TestProcessUpdateToMode(t *testing.T) {
	var meter bytes.Buffer
	bar := testBar(&meter, 100)

	in := strings.NewReader("10\n50\n30\n")
	if _, err := Process(bar, in, nil, Options{UpdateTo: true}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	// update-to is absolute, so the last line wins even when it rewinds.
	if bar.N() != 30 {
		t.Errorf("bar.N() = %d, want 30", bar.N())
	}
}

func TestProcessUpdateTee(t *testing.T) {
	var meter, tee bytes.Buffer
	bar := testBar(&meter, 0)

	in := strings.NewReader("1\n2\n")
	if _, err := Process(bar, in, &tee, Options{Update: true, Tee: true}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if tee.String() != "1\n2\n" {
		t.Errorf("tee = %q, want %q", tee.String(), "1\n2\n")
	}
}

func TestProcessCustomDelimiter(t *testing.T) {
	var meter bytes.Buffer
	bar := testBar(&meter, 0)

	in := strings.NewReader("a,b,c,d")
	processed, err := Process(bar, in, nil, Options{Delim: ','})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if processed != 3 {
		t.Errorf("processed = %d commas, want 3", processed)
	}
}
