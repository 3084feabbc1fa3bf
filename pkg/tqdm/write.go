package tqdm

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// defaultWriter is the stream bars render to when Options.Writer is nil.
var defaultWriter io.Writer = os.Stderr

// defaultWriteLock coordinates external writes with bar redraws for
// callers that do not inject their own lock via Options.WriteLock.
var defaultWriteLock sync.Mutex

// Write prints a log line on w without corrupting an active meter
// sharing the stream: the current line is cleared first and s ends with a
// newline. Serialised under the package's default write lock; bars
// constructed with a custom Options.WriteLock should use Bar.Write
// instead so both sides agree on the lock.
func Write(w io.Writer, s string) {
	defaultWriteLock.Lock()
	defer defaultWriteLock.Unlock()
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "\r\x1b[K%s\n", s)
}
