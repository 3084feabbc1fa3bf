package tqdm

import (
	"fmt"
	"strconv"
	"strings"
)

// Postfix is an ordered list of key=value annotations appended to the
// meter. Add prepends, so the most recently added pair renders first; the
// newest-first display order is a compatibility quirk, kept deliberately.
// A Postfix is owned and mutated by the caller; a Bar only stores the
// rendered snapshot handed to it by SetPostfix.
//
// Postfix is not safe for concurrent use.
type Postfix struct {
	entries []postfixEntry
}

type postfixEntry struct {
	key   string
	value string
}

// Add prepends a key=value pair.
func (p *Postfix) Add(key, value string) {
	p.entries = append([]postfixEntry{{key: key, value: value}}, p.entries...)
}

// AddInt prepends a key with an integer value.
func (p *Postfix) AddInt(key string, value int) {
	p.Add(key, strconv.Itoa(value))
}

// AddFloat prepends a key with a float value rendered to 3 significant
// digits.
func (p *Postfix) AddFloat(key string, value float64) {
	p.Add(key, fmt.Sprintf("%.3g", value))
}

// Len reports the number of pairs.
func (p *Postfix) Len() int {
	return len(p.entries)
}

// Format renders the list as "k1=v1, k2=v2, ..." in current list order,
// or "" when empty.
func (p *Postfix) Format() string {
	if len(p.entries) == 0 {
		return ""
	}

	var b strings.Builder
	for i, e := range p.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.key)
		b.WriteByte('=')
		b.WriteString(e.value)
	}
	return b.String()
}
