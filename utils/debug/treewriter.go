// Package debug produces human readable dumps of build results.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"stylegen/css"
)

// TreeWriter accumulates indented text, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes label with quoted value so whitespace is visible.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Declarations writes one property per line sorted by name, or "(none)".
func (tw TreeWriter) Declarations(depth int, props css.PropertySet) {
	if props.IsEmpty() {
		tw.Line(depth, "(none)")
		return
	}
	for _, p := range props.Sorted() {
		tw.Line(depth, "%s;", p)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
