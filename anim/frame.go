// Package anim compiles keyframe animations into @keyframes blocks and the
// trigger rules that play them.
package anim

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"stylegen/css"
	"stylegen/style"
)

// Frame collects styles of one keyframe. Transform components are kept in
// application order and merged into a single transform declaration when the
// frame is resolved. Frame is immutable.
type Frame struct {
	content    style.Content
	transforms []string
}

// Style sets a property.
func (f Frame) Style(name, value string) Frame {
	f.content = f.content.Style(name, value)
	return f
}

// Opacity sets opacity.
func (f Frame) Opacity(v float64) Frame {
	return f.Style("opacity", formatNumber(v))
}

func (f Frame) transform(t string) Frame {
	f.transforms = append(slices.Clone(f.transforms), t)
	return f
}

// Scale appends uniform scale.
func (f Frame) Scale(s float64) Frame {
	return f.transform("scale(" + formatNumber(s) + ")")
}

// Translate appends translation, x and y are CSS lengths.
func (f Frame) Translate(x, y string) Frame {
	return f.transform("translate(" + x + ", " + y + ")")
}

// Rotate appends rotation in degrees.
func (f Frame) Rotate(deg float64) Frame {
	return f.transform("rotate(" + formatNumber(deg) + "deg)")
}

// Properties resolves frame into declarations.
func (f Frame) Properties() css.PropertySet {
	c := f.content
	if len(f.transforms) > 0 {
		parts := slices.Clone(f.transforms)
		if explicit, ok := c.Get("transform"); ok {
			parts = append([]string{explicit}, parts...)
		}
		c = c.Style("transform", strings.Join(parts, " "))
	}
	return c.Properties()
}

// Keyframe is resolved styles at position in percent.
type Keyframe struct {
	Position float64
	Styles   css.PropertySet
}

// At resolves frame at position.
func At(position float64, f Frame) Keyframe {
	return Keyframe{Position: position, Styles: f.Properties()}
}

// Normalize sorts keyframes by position keeping relative order of equal
// positions, drops keyframes without styles and collapses runs of
// consecutive keyframes with equal styles into the first one.
func Normalize(frames []Keyframe) []Keyframe {
	sorted := slices.Clone(frames)
	slices.SortStableFunc(sorted, func(a, b Keyframe) int { return cmp.Compare(a.Position, b.Position) })

	out := make([]Keyframe, 0, len(sorted))
	for _, kf := range sorted {
		if kf.Styles.IsEmpty() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Styles.Equal(kf.Styles) {
			continue
		}
		out = append(out, kf)
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
