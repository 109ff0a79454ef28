package debug

import (
	"strings"

	"stylegen/anim"
	"stylegen/css"
	"stylegen/scoped"
	"stylegen/style"
)

// Resolved dumps resolution result: statistics, baseline and conditional
// entries from least to most specific.
func (tw TreeWriter) Resolved(depth int, name string, rs style.ResolvedStyle) {
	tw.Line(depth, "style %s (%s)", name, rs.Class)
	tw.Line(depth+1, "combinations: %d, differing: %d, evaluations: %d",
		rs.Stats.Combinations, rs.Stats.Differing, rs.Stats.Evaluations)
	if len(rs.Pinned) > 0 {
		tw.Line(depth+1, "pinned: %d", len(rs.Pinned))
	}
	tw.Line(depth+1, "base:")
	tw.Declarations(depth+2, rs.Base)
	for _, e := range rs.SortedBySpecificity() {
		tw.Line(depth+1, "when %s:", e.Conditions)
		tw.Declarations(depth+2, e.Properties)
	}
}

// Scoped dumps scoped style variants with their unbound selectors.
func (tw TreeWriter) Scoped(depth int, name string, s scoped.ScopedStyle) {
	tw.Line(depth, "%s %s (%s)", s.Kind(), name, strings.Join(s.AllClasses(), " "))
	for _, v := range s.Variants() {
		label := "variant " + v.Selector.String()
		if !v.Conditions.IsEmpty() {
			label += " when " + v.Conditions.String()
		}
		if media := s.Media(v); len(media) > 0 {
			label += " @media " + css.MediaQuery(media)
		}
		tw.Line(depth+1, "%s:", label)
		tw.Declarations(depth+2, v.Properties)
		if names := v.AttachedClassNames(); len(names) > 0 {
			tw.Line(depth+2, "attached: %s", strings.Join(names, " "))
		}
	}
}

// Animation dumps compiled animation keyframes and rules.
func (tw TreeWriter) Animation(depth int, name string, c anim.Compiled) {
	tw.Line(depth, "animation %s (%s)", name, c.Name)
	tw.keyframes(depth+1, "keyframes", c.Forward)
	if c.HasReverse() {
		tw.keyframes(depth+1, "reverse", c.Reverse)
	}
	for _, r := range c.Rules {
		tw.Line(depth+1, "rule %s:", r.Selector)
		tw.Declarations(depth+2, r.Properties)
	}
}

func (tw TreeWriter) keyframes(depth int, label string, kf css.Keyframes) {
	tw.Line(depth, "%s %s:", label, kf.Name)
	for _, step := range kf.Steps {
		tw.Line(depth+1, "%s:", css.FormatPercent(step.Position))
		tw.Declarations(depth+2, step.Properties)
	}
}
