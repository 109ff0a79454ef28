package style

import (
	"cmp"
	"maps"
	"slices"

	"stylegen/css"
	"stylegen/env"
	"stylegen/ident"
)

// Style is a pure function of environment. Apply must return the same
// content for the same conditions and must not depend on anything else:
// minimization relies on it. Resolver can verify this at run time.
type Style interface {
	ident.Hashable
	Apply(base Content, cond env.Conditions) Content
}

// ApplyFunc is the signature of style functions.
type ApplyFunc func(base Content, cond env.Conditions) Content

type funcStyle struct {
	name string
	fn   ApplyFunc
}

// Func makes Style out of a function. Name is the identity of the style and
// must be unique per distinct function: two styles with the same name get the
// same class.
func Func(name string, fn ApplyFunc) Style {
	return funcStyle{name: name, fn: fn}
}

func (s funcStyle) Apply(base Content, cond env.Conditions) Content {
	return s.fn(base, cond)
}

func (s funcStyle) Fingerprint(h *ident.Hasher) {
	h.Tag("func-style").String(s.name)
}

func (s funcStyle) String() string {
	return s.name
}

// ClassName returns content-addressed class of the style.
func ClassName(s Style) string {
	return ident.Name("style", s)
}

// Entry is a minimal condition set with the properties it produces.
type Entry struct {
	Conditions env.Conditions
	Properties css.PropertySet
}

// Stats describes the work done resolving a style.
type Stats struct {
	Combinations int // combinations enumerated
	Differing    int // combinations with output different from baseline
	Evaluations  int // calls to Style.Apply
}

// ResolvedStyle is the result of resolution: baseline properties plus
// conditional overrides keyed by minimal conditions, in discovery order.
//
// Minimal keys overlap: under dark scheme with reduced motion both {dark}
// and {reduced} match, and the later rule wins. Pinned holds exact
// combinations whose style output the cascade of Conditional entries does
// not reproduce, with their full output. Pinned entries may equal the
// baseline.
type ResolvedStyle struct {
	Class       string
	Base        css.PropertySet
	Conditional []Entry
	Pinned      []Entry
	Stats       Stats
}

// Lookup returns properties stored for exactly these conditions.
func (r ResolvedStyle) Lookup(cond env.Conditions) (css.PropertySet, bool) {
	for _, e := range r.Conditional {
		if e.Conditions == cond {
			return e.Properties, true
		}
	}
	return css.PropertySet{}, false
}

// SortedBySpecificity orders conditional and pinned entries by number of
// conditions, keeping discovery order within the same count and conditional
// entries before pinned ones, so that more specific rules come later in the
// stylesheet. This is the order rules are rendered in.
func (r ResolvedStyle) SortedBySpecificity() []Entry {
	sorted := slices.Concat(r.Conditional, r.Pinned)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.Conditions.Count(), b.Conditions.Count())
	})
	return sorted
}

// Cascade returns property values in effect under cond when rules are
// applied in SortedBySpecificity order: baseline first, then every entry
// whose conditions cond satisfies, later values winning.
func (r ResolvedStyle) Cascade(cond env.Conditions) map[string]string {
	values := declared(r.Base)
	for _, e := range r.SortedBySpecificity() {
		if !cond.Satisfies(e.Conditions) {
			continue
		}
		maps.Copy(values, declared(e.Properties))
	}
	return values
}

// reproduces reports whether the cascade under cond yields every property of
// props. Properties dropped under a condition cannot be reverted by later
// rules and are not checked.
func (r ResolvedStyle) reproduces(cond env.Conditions, props css.PropertySet) bool {
	values := r.Cascade(cond)
	for name, value := range declared(props) {
		if v, ok := values[name]; !ok || v != value {
			return false
		}
	}
	return true
}

// declared returns the last value of every property name.
func declared(props css.PropertySet) map[string]string {
	values := make(map[string]string, props.Len())
	for _, p := range props.Props() {
		values[p.Name] = p.Value
	}
	return values
}
