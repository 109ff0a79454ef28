// Package scoped builds styles whose rules are selected by element state
// rather than discovered by enumeration: interaction phases, trigger effects,
// explicit per-case environment blocks and identity traits.
package scoped

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"stylegen/css"
	"stylegen/env"
	"stylegen/ident"
	"stylegen/style"
)

// Kind of scoped style, also used as class name prefix.
type Kind int

const (
	KindButton Kind = iota
	KindLink
	KindDisclosure
	KindEnvironment
	KindHover
	KindTap
	KindEntry
	KindTrait
)

var kindNames = [...]string{"button", "link", "disclosure", "env", "hover", "tap", "entry", "trait"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Variant is one rule of a scoped style. Selector is relative to the base
// class which is referenced by css.Self. Conditions, when set, scope the
// variant the same way conditional entries of resolved styles are scoped.
type Variant struct {
	Selector   css.Selector
	Conditions env.Conditions
	Media      []css.MediaFeature
	Properties css.PropertySet
	Attached   []style.Style
	Important  bool
}

// AttachedClassNames returns class names of attached styles.
func (v Variant) AttachedClassNames() []string {
	return lo.Map(v.Attached, func(s style.Style, _ int) string { return style.ClassName(s) })
}

func (v Variant) Fingerprint(h *ident.Hasher) {
	h.Tag("variant").Value(v.Selector).Value(v.Conditions)
	h.Strings(lo.Map(v.Media, func(f css.MediaFeature, _ int) string { return f.MediaCondition() }))
	h.Value(v.Properties)
	h.Strings(v.AttachedClassNames())
	h.Bool(v.Important)
}

// ScopedStyle is a base class plus variants. It is immutable, the base class
// is derived from kind and variants so equal configurations share a class.
type ScopedStyle struct {
	kind      Kind
	baseClass string
	variants  []Variant
}

// New creates scoped style out of variants, variants are copied.
func New(kind Kind, variants ...Variant) ScopedStyle {
	s := ScopedStyle{kind: kind, variants: slices.Clone(variants)}
	s.baseClass = ident.Name(kind.String(), s)
	return s
}

func (s ScopedStyle) Fingerprint(h *ident.Hasher) {
	h.Tag("scoped").String(s.kind.String()).Int(int64(len(s.variants)))
	for _, v := range s.variants {
		h.Value(v)
	}
}

// Kind returns kind of the style.
func (s ScopedStyle) Kind() Kind { return s.kind }

// BaseClass returns content-addressed class name.
func (s ScopedStyle) BaseClass() string { return s.baseClass }

// Variants returns copy of variants.
func (s ScopedStyle) Variants() []Variant { return slices.Clone(s.variants) }

// Selector returns the variant selector bound to base class and placed under
// the ancestor required by variant conditions.
func (s ScopedStyle) Selector(v Variant) css.Selector {
	return v.Conditions.Scope().Apply(v.Selector.Bind(css.Class(s.baseClass)))
}

// Media returns media features required by variant conditions followed by
// explicit variant features.
func (s ScopedStyle) Media(v Variant) []css.MediaFeature {
	return append(v.Conditions.Scope().Media, v.Media...)
}

// Attach returns a new scoped style with styles attached to every variant.
// Attached style rules apply to the element while the variant matches.
func (s ScopedStyle) Attach(styles ...style.Style) ScopedStyle {
	variants := make([]Variant, len(s.variants))
	for i, v := range s.variants {
		v.Attached = append(slices.Clone(v.Attached), styles...)
		variants[i] = v
	}
	return New(s.kind, variants...)
}

// AsImportant returns a new scoped style whose variant declarations are all
// emitted with !important. Attached styles are not affected.
func (s ScopedStyle) AsImportant() ScopedStyle {
	variants := make([]Variant, len(s.variants))
	for i, v := range s.variants {
		v.Important = true
		variants[i] = v
	}
	return New(s.kind, variants...)
}

// AttachedStyles returns every attached style once, in first use order.
func (s ScopedStyle) AttachedStyles() []style.Style {
	var out []style.Style
	seen := make(map[string]struct{})
	for _, v := range s.variants {
		for _, a := range v.Attached {
			name := style.ClassName(a)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// AllClasses returns base class followed by attached class names, each once.
// This is the class list markup puts on the element.
func (s ScopedStyle) AllClasses() []string {
	classes := []string{s.baseClass}
	for _, v := range s.variants {
		classes = append(classes, v.AttachedClassNames()...)
	}
	return lo.Uniq(classes)
}
