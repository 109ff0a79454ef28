package css

import (
	"strings"

	"stylegen/ident"
)

type selectorKind int

const (
	kindEmpty selectorKind = iota
	kindClass
	kindAttr
	kindBoolAttr
	kindPseudo
	kindSelf
	kindRaw
	kindCompound
	kindDescendant
	kindChild
	kindOr
)

// State classes toggled on elements by the page runtime: active while a tap
// is engaged, in-view while the element intersects the viewport. Tap effects
// and tap triggered animations share them, one gesture toggles one class.
const (
	ActiveClass = "active"
	InViewClass = "in-view"
)

// Selector is an immutable selector expression. Primitives are built with
// Class, Attr, BoolAttr, Pseudo, Self and Raw, composite selectors with the
// combinator methods, which always return a new value.
type Selector struct {
	kind        selectorKind
	name, value string
	left, right *Selector
}

// Class matches elements carrying class name.
func Class(name string) Selector {
	return Selector{kind: kindClass, name: name}
}

// Attr matches attribute with exact value: [name="value"].
func Attr(name, value string) Selector {
	return Selector{kind: kindAttr, name: name, value: value}
}

// BoolAttr matches attribute presence: [name].
func BoolAttr(name string) Selector {
	return Selector{kind: kindBoolAttr, name: name}
}

// Pseudo is a pseudo-class without leading colon, e.g. "hover" or
// "not(:disabled)".
func Pseudo(name string) Selector {
	return Selector{kind: kindPseudo, name: name}
}

// Where wraps selector into :where(), which matches the same elements and
// adds no specificity. Empty selector stays empty.
func Where(sel Selector) Selector {
	if sel.IsEmpty() {
		return sel
	}
	return Pseudo("where(" + sel.String() + ")")
}

// Self stands for the owning base class until Bind replaces it. Renders as
// "&" when unbound.
func Self() Selector {
	return Selector{kind: kindSelf}
}

// Raw keeps selector text as is. Used for parsed stylesheets.
func Raw(text string) Selector {
	return Selector{kind: kindRaw, name: strings.TrimSpace(text)}
}

func combine(kind selectorKind, l, r Selector) Selector {
	switch {
	case l.IsEmpty():
		return r
	case r.IsEmpty():
		return l
	}
	return Selector{kind: kind, left: &l, right: &r}
}

// With adds other to the same element (compound selector). Other is expected
// to be compound itself: it is appended to the subject of s.
func (s Selector) With(other Selector) Selector {
	return combine(kindCompound, s, other)
}

// WithClass is s.With(Class(name)).
func (s Selector) WithClass(name string) Selector {
	return s.With(Class(name))
}

// WhenDescendant matches s inside an element matching ancestor.
func (s Selector) WhenDescendant(of Selector) Selector {
	return combine(kindDescendant, of, s)
}

// WhenChild matches s as a direct child of parent.
func (s Selector) WhenChild(of Selector) Selector {
	return combine(kindChild, of, s)
}

// Or matches either selector.
func (s Selector) Or(other Selector) Selector {
	return combine(kindOr, s, other)
}

// IsEmpty is true for zero value.
func (s Selector) IsEmpty() bool {
	return s.kind == kindEmpty
}

// HasSelf reports whether Bind would change anything.
func (s Selector) HasSelf() bool {
	switch s.kind {
	case kindSelf:
		return true
	case kindCompound, kindDescendant, kindChild, kindOr:
		return s.left.HasSelf() || s.right.HasSelf()
	}
	return false
}

// Bind replaces every Self placeholder with base.
func (s Selector) Bind(base Selector) Selector {
	switch s.kind {
	case kindSelf:
		return base
	case kindCompound, kindDescendant, kindChild, kindOr:
		l, r := s.left.Bind(base), s.right.Bind(base)
		return Selector{kind: s.kind, left: &l, right: &r}
	}
	return s
}

// alternatives expands selector into the list of comma separated parts.
func (s Selector) alternatives() []string {
	switch s.kind {
	case kindEmpty:
		return nil
	case kindClass:
		return []string{"." + s.name}
	case kindAttr:
		return []string{"[" + s.name + "=\"" + cssEscapeDoubleQuoted(s.value) + "\"]"}
	case kindBoolAttr:
		return []string{"[" + s.name + "]"}
	case kindPseudo:
		return []string{":" + s.name}
	case kindSelf:
		return []string{"&"}
	case kindRaw:
		return []string{s.name}
	case kindOr:
		return append(s.left.alternatives(), s.right.alternatives()...)
	}

	var sep string
	switch s.kind {
	case kindDescendant:
		sep = " "
	case kindChild:
		sep = " > "
	}
	ls, rs := s.left.alternatives(), s.right.alternatives()
	out := make([]string, 0, len(ls)*len(rs))
	for _, l := range ls {
		for _, r := range rs {
			out = append(out, l+sep+r)
		}
	}
	return out
}

// String renders selector text, alternatives separated by ", ".
func (s Selector) String() string {
	return strings.Join(s.alternatives(), ", ")
}

// Fingerprint hashes rendered text, which is canonical for the structure.
func (s Selector) Fingerprint(h *ident.Hasher) {
	h.Tag("selector").String(s.String())
}

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
