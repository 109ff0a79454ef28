// Package css is a minimal CSS model used by the generator: properties,
// selectors, media features, rulesets, @media and @keyframes blocks, plus a
// writer producing deterministic text and a small parser built on
// tdewolff/parse for declaration blocks.
package css

import (
	"slices"
	"strings"

	"stylegen/ident"
)

// Property is a single CSS declaration.
type Property struct {
	Name  string
	Value string
}

// Prop is a shorthand constructor.
func Prop(name, value string) Property {
	return Property{Name: name, Value: value}
}

// String returns declaration text without trailing semicolon.
func (p Property) String() string {
	return p.Name + ": " + p.Value
}

// Compare orders properties by name then value.
func (p Property) Compare(o Property) int {
	if c := strings.Compare(p.Name, o.Name); c != 0 {
		return c
	}
	return strings.Compare(p.Value, o.Value)
}

// PropertySet is an insertion-ordered set of properties. Two entries are the
// same when both name and value match, adding a duplicate is a no-op.
// Equality is set equality, output ordering is by name then value.
type PropertySet struct {
	props []Property
}

// NewPropertySet returns set with given properties added in order.
func NewPropertySet(props ...Property) PropertySet {
	var s PropertySet
	for _, p := range props {
		s.Add(p)
	}
	return s
}

// Add inserts property, returns false when it was already present.
func (s *PropertySet) Add(p Property) bool {
	if s.Contains(p) {
		return false
	}
	s.props = append(s.props, p)
	return true
}

// Merge adds all properties of other in its insertion order.
func (s *PropertySet) Merge(other PropertySet) {
	for _, p := range other.props {
		s.Add(p)
	}
}

// Contains checks for exact name and value match.
func (s PropertySet) Contains(p Property) bool {
	return slices.Contains(s.props, p)
}

// Get returns the last value added for the property name.
func (s PropertySet) Get(name string) (string, bool) {
	for i := len(s.props) - 1; i >= 0; i-- {
		if s.props[i].Name == name {
			return s.props[i].Value, true
		}
	}
	return "", false
}

// Len returns number of properties.
func (s PropertySet) Len() int {
	return len(s.props)
}

// IsEmpty is true for a set without properties.
func (s PropertySet) IsEmpty() bool {
	return len(s.props) == 0
}

// Props returns a copy of properties in insertion order.
func (s PropertySet) Props() []Property {
	return slices.Clone(s.props)
}

// Sorted returns a copy of properties ordered by name then value.
func (s PropertySet) Sorted() []Property {
	sorted := slices.Clone(s.props)
	slices.SortFunc(sorted, Property.Compare)
	return sorted
}

// Clone returns independent copy.
func (s PropertySet) Clone() PropertySet {
	return PropertySet{props: slices.Clone(s.props)}
}

// Equal reports set equality, insertion order is ignored.
func (s PropertySet) Equal(o PropertySet) bool {
	if len(s.props) != len(o.props) {
		return false
	}
	for _, p := range s.props {
		if !o.Contains(p) {
			return false
		}
	}
	return true
}

// Fingerprint writes sorted properties so that construction order does not
// affect the digest.
func (s PropertySet) Fingerprint(h *ident.Hasher) {
	h.Tag("properties").Int(int64(len(s.props)))
	for _, p := range s.Sorted() {
		h.String(p.Name).String(p.Value)
	}
}

// String returns declarations joined with "; ", sorted.
func (s PropertySet) String() string {
	parts := make([]string, 0, len(s.props))
	for _, p := range s.Sorted() {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "; ")
}
