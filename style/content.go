// Package style evaluates style definitions over every relevant environment
// and reduces the results to a baseline plus minimal conditional overrides.
package style

import (
	"slices"

	"stylegen/css"
	"stylegen/ident"
)

// Content accumulates properties produced by a style. It is immutable:
// every method returns a new value and never changes the receiver.
type Content struct {
	props []css.Property
}

// Style sets property, replacing previous value of the same name.
func (c Content) Style(name, value string) Content {
	props := slices.Clone(c.props)
	if i := slices.IndexFunc(props, func(p css.Property) bool { return p.Name == name }); i >= 0 {
		props[i].Value = value
	} else {
		props = append(props, css.Prop(name, value))
	}
	return Content{props: props}
}

// Without removes property by name.
func (c Content) Without(name string) Content {
	return Content{props: slices.DeleteFunc(slices.Clone(c.props), func(p css.Property) bool {
		return p.Name == name
	})}
}

// Apply sets every property of the set in its insertion order.
func (c Content) Apply(props css.PropertySet) Content {
	for _, p := range props.Props() {
		c = c.Style(p.Name, p.Value)
	}
	return c
}

// Get returns current value of the property.
func (c Content) Get(name string) (string, bool) {
	for _, p := range c.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Properties returns accumulated properties as a set.
func (c Content) Properties() css.PropertySet {
	return css.NewPropertySet(c.props...)
}

// IsEmpty is true when nothing was set.
func (c Content) IsEmpty() bool {
	return len(c.props) == 0
}

// Equal compares content ignoring the order properties were set in.
func (c Content) Equal(o Content) bool {
	return c.Properties().Equal(o.Properties())
}

func (c Content) Fingerprint(h *ident.Hasher) {
	c.Properties().Fingerprint(h)
}
