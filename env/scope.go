package env

import (
	"strconv"

	"stylegen/css"
)

// Attribute names set on an ancestor element (usually <html>) by the page.
const (
	ThemeAttribute       = "data-theme"
	ColorSchemeAttribute = "data-color-scheme"
)

// Scope is where conditions are expressed in CSS: theme and color scheme
// become attributes on a single ancestor, every other dimension becomes a
// media feature.
type Scope struct {
	Ancestor css.Selector
	Media    []css.MediaFeature
}

// IsEmpty is true when neither ancestor nor media is required.
func (s Scope) IsEmpty() bool {
	return s.Ancestor.IsEmpty() && len(s.Media) == 0
}

// Apply puts selector under the ancestor of the scope. The ancestor is
// wrapped into :where() so that attribute scoped and media scoped rules have
// the same specificity and stylesheet order alone decides.
func (s Scope) Apply(sel css.Selector) css.Selector {
	return sel.WhenDescendant(css.Where(s.Ancestor))
}

// Scope splits conditions into ancestor selector and media features, both in
// canonical dimension order.
func (c Conditions) Scope() Scope {
	var s Scope
	if v, ok := c.Theme.Get(); ok {
		s.Ancestor = s.Ancestor.With(css.Attr(ThemeAttribute, v.AttributeValue()))
	}
	if v, ok := c.ColorScheme.Get(); ok {
		s.Ancestor = s.Ancestor.With(css.Attr(ColorSchemeAttribute, v.String()))
	}
	if v, ok := c.Motion.Get(); ok {
		s.Media = append(s.Media, css.Feature{Name: "prefers-reduced-motion", Value: v.mediaValue()})
	}
	if v, ok := c.Contrast.Get(); ok {
		s.Media = append(s.Media, css.Feature{Name: "prefers-contrast", Value: v.String()})
	}
	if v, ok := c.Transparency.Get(); ok {
		s.Media = append(s.Media, css.Feature{Name: "prefers-reduced-transparency", Value: v.mediaValue()})
	}
	if v, ok := c.Orientation.Get(); ok {
		s.Media = append(s.Media, css.Feature{Name: "orientation", Value: v.String()})
	}
	if v, ok := c.DisplayMode.Get(); ok {
		s.Media = append(s.Media, css.Feature{Name: "display-mode", Value: v.String()})
	}
	if !c.Breakpoint.IsNone() {
		s.Media = append(s.Media, css.Feature{Name: "min-width", Value: strconv.Itoa(c.Breakpoint.MinWidth) + "px"})
	}
	return s
}
