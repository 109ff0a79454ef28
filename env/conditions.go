package env

import (
	"strings"

	"github.com/samber/mo"

	"stylegen/ident"
)

// Conditions assigns a value to a subset of dimensions. The zero value is the
// empty environment. Conditions is comparable and can be used as map key:
// two values are equal iff every dimension is equal.
type Conditions struct {
	ColorScheme  mo.Option[ColorScheme]
	Motion       mo.Option[Motion]
	Contrast     mo.Option[Contrast]
	Transparency mo.Option[Transparency]
	Orientation  mo.Option[Orientation]
	DisplayMode  mo.Option[DisplayMode]
	Theme        mo.Option[Theme]
	Breakpoint   Breakpoint
}

// WithColorScheme returns copy with color scheme set.
func (c Conditions) WithColorScheme(v ColorScheme) Conditions {
	c.ColorScheme = mo.Some(v)
	return c
}

// WithMotion returns copy with motion preference set.
func (c Conditions) WithMotion(v Motion) Conditions {
	c.Motion = mo.Some(v)
	return c
}

// WithContrast returns copy with contrast preference set.
func (c Conditions) WithContrast(v Contrast) Conditions {
	c.Contrast = mo.Some(v)
	return c
}

// WithTransparency returns copy with transparency preference set.
func (c Conditions) WithTransparency(v Transparency) Conditions {
	c.Transparency = mo.Some(v)
	return c
}

// WithOrientation returns copy with orientation set.
func (c Conditions) WithOrientation(v Orientation) Conditions {
	c.Orientation = mo.Some(v)
	return c
}

// WithDisplayMode returns copy with display mode set.
func (c Conditions) WithDisplayMode(v DisplayMode) Conditions {
	c.DisplayMode = mo.Some(v)
	return c
}

// WithTheme returns copy with theme set.
func (c Conditions) WithTheme(v Theme) Conditions {
	c.Theme = mo.Some(v)
	return c
}

// WithBreakpoint returns copy with breakpoint set.
func (c Conditions) WithBreakpoint(v Breakpoint) Conditions {
	c.Breakpoint = v
	return c
}

// Has reports whether dimension is set.
func (c Conditions) Has(d Dimension) bool {
	switch d {
	case DimColorScheme:
		return c.ColorScheme.IsPresent()
	case DimMotion:
		return c.Motion.IsPresent()
	case DimContrast:
		return c.Contrast.IsPresent()
	case DimTransparency:
		return c.Transparency.IsPresent()
	case DimOrientation:
		return c.Orientation.IsPresent()
	case DimDisplayMode:
		return c.DisplayMode.IsPresent()
	case DimTheme:
		return c.Theme.IsPresent()
	case DimBreakpoint:
		return !c.Breakpoint.IsNone()
	}
	return false
}

// Without returns copy with dimension cleared.
func (c Conditions) Without(d Dimension) Conditions {
	switch d {
	case DimColorScheme:
		c.ColorScheme = mo.None[ColorScheme]()
	case DimMotion:
		c.Motion = mo.None[Motion]()
	case DimContrast:
		c.Contrast = mo.None[Contrast]()
	case DimTransparency:
		c.Transparency = mo.None[Transparency]()
	case DimOrientation:
		c.Orientation = mo.None[Orientation]()
	case DimDisplayMode:
		c.DisplayMode = mo.None[DisplayMode]()
	case DimTheme:
		c.Theme = mo.None[Theme]()
	case DimBreakpoint:
		c.Breakpoint = NoBreakpoint
	}
	return c
}

// Only returns copy with every dimension but d cleared.
func (c Conditions) Only(d Dimension) Conditions {
	return c.project(d)
}

func (c Conditions) project(d Dimension) Conditions {
	for _, other := range AllDimensions() {
		if other != d {
			c = c.Without(other)
		}
	}
	return c
}

// Merge returns c with every dimension set in o copied over.
func (c Conditions) Merge(o Conditions) Conditions {
	if o.ColorScheme.IsPresent() {
		c.ColorScheme = o.ColorScheme
	}
	if o.Motion.IsPresent() {
		c.Motion = o.Motion
	}
	if o.Contrast.IsPresent() {
		c.Contrast = o.Contrast
	}
	if o.Transparency.IsPresent() {
		c.Transparency = o.Transparency
	}
	if o.Orientation.IsPresent() {
		c.Orientation = o.Orientation
	}
	if o.DisplayMode.IsPresent() {
		c.DisplayMode = o.DisplayMode
	}
	if o.Theme.IsPresent() {
		c.Theme = o.Theme
	}
	if !o.Breakpoint.IsNone() {
		c.Breakpoint = o.Breakpoint
	}
	return c
}

// Active returns set dimensions in canonical order.
func (c Conditions) Active() []Dimension {
	var dims []Dimension
	for _, d := range AllDimensions() {
		if c.Has(d) {
			dims = append(dims, d)
		}
	}
	return dims
}

// Count returns number of set dimensions.
func (c Conditions) Count() int {
	return len(c.Active())
}

// IsEmpty is true for the baseline environment.
func (c Conditions) IsEmpty() bool {
	return c == Conditions{}
}

// Decomposed returns one single-dimension Conditions per active dimension,
// in canonical order.
func (c Conditions) Decomposed() []Conditions {
	dims := c.Active()
	out := make([]Conditions, 0, len(dims))
	for _, d := range dims {
		out = append(out, c.project(d))
	}
	return out
}

// Satisfies reports whether every dimension set in required has the same
// value in c. Empty requirement is always satisfied.
func (c Conditions) Satisfies(required Conditions) bool {
	for _, d := range required.Active() {
		if !c.Has(d) || c.project(d) != required.project(d) {
			return false
		}
	}
	return true
}

// Equal is c == o, spelled out for readability at call sites.
func (c Conditions) Equal(o Conditions) bool {
	return c == o
}

// Fingerprint writes every set dimension, so the digest is consistent with
// equality.
func (c Conditions) Fingerprint(h *ident.Hasher) {
	h.Tag("conditions")
	for _, d := range c.Active() {
		h.String(d.String()).String(c.ValueName(d))
		if d == DimBreakpoint {
			h.Int(int64(c.Breakpoint.MinWidth))
		}
	}
}

// Hash returns content digest of conditions.
func (c Conditions) Hash() uint64 {
	return ident.Sum(c)
}

// ValueName returns name of the value set for dimension, empty when unset.
func (c Conditions) ValueName(d Dimension) string {
	switch d {
	case DimColorScheme:
		if v, ok := c.ColorScheme.Get(); ok {
			return v.String()
		}
	case DimMotion:
		if v, ok := c.Motion.Get(); ok {
			return v.String()
		}
	case DimContrast:
		if v, ok := c.Contrast.Get(); ok {
			return v.String()
		}
	case DimTransparency:
		if v, ok := c.Transparency.Get(); ok {
			return v.String()
		}
	case DimOrientation:
		if v, ok := c.Orientation.Get(); ok {
			return v.String()
		}
	case DimDisplayMode:
		if v, ok := c.DisplayMode.Get(); ok {
			return v.String()
		}
	case DimTheme:
		if v, ok := c.Theme.Get(); ok {
			return v.String()
		}
	case DimBreakpoint:
		if !c.Breakpoint.IsNone() {
			return c.Breakpoint.Name
		}
	}
	return ""
}

// String returns "{dimension: value, ...}".
func (c Conditions) String() string {
	parts := make([]string, 0, 8)
	for _, d := range c.Active() {
		parts = append(parts, d.String()+": "+c.ValueName(d))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
