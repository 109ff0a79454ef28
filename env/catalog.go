package env

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Catalog lists the cases of every dimension. A dimension with an empty list
// is not enumerated.
type Catalog struct {
	ColorSchemes []ColorScheme
	Motion       []Motion
	Contrast     []Contrast
	Transparency []Transparency
	Orientations []Orientation
	DisplayModes []DisplayMode
	Themes       []Theme
	Breakpoints  []Breakpoint
}

// DefaultBreakpoints are used when nothing else is configured.
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{Name: "small", MinWidth: 576},
		{Name: "medium", MinWidth: 768},
		{Name: "large", MinWidth: 992},
		{Name: "xlarge", MinWidth: 1200},
		{Name: "xxlarge", MinWidth: 1400},
	}
}

// DefaultCatalog has every built-in case, default breakpoints and no themes.
func DefaultCatalog() Catalog {
	return Catalog{
		ColorSchemes: []ColorScheme{ColorSchemeLight, ColorSchemeDark},
		Motion:       []Motion{MotionReduced, MotionNoPreference},
		Contrast:     []Contrast{ContrastMore, ContrastLess, ContrastCustom, ContrastNoPreference},
		Transparency: []Transparency{TransparencyReduced, TransparencyNoPreference},
		Orientations: []Orientation{OrientationPortrait, OrientationLandscape},
		DisplayModes: []DisplayMode{
			DisplayModeBrowser, DisplayModeStandalone, DisplayModeFullscreen,
			DisplayModeMinimalUI, DisplayModePictureInPicture,
		},
		Breakpoints: DefaultBreakpoints(),
	}
}

// Values returns single-dimension conditions for every case of d in catalog
// order.
func (c Catalog) Values(d Dimension) []Conditions {
	var base Conditions
	switch d {
	case DimColorScheme:
		return mapCases(c.ColorSchemes, base.WithColorScheme)
	case DimMotion:
		return mapCases(c.Motion, base.WithMotion)
	case DimContrast:
		return mapCases(c.Contrast, base.WithContrast)
	case DimTransparency:
		return mapCases(c.Transparency, base.WithTransparency)
	case DimOrientation:
		return mapCases(c.Orientations, base.WithOrientation)
	case DimDisplayMode:
		return mapCases(c.DisplayModes, base.WithDisplayMode)
	case DimTheme:
		return mapCases(c.Themes, base.WithTheme)
	case DimBreakpoint:
		return mapCases(c.Breakpoints, base.WithBreakpoint)
	}
	panic(fmt.Sprintf("unknown dimension %d, this should never happen", d))
}

func mapCases[T any](cases []T, with func(T) Conditions) []Conditions {
	out := make([]Conditions, 0, len(cases))
	for _, v := range cases {
		out = append(out, with(v))
	}
	return out
}

// Dimensions returns dimensions with at least one case, in canonical order.
func (c Catalog) Dimensions() []Dimension {
	var dims []Dimension
	for _, d := range AllDimensions() {
		if len(c.Values(d)) > 0 {
			dims = append(dims, d)
		}
	}
	return dims
}

// ThemeCount is the number of registered themes.
func (c Catalog) ThemeCount() int {
	return len(c.Themes)
}

// Validate reports every problem found in the catalog at once.
func (c Catalog) Validate() error {
	var err error
	for _, d := range AllDimensions() {
		if d == DimBreakpoint {
			continue
		}
		seen := make(map[Conditions]struct{})
		for _, v := range c.Values(d) {
			if _, ok := seen[v]; ok {
				err = multierr.Append(err, fmt.Errorf("duplicate %s case %q", d, v.ValueName(d)))
			}
			seen[v] = struct{}{}
		}
	}

	themeSlugs := make(map[string]Theme)
	for _, t := range c.Themes {
		if t == "" {
			err = multierr.Append(err, errors.New("theme name must not be empty"))
			continue
		}
		s := t.AttributeValue()
		if s == "" {
			err = multierr.Append(err, fmt.Errorf("theme %q has no usable attribute value", t))
			continue
		}
		if prev, ok := themeSlugs[s]; ok && prev != t {
			err = multierr.Append(err, fmt.Errorf("themes %q and %q map to the same attribute value %q", prev, t, s))
		}
		themeSlugs[s] = t
	}

	// min-width rules of wider breakpoints must come later to win
	names := make(map[string]struct{})
	for i, b := range c.Breakpoints {
		if i > 0 && b.MinWidth <= c.Breakpoints[i-1].MinWidth {
			prev := c.Breakpoints[i-1]
			err = multierr.Append(err, fmt.Errorf("breakpoint %q (%dpx) must be wider than preceding %q (%dpx)", b.Name, b.MinWidth, prev.Name, prev.MinWidth))
		}
		if b.Name == "" {
			err = multierr.Append(err, fmt.Errorf("breakpoint with min width %dpx has no name", b.MinWidth))
		}
		if b.MinWidth <= 0 {
			err = multierr.Append(err, fmt.Errorf("breakpoint %q must have positive min width, got %d", b.Name, b.MinWidth))
		}
		if _, ok := names[b.Name]; ok && b.Name != "" {
			err = multierr.Append(err, fmt.Errorf("duplicate breakpoint name %q", b.Name))
		}
		names[b.Name] = struct{}{}
	}
	return err
}
