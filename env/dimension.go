// Package env models the environment a style is evaluated in: one optional
// value per independent dimension (color scheme, motion, contrast,
// transparency, orientation, display mode, theme) plus breakpoint.
package env

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// Dimension is one independent axis of environment variation. Declaration
// order is the canonical dimension order used everywhere (decomposition,
// enumeration, media feature order).
type Dimension int

const (
	DimColorScheme Dimension = iota
	DimMotion
	DimContrast
	DimTransparency
	DimOrientation
	DimDisplayMode
	DimTheme
	DimBreakpoint
)

var dimensionNames = enumNames[Dimension]{
	"color-scheme", "motion", "contrast", "transparency", "orientation", "display-mode", "theme", "breakpoint",
}

// AllDimensions returns every dimension in canonical order.
func AllDimensions() []Dimension {
	out := make([]Dimension, len(dimensionNames))
	for i := range dimensionNames {
		out[i] = Dimension(i)
	}
	return out
}

func (d Dimension) String() string { return dimensionNames.name(d) }

// ParseDimension accepts both "color-scheme" and "color_scheme" spellings.
func ParseDimension(s string) (Dimension, error) { return dimensionNames.parse("dimension", s) }

// ColorScheme is rendered as ancestor attribute data-color-scheme.
type ColorScheme int

const (
	ColorSchemeLight ColorScheme = iota
	ColorSchemeDark
)

var colorSchemeNames = enumNames[ColorScheme]{"light", "dark"}

func (v ColorScheme) String() string { return colorSchemeNames.name(v) }

// ParseColorScheme converts name into value.
func ParseColorScheme(s string) (ColorScheme, error) { return colorSchemeNames.parse("color scheme", s) }

// Motion is user motion preference.
type Motion int

const (
	MotionReduced Motion = iota
	MotionNoPreference
)

var motionNames = enumNames[Motion]{"reduced", "no-preference"}

func (v Motion) String() string { return motionNames.name(v) }

// ParseMotion converts name into value.
func ParseMotion(s string) (Motion, error) { return motionNames.parse("motion", s) }

func (v Motion) mediaValue() string {
	if v == MotionReduced {
		return "reduce"
	}
	return "no-preference"
}

// Contrast is user contrast preference.
type Contrast int

const (
	ContrastMore Contrast = iota
	ContrastLess
	ContrastCustom
	ContrastNoPreference
)

var contrastNames = enumNames[Contrast]{"more", "less", "custom", "no-preference"}

func (v Contrast) String() string { return contrastNames.name(v) }

// ParseContrast converts name into value.
func ParseContrast(s string) (Contrast, error) { return contrastNames.parse("contrast", s) }

// Transparency is user transparency preference.
type Transparency int

const (
	TransparencyReduced Transparency = iota
	TransparencyNoPreference
)

var transparencyNames = enumNames[Transparency]{"reduced", "no-preference"}

func (v Transparency) String() string { return transparencyNames.name(v) }

// ParseTransparency converts name into value.
func ParseTransparency(s string) (Transparency, error) {
	return transparencyNames.parse("transparency", s)
}

func (v Transparency) mediaValue() string {
	if v == TransparencyReduced {
		return "reduce"
	}
	return "no-preference"
}

// Orientation is viewport orientation.
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationLandscape
)

var orientationNames = enumNames[Orientation]{"portrait", "landscape"}

func (v Orientation) String() string { return orientationNames.name(v) }

// ParseOrientation converts name into value.
func ParseOrientation(s string) (Orientation, error) { return orientationNames.parse("orientation", s) }

// DisplayMode is the web application display mode.
type DisplayMode int

const (
	DisplayModeBrowser DisplayMode = iota
	DisplayModeStandalone
	DisplayModeFullscreen
	DisplayModeMinimalUI
	DisplayModePictureInPicture
)

var displayModeNames = enumNames[DisplayMode]{"browser", "standalone", "fullscreen", "minimal-ui", "picture-in-picture"}

func (v DisplayMode) String() string { return displayModeNames.name(v) }

// ParseDisplayMode converts name into value.
func ParseDisplayMode(s string) (DisplayMode, error) { return displayModeNames.parse("display mode", s) }

// Theme is a registered theme identity.
type Theme string

// AttributeValue is the value of data-theme attribute for the theme.
func (t Theme) AttributeValue() string {
	return slug.Make(string(t))
}

func (t Theme) String() string { return string(t) }

// Breakpoint is either none (zero value) or a named minimum viewport width.
type Breakpoint struct {
	Name     string
	MinWidth int // px
}

// NoBreakpoint is the "none" sentinel.
var NoBreakpoint = Breakpoint{}

// IsNone reports the sentinel value.
func (b Breakpoint) IsNone() bool {
	return b == NoBreakpoint
}

func (b Breakpoint) String() string {
	if b.IsNone() {
		return "none"
	}
	return b.Name + "(" + strconv.Itoa(b.MinWidth) + "px)"
}

// enumNames maps small integer enums to their names.
type enumNames[T ~int] []string

func (n enumNames[T]) name(v T) string {
	if int(v) < 0 || int(v) >= len(n) {
		return fmt.Sprintf("%T(%d)", v, int(v))
	}
	return n[v]
}

func (n enumNames[T]) parse(kind, s string) (T, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range n {
		if name == norm {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (expected one of: %s)", kind, s, strings.Join(n, ", "))
}
