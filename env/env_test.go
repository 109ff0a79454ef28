package env

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stylegen/css"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want Dimension
	}{
		{"color-scheme", DimColorScheme},
		{"color_scheme", DimColorScheme},
		{"Display-Mode", DimDisplayMode},
		{" breakpoint ", DimBreakpoint},
	}
	for _, tt := range tests {
		got, err := ParseDimension(tt.in)
		if err != nil {
			t.Fatalf("ParseDimension(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDimension(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseDimension("gravity"); err == nil {
		t.Error("ParseDimension(gravity) expected error")
	}
}

func TestEnumRoundTrip(t *testing.T) {
	for _, v := range DefaultCatalog().DisplayModes {
		got, err := ParseDisplayMode(v.String())
		if err != nil || got != v {
			t.Errorf("ParseDisplayMode(%q) = %v, %v", v.String(), got, err)
		}
	}
	if s := DisplayMode(42).String(); !strings.Contains(s, "42") {
		t.Errorf("out of range String() = %q", s)
	}
}

func TestConditions_ZeroIsEmpty(t *testing.T) {
	var c Conditions
	if !c.IsEmpty() || c.Count() != 0 || len(c.Decomposed()) != 0 {
		t.Errorf("zero Conditions not empty: %v", c)
	}
	if c.String() != "{}" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestConditions_Decomposed(t *testing.T) {
	bp := Breakpoint{Name: "medium", MinWidth: 768}
	c := Conditions{}.WithBreakpoint(bp).WithMotion(MotionReduced).WithColorScheme(ColorSchemeDark)

	if c.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", c.Count())
	}
	want := []Conditions{
		Conditions{}.WithColorScheme(ColorSchemeDark),
		Conditions{}.WithMotion(MotionReduced),
		Conditions{}.WithBreakpoint(bp),
	}
	if diff := cmp.Diff(want, c.Decomposed(), cmp.Comparer(Conditions.Equal)); diff != "" {
		t.Errorf("Decomposed() mismatch (-want +got):\n%s", diff)
	}
	if got := c.String(); got != "{color-scheme: dark, motion: reduced, breakpoint: medium}" {
		t.Errorf("String() = %q", got)
	}
}

func TestConditions_WithoutAndMerge(t *testing.T) {
	c := Conditions{}.WithTheme("Ocean").WithContrast(ContrastMore)
	w := c.Without(DimTheme)
	if w.Has(DimTheme) || !w.Has(DimContrast) {
		t.Errorf("Without(theme) = %v", w)
	}
	if !c.Has(DimTheme) {
		t.Error("Without() modified receiver")
	}
	if m := w.Merge(c.Only(DimTheme)); m != c {
		t.Errorf("Merge() = %v, want %v", m, c)
	}
}

func TestConditions_EqualAndHash(t *testing.T) {
	a := Conditions{}.WithColorScheme(ColorSchemeDark).WithOrientation(OrientationLandscape)
	b := Conditions{}.WithOrientation(OrientationLandscape).WithColorScheme(ColorSchemeDark)
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Error("equal conditions built in different order must be equal with same hash")
	}
	c := a.WithColorScheme(ColorSchemeLight)
	if a.Equal(c) || a.Hash() == c.Hash() {
		t.Error("different conditions compare equal")
	}

	m := map[Conditions]int{a: 1}
	if m[b] != 1 {
		t.Error("conditions unusable as map key")
	}
}

func TestConditions_Satisfies(t *testing.T) {
	c := Conditions{}.WithColorScheme(ColorSchemeDark).WithMotion(MotionReduced)
	tests := []struct {
		name     string
		required Conditions
		want     bool
	}{
		{"empty", Conditions{}, true},
		{"subset", Conditions{}.WithColorScheme(ColorSchemeDark), true},
		{"same", c, true},
		{"other value", Conditions{}.WithColorScheme(ColorSchemeLight), false},
		{"missing dimension", Conditions{}.WithContrast(ContrastMore), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Satisfies(tt.required); got != tt.want {
				t.Errorf("Satisfies(%v) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}

func TestConditions_Scope(t *testing.T) {
	c := Conditions{}.
		WithBreakpoint(Breakpoint{Name: "large", MinWidth: 992}).
		WithColorScheme(ColorSchemeDark).
		WithMotion(MotionReduced).
		WithTheme("Deep Ocean").
		WithTransparency(TransparencyNoPreference)

	s := c.Scope()
	if got := s.Apply(css.Class("card")).String(); got != `:where([data-theme="deep-ocean"][data-color-scheme="dark"]) .card` {
		t.Errorf("scoped selector = %q", got)
	}
	want := "(prefers-reduced-motion: reduce) and (prefers-reduced-transparency: no-preference) and (min-width: 992px)"
	if got := css.MediaQuery(s.Media); got != want {
		t.Errorf("media = %q, want %q", got, want)
	}

	if !(Conditions{}).Scope().IsEmpty() {
		t.Error("empty conditions must have empty scope")
	}
	if got := (Conditions{}).Scope().Apply(css.Class("card")).String(); got != ".card" {
		t.Errorf("empty scope changed selector: %q", got)
	}
}

func TestCatalog_Dimensions(t *testing.T) {
	cat := DefaultCatalog()
	dims := cat.Dimensions()
	for _, d := range dims {
		if d == DimTheme {
			t.Error("default catalog must not enumerate themes")
		}
	}
	if len(dims) != len(AllDimensions())-1 {
		t.Errorf("Dimensions() = %v", dims)
	}
	if n := len(cat.Values(DimBreakpoint)); n != 5 {
		t.Errorf("default breakpoints = %d, want 5", n)
	}

	cat.Motion = nil
	for _, d := range cat.Dimensions() {
		if d == DimMotion {
			t.Error("dimension with no cases must be skipped")
		}
	}
}

func TestCatalog_Validate(t *testing.T) {
	if err := DefaultCatalog().Validate(); err != nil {
		t.Fatalf("DefaultCatalog().Validate() = %v", err)
	}

	cat := DefaultCatalog()
	cat.Themes = []Theme{"Ocean", "ocean", ""}
	cat.Breakpoints = append(cat.Breakpoints, Breakpoint{Name: "small", MinWidth: 0})
	cat.ColorSchemes = append(cat.ColorSchemes, ColorSchemeDark)

	err := cat.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"same attribute value", "must not be empty", "positive min width", "duplicate breakpoint name", "duplicate color-scheme"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %q", err, want)
		}
	}
}

func TestCatalog_ValidateBreakpointOrder(t *testing.T) {
	tests := []struct {
		name string
		bps  []Breakpoint
		want string
	}{
		{"descending", []Breakpoint{{Name: "lg", MinWidth: 992}, {Name: "md", MinWidth: 768}}, `breakpoint "md" (768px) must be wider than preceding "lg" (992px)`},
		{"equal", []Breakpoint{{Name: "md", MinWidth: 768}, {Name: "tablet", MinWidth: 768}}, `breakpoint "tablet" (768px) must be wider`},
		{"ascending", []Breakpoint{{Name: "md", MinWidth: 768}, {Name: "lg", MinWidth: 992}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Catalog{Breakpoints: tt.bps}.Validate()
			switch {
			case tt.want == "" && err != nil:
				t.Errorf("Validate() error = %v", err)
			case tt.want != "" && (err == nil || !strings.Contains(err.Error(), tt.want)):
				t.Errorf("Validate() error = %v, want %q", err, tt.want)
			}
		})
	}
}
