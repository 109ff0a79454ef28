package css_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"stylegen/css"
)

func TestPropertySet_Dedup(t *testing.T) {
	var s css.PropertySet
	if !s.Add(css.Prop("color", "red")) {
		t.Fatal("first Add() returned false")
	}
	if s.Add(css.Prop("color", "red")) {
		t.Error("duplicate Add() returned true")
	}
	s.Add(css.Prop("color", "blue"))
	s.Add(css.Prop("margin", "0"))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if v, _ := s.Get("color"); v != "blue" {
		t.Errorf("Get(color) = %q, want last added value blue", v)
	}

	want := []css.Property{css.Prop("color", "red"), css.Prop("color", "blue"), css.Prop("margin", "0")}
	if diff := cmp.Diff(want, s.Props()); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}
	sorted := []css.Property{css.Prop("color", "blue"), css.Prop("color", "red"), css.Prop("margin", "0")}
	if diff := cmp.Diff(sorted, s.Sorted()); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}
}

func TestPropertySet_EqualIgnoresOrder(t *testing.T) {
	a := css.NewPropertySet(css.Prop("color", "red"), css.Prop("margin", "0"))
	b := css.NewPropertySet(css.Prop("margin", "0"), css.Prop("color", "red"))
	c := css.NewPropertySet(css.Prop("margin", "0"))

	if !a.Equal(b) {
		t.Error("sets with same properties in different order must be equal")
	}
	if a.Equal(c) || c.Equal(a) {
		t.Error("sets of different size must not be equal")
	}
	if a.String() != b.String() {
		t.Errorf("String() differs: %q vs %q", a.String(), b.String())
	}
}

func TestPropertySet_CloneIsIndependent(t *testing.T) {
	a := css.NewPropertySet(css.Prop("color", "red"))
	b := a.Clone()
	b.Add(css.Prop("margin", "0"))
	if a.Len() != 1 {
		t.Errorf("original modified through clone, Len() = %d", a.Len())
	}
}

func TestSelector_String(t *testing.T) {
	tests := []struct {
		name string
		sel  css.Selector
		want string
	}{
		{"class", css.Class("btn"), ".btn"},
		{"attr", css.Attr("data-theme", "ocean"), `[data-theme="ocean"]`},
		{"attr escaped", css.Attr("title", `a"b`), `[title="a\"b"]`},
		{"bool attr", css.BoolAttr("disabled"), "[disabled]"},
		{"compound", css.Class("btn").With(css.Pseudo("hover")), ".btn:hover"},
		{"with class", css.Class("a").WithClass("b"), ".a.b"},
		{"descendant", css.Class("btn").WhenDescendant(css.Attr("data-color-scheme", "dark")), `[data-color-scheme="dark"] .btn`},
		{"child", css.Class("label").WhenChild(css.BoolAttr("open")), "[open] > .label"},
		{"or", css.Class("a").Or(css.Class("b")), ".a, .b"},
		{"compound distributes over or", css.Class("a").With(css.Pseudo("hover").Or(css.Pseudo("focus"))), ".a:hover, .a:focus"},
		{"descendant distributes over or", css.Class("a").WhenDescendant(css.Class("x").Or(css.Class("y"))), ".x .a, .y .a"},
		{"empty left", css.Selector{}.With(css.Class("a")), ".a"},
		{"self", css.Self().With(css.Pseudo("active")), "&:active"},
		{"where", css.Class("btn").WhenDescendant(css.Where(css.Attr("data-theme", "a").With(css.Attr("data-color-scheme", "dark")))), `:where([data-theme="a"][data-color-scheme="dark"]) .btn`},
		{"where empty", css.Class("btn").WhenDescendant(css.Where(css.Selector{})), ".btn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelector_CombinatorsDoNotMutate(t *testing.T) {
	base := css.Class("btn")
	hover := base.With(css.Pseudo("hover"))
	_ = hover.WhenDescendant(css.Attr("data-theme", "a"))
	_ = base.Or(css.Class("other"))

	if base.String() != ".btn" {
		t.Errorf("base selector changed: %q", base.String())
	}
	if hover.String() != ".btn:hover" {
		t.Errorf("compound selector changed: %q", hover.String())
	}
}

func TestSelector_Bind(t *testing.T) {
	sel := css.Self().WhenChild(css.BoolAttr("open"))
	if !sel.HasSelf() {
		t.Fatal("HasSelf() = false for selector with placeholder")
	}
	bound := sel.Bind(css.Class("disc-1"))
	if got := bound.String(); got != "[open] > .disc-1" {
		t.Errorf("Bind() = %q", got)
	}
	if bound.HasSelf() {
		t.Error("bound selector still has placeholder")
	}
	if sel.String() != "[open] > &" {
		t.Errorf("Bind() modified original: %q", sel.String())
	}
}

func TestMediaQuery(t *testing.T) {
	features := []css.MediaFeature{
		css.Feature{Name: "prefers-reduced-motion", Value: "reduce"},
		css.Feature{Name: "min-width", Value: "768px"},
		css.Feature{Name: "prefers-reduced-motion", Value: "reduce"},
		css.Feature{Name: "hover"},
	}
	want := "(prefers-reduced-motion: reduce) and (min-width: 768px) and (hover)"
	if got := css.MediaQuery(features); got != want {
		t.Errorf("MediaQuery() = %q, want %q", got, want)
	}
}

func TestStylesheet_Write(t *testing.T) {
	sheet := &css.Stylesheet{Items: []css.StylesheetItem{
		{Rule: &css.Ruleset{
			Selector:   css.Class("card"),
			Properties: css.NewPropertySet(css.Prop("padding", "1rem"), css.Prop("color", "black")),
		}},
		{MediaBlock: &css.MediaBlock{
			Features: []css.MediaFeature{css.Feature{Name: "prefers-reduced-motion", Value: "reduce"}},
			Rules: []css.Ruleset{{
				Selector:   css.Class("card"),
				Properties: css.NewPropertySet(css.Prop("transition", "none")),
				Important:  true,
			}},
		}},
		{Keyframes: &css.Keyframes{Name: "fade", Steps: []css.KeyframeStep{
			{Position: 0, Properties: css.NewPropertySet(css.Prop("opacity", "0"))},
			{Position: 33.5, Properties: css.NewPropertySet(css.Prop("transform", "scale(1.1)"), css.Prop("opacity", "0.5"))},
		}}},
	}}

	want := `.card {
  color: black;
  padding: 1rem;
}

@media (prefers-reduced-motion: reduce) {
  .card {
    transition: none !important;
  }
}

@keyframes fade {
  0% { opacity: 0; }
  33.5% { opacity: 0.5; transform: scale(1.1); }
}
`
	if diff := cmp.Diff(want, sheet.String()); diff != "" {
		t.Errorf("stylesheet text mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_ParseDeclarations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	props, err := p.ParseDeclarations("color: red; margin: 0 auto; --accent: #fff; background: rgb(0, 0, 0)")
	if err != nil {
		t.Fatalf("ParseDeclarations() error = %v", err)
	}
	want := []css.Property{
		css.Prop("color", "red"),
		css.Prop("margin", "0 auto"),
		css.Prop("--accent", "#fff"),
		css.Prop("background", "rgb(0, 0, 0)"),
	}
	if diff := cmp.Diff(want, props.Props()); diff != "" {
		t.Errorf("ParseDeclarations() mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_ParseDeclarationsKeepsQuotedText(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	tests := []struct {
		in   string
		want css.Property
	}{
		{`content: "a  b"`, css.Prop("content", `"a  b"`)},
		{`font-family:   "Foo   Bar" ,serif`, css.Prop("font-family", `"Foo   Bar", serif`)},
		{`grid-template-areas: "a  b"   "c  d"`, css.Prop("grid-template-areas", `"a  b" "c  d"`)},
		{`content: '  '`, css.Prop("content", `'  '`)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			props, err := p.ParseDeclarations(tt.in)
			if err != nil {
				t.Fatalf("ParseDeclarations() error = %v", err)
			}
			if diff := cmp.Diff([]css.Property{tt.want}, props.Props()); diff != "" {
				t.Errorf("ParseDeclarations() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_ParseDeclarationsEmpty(t *testing.T) {
	p := css.NewParser(nil)
	props, err := p.ParseDeclarations("")
	if err != nil {
		t.Fatalf("ParseDeclarations(\"\") error = %v", err)
	}
	if !props.IsEmpty() {
		t.Errorf("expected empty set, got %d properties", props.Len())
	}
}

func TestParser_StylesheetRoundTrip(t *testing.T) {
	sheet := &css.Stylesheet{Items: []css.StylesheetItem{
		{Rule: &css.Ruleset{
			Selector:   css.Class("card").WhenDescendant(css.Attr("data-theme", "ocean")),
			Properties: css.NewPropertySet(css.Prop("color", "navy")),
		}},
		{MediaBlock: &css.MediaBlock{
			Features: []css.MediaFeature{css.Feature{Name: "min-width", Value: "768px"}},
			Rules: []css.Ruleset{{
				Selector:   css.Class("card"),
				Properties: css.NewPropertySet(css.Prop("padding", "2rem")),
			}},
		}},
		{Keyframes: &css.Keyframes{Name: "pop", Steps: []css.KeyframeStep{
			{Position: 0, Properties: css.NewPropertySet(css.Prop("opacity", "0"))},
			{Position: 100, Properties: css.NewPropertySet(css.Prop("opacity", "1"))},
		}}},
	}}

	p := css.NewParser(zap.NewNop())
	parsed, err := p.ParseStylesheet([]byte(sheet.String()))
	if err != nil {
		t.Fatalf("ParseStylesheet() error = %v", err)
	}

	rules := parsed.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 top-level rule, got %d", len(rules))
	}
	if got := rules[0].Selector.String(); got != `[data-theme="ocean"] .card` {
		t.Errorf("rule selector = %q", got)
	}
	if v, _ := rules[0].Properties.Get("color"); v != "navy" {
		t.Errorf("color = %q, want navy", v)
	}

	blocks := parsed.MediaBlocks()
	if len(blocks) != 1 || len(blocks[0].Rules) != 1 {
		t.Fatalf("expected 1 media block with 1 rule, got %+v", blocks)
	}
	if got := css.MediaQuery(blocks[0].Features); got != "(min-width: 768px)" {
		t.Errorf("media query = %q", got)
	}

	kfs := parsed.KeyframeBlocks()
	if len(kfs) != 1 {
		t.Fatalf("expected 1 keyframes block, got %d", len(kfs))
	}
	if kfs[0].Name != "pop" || len(kfs[0].Steps) != 2 || kfs[0].Steps[1].Position != 100 {
		t.Errorf("unexpected keyframes %+v", kfs[0])
	}
}
