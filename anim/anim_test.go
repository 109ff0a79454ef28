package anim

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"stylegen/css"
)

var keyframeComparer = cmp.Comparer(func(a, b Keyframe) bool {
	return a.Position == b.Position && a.Styles.Equal(b.Styles)
})

func TestNormalize(t *testing.T) {
	a := css.NewPropertySet(css.Prop("opacity", "0"))
	b := css.NewPropertySet(css.Prop("opacity", "1"))

	in := []Keyframe{
		{Position: 0, Styles: a},
		{Position: 10, Styles: a},
		{Position: 10, Styles: a.Clone()},
		{Position: 50, Styles: b},
		{Position: 100, Styles: css.PropertySet{}},
	}
	want := []Keyframe{
		{Position: 0, Styles: a},
		{Position: 50, Styles: b},
	}
	if diff := cmp.Diff(want, Normalize(in), keyframeComparer); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_SortsAndKeepsNonConsecutiveDuplicates(t *testing.T) {
	a := css.NewPropertySet(css.Prop("opacity", "0"))
	b := css.NewPropertySet(css.Prop("opacity", "1"))
	got := Normalize([]Keyframe{{Position: 100, Styles: a}, {Position: 0, Styles: a}, {Position: 50, Styles: b}})
	want := []Keyframe{{Position: 0, Styles: a}, {Position: 50, Styles: b}, {Position: 100, Styles: a}}
	if diff := cmp.Diff(want, got, keyframeComparer); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestFrame_Transforms(t *testing.T) {
	f := Frame{}.Scale(1.2).Opacity(0.5).Translate("0", "-4px").Rotate(15)
	props := f.Properties()
	if v, _ := props.Get("transform"); v != "scale(1.2) translate(0, -4px) rotate(15deg)" {
		t.Errorf("transform = %q", v)
	}
	if v, _ := props.Get("opacity"); v != "0.5" {
		t.Errorf("opacity = %q", v)
	}

	g := f.Style("transform", "skewX(5deg)")
	if v, _ := g.Properties().Get("transform"); !strings.HasPrefix(v, "skewX(5deg) scale(1.2)") {
		t.Errorf("explicit transform not merged first: %q", v)
	}
	if v, _ := f.Properties().Get("transform"); strings.Contains(v, "skew") {
		t.Error("Style() modified receiver")
	}
}

func pulse() Animation {
	return Animation{
		Keyframes: []Keyframe{
			At(0, Frame{}.Opacity(0).Scale(0.9)),
			At(30, Frame{}.Opacity(0.6)),
			At(100, Frame{}.Opacity(1).Scale(1)),
		},
		Options:   Options{Duration: 400 * time.Millisecond, Easing: CubicBezier(0.2, 0, 0, 1), Reverse: true},
		Trigger:   TriggerTap,
		Anchor:    css.AnchorCenter,
		Lifecycle: LifecyclePersist,
	}
}

func TestCompile_ReverseMapping(t *testing.T) {
	c := pulse().Compile()
	if !c.HasReverse() || c.Reverse.Name != c.Name+"-reverse" {
		t.Fatalf("reverse keyframes = %+v", c.Reverse)
	}
	var positions []float64
	for _, s := range c.Reverse.Steps {
		positions = append(positions, s.Position)
	}
	if diff := cmp.Diff([]float64{0, 70, 100}, positions); diff != "" {
		t.Errorf("reverse positions mismatch (-want +got):\n%s", diff)
	}
	if v, _ := c.Reverse.Steps[1].Properties.Get("opacity"); v != "0.6" {
		t.Errorf("frame at 30%% not mapped to 70%%, opacity = %q", v)
	}
}

func TestCompile_Rules(t *testing.T) {
	c := pulse().Compile()
	name := c.Name
	if !strings.HasPrefix(name, "anim-") {
		t.Fatalf("Name = %q", name)
	}

	var got []string
	for _, r := range c.Rules {
		got = append(got, r.Selector.String()+" { "+r.Properties.String()+" }")
	}
	want := []string{
		"." + name + " { opacity: 0; transform: scale(0.9); transform-origin: center }",
		"." + name + ".active { animation: " + name + " 400ms cubic-bezier(0.2, 0, 0, 1) 0ms 1 both }",
		"." + name + ".reverse-mode.active { animation: " + name + "-reverse 400ms cubic-bezier(0.2, 0, 0, 1) 0ms 1 both }",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_Lifecycle(t *testing.T) {
	tests := []struct {
		lifecycle Lifecycle
		preapply  bool
		fill      string
	}{
		{LifecyclePersist, true, "both"},
		{LifecycleRevert, true, "backwards"},
		{LifecycleTransient, false, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.lifecycle.String(), func(t *testing.T) {
			a := pulse()
			a.Lifecycle = tt.lifecycle
			a.Anchor = css.AnchorNone
			a.Trigger = TriggerHover
			a.Options.Reverse = false
			c := a.Compile()

			hasBase := len(c.Rules) == 2
			if hasBase != tt.preapply {
				t.Errorf("preapplied base rule = %v, want %v (rules %d)", hasBase, tt.preapply, len(c.Rules))
			}
			trigger := c.Rules[len(c.Rules)-1]
			if trigger.Selector.String() != "."+c.Name+":hover" {
				t.Errorf("trigger selector = %q", trigger.Selector)
			}
			if v, _ := trigger.Properties.Get("animation"); !strings.HasSuffix(v, " "+tt.fill) {
				t.Errorf("animation = %q, want fill %s", v, tt.fill)
			}
			if c.HasReverse() {
				t.Error("reverse keyframes generated without reverse option")
			}
		})
	}
}

func TestAnimation_NameIsDeterministic(t *testing.T) {
	a := Animation{
		Keyframes: []Keyframe{
			At(0, Frame{}.Style("opacity", "0").Style("color", "red")),
			At(100, Frame{}.Style("opacity", "1").Style("color", "blue")),
		},
		Trigger: TriggerEntry,
	}
	b := Animation{
		Keyframes: []Keyframe{
			At(0, Frame{}.Style("color", "red").Style("opacity", "0")),
			At(100, Frame{}.Style("color", "blue").Style("opacity", "1")),
		},
		Trigger: TriggerEntry,
	}
	if a.Name() != b.Name() {
		t.Fatalf("names differ: %q vs %q", a.Name(), b.Name())
	}
	ca, cb := a.Compile(), b.Compile()
	if ca.Forward.Name != cb.Forward.Name || ca.Name != cb.Name {
		t.Error("compiled names differ")
	}
	sheet := func(c Compiled) string {
		s := &css.Stylesheet{Items: []css.StylesheetItem{{Keyframes: &c.Forward}}}
		for i := range c.Rules {
			s.Items = append(s.Items, css.StylesheetItem{Rule: &c.Rules[i]})
		}
		return s.String()
	}
	if diff := cmp.Diff(sheet(ca), sheet(cb)); diff != "" {
		t.Errorf("CSS differs (-a +b):\n%s", diff)
	}

	b.Trigger = TriggerHover
	if a.Name() == b.Name() {
		t.Error("different trigger produced the same name")
	}
}

func TestParseEnums(t *testing.T) {
	if tr, err := ParseTrigger("Entry"); err != nil || tr != TriggerEntry {
		t.Errorf("ParseTrigger() = %v, %v", tr, err)
	}
	if l, err := ParseLifecycle("revert"); err != nil || l != LifecycleRevert {
		t.Errorf("ParseLifecycle() = %v, %v", l, err)
	}
	if _, err := ParseLifecycle("forever"); err == nil {
		t.Error("ParseLifecycle(forever) expected error")
	}
	if Steps(4) != "steps(4)" {
		t.Errorf("Steps(4) = %q", Steps(4))
	}
}
