package scoped_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stylegen/anim"
	"stylegen/css"
	"stylegen/env"
	"stylegen/scoped"
	"stylegen/style"
)

func buttonStyle(c style.Content, p scoped.ButtonPhase) style.Content {
	switch p {
	case scoped.ButtonHovered:
		return c.Style("background", "navy")
	case scoped.ButtonPressed:
		return c.Style("background", "black")
	case scoped.ButtonDisabled:
		return c.Style("opacity", "0.5")
	}
	return c.Style("background", "blue").Style("color", "white")
}

func boundSelectors(s scoped.ScopedStyle) []string {
	var out []string
	for _, v := range s.Variants() {
		out = append(out, s.Selector(v).String())
	}
	return out
}

func TestForButton(t *testing.T) {
	s := scoped.ForButton(buttonStyle)
	base := s.BaseClass()
	if !strings.HasPrefix(base, "button-") {
		t.Fatalf("BaseClass() = %q", base)
	}
	want := []string{"." + base, "." + base + ":hover", "." + base + ":active", "." + base + ":disabled"}
	if diff := cmp.Diff(want, boundSelectors(s)); diff != "" {
		t.Errorf("selectors mismatch (-want +got):\n%s", diff)
	}
	if got := s.Variants()[1].Properties.String(); got != "background: navy" {
		t.Errorf("hovered properties = %q", got)
	}
}

func TestForLinkAndDisclosure(t *testing.T) {
	link := scoped.ForLink(func(c style.Content, p scoped.LinkPhase) style.Content {
		return c.Style("color", p.String())
	})
	if got := boundSelectors(link)[3]; got != "."+link.BaseClass()+":visited" {
		t.Errorf("visited selector = %q", got)
	}

	disc := scoped.ForDisclosure(func(c style.Content, p scoped.DisclosurePhase) style.Content {
		return c.Style("font-weight", p.String())
	})
	if got := boundSelectors(disc)[2]; got != "[open] > ."+disc.BaseClass() {
		t.Errorf("expanded selector = %q", got)
	}
	if disc.Kind() != scoped.KindDisclosure || !strings.HasPrefix(disc.BaseClass(), "disclosure-") {
		t.Errorf("kind %v class %q", disc.Kind(), disc.BaseClass())
	}
}

func TestBaseClassIsContentAddressed(t *testing.T) {
	a := scoped.ForButton(buttonStyle)
	b := scoped.ForButton(buttonStyle)
	if a.BaseClass() != b.BaseClass() {
		t.Errorf("same configuration produced %q and %q", a.BaseClass(), b.BaseClass())
	}
	c := scoped.ForButton(func(c style.Content, p scoped.ButtonPhase) style.Content {
		return buttonStyle(c, p).Style("border", "none")
	})
	if a.BaseClass() == c.BaseClass() {
		t.Error("different configurations share a class")
	}

	hover := scoped.HoverEffect(style.Content{}.Style("opacity", "0.8"), css.AnchorNone)
	tap := scoped.TapEffect(style.Content{}.Style("opacity", "0.8"), css.AnchorNone)
	if hover.BaseClass() == tap.BaseClass() {
		t.Error("different kinds with same content share a class")
	}
}

func TestEnvironmentEffect(t *testing.T) {
	cat := env.DefaultCatalog()
	s := scoped.EnvironmentEffect(env.DimColorScheme, cat, func(c style.Content, e env.Conditions) style.Content {
		if v, _ := e.ColorScheme.Get(); v == env.ColorSchemeDark {
			return c.Style("color", "white")
		}
		return c.Style("color", "black")
	})
	vs := s.Variants()
	if len(vs) != 2 {
		t.Fatalf("got %d variants, want 2", len(vs))
	}
	want := []string{
		`:where([data-color-scheme="light"]) .` + s.BaseClass(),
		`:where([data-color-scheme="dark"]) .` + s.BaseClass(),
	}
	if diff := cmp.Diff(want, boundSelectors(s)); diff != "" {
		t.Errorf("selectors mismatch (-want +got):\n%s", diff)
	}

	motion := scoped.EnvironmentEffect(env.DimMotion, cat, func(c style.Content, e env.Conditions) style.Content {
		return c.Style("animation", "none")
	})
	mv := motion.Variants()
	if got := css.MediaQuery(motion.Media(mv[0])); got != "(prefers-reduced-motion: reduce)" {
		t.Errorf("media = %q", got)
	}
	if got := motion.Selector(mv[0]).String(); got != "."+motion.BaseClass() {
		t.Errorf("media variant selector = %q", got)
	}

	cat.Themes = nil
	if n := len(scoped.EnvironmentEffect(env.DimTheme, cat, nil).Variants()); n != 0 {
		t.Errorf("dimension without cases produced %d variants", n)
	}
}

func TestTriggerEffects(t *testing.T) {
	c := style.Content{}.Style("transform", "scale(1.05)")
	tests := []struct {
		name   string
		s      scoped.ScopedStyle
		suffix string
	}{
		{"hover", scoped.HoverEffect(c, css.AnchorNone), ":hover"},
		{"tap", scoped.TapEffect(c, css.AnchorNone), ".active"},
		{"entry", scoped.EntryEffect(c, css.AnchorNone), ".in-view"},
		{"trait", scoped.TraitEffect("featured", c), "[data-featured]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sels := boundSelectors(tt.s)
			if len(sels) != 1 || sels[0] != "."+tt.s.BaseClass()+tt.suffix {
				t.Errorf("selectors = %v", sels)
			}
		})
	}

	anchored := scoped.TapEffect(c, css.AnchorBottomLeading)
	if v, ok := anchored.Variants()[0].Properties.Get("transform-origin"); !ok || v != "left bottom" {
		t.Errorf("transform-origin = %q, %v", v, ok)
	}
}

func TestTapStateClassSharedWithAnimation(t *testing.T) {
	tap := scoped.TapEffect(style.Content{}.Style("opacity", "0.8"), css.AnchorNone)
	if sels := boundSelectors(tap); len(sels) != 1 || !strings.HasSuffix(sels[0], "."+css.ActiveClass) {
		t.Errorf("tap effect selectors = %v", sels)
	}

	for trigger, effect := range map[anim.Trigger]scoped.ScopedStyle{
		anim.TriggerTap:   tap,
		anim.TriggerEntry: scoped.EntryEffect(style.Content{}.Style("opacity", "1"), css.AnchorNone),
	} {
		a := anim.Animation{
			Keyframes: []anim.Keyframe{anim.At(0, anim.Frame{}.Opacity(0)), anim.At(100, anim.Frame{}.Opacity(1))},
			Trigger:   trigger,
		}.Compile()
		class := "." + trigger.StateClass()
		if !strings.HasSuffix(boundSelectors(effect)[0], class) {
			t.Errorf("%v effect does not use animation state class %q", trigger, class)
		}
		found := false
		for _, r := range a.Rules {
			found = found || r.Selector.String() == "."+a.Name+class
		}
		if !found {
			t.Errorf("%v animation has no rule for %q", trigger, class)
		}
	}
}

func TestAsImportant(t *testing.T) {
	s := scoped.ForButton(buttonStyle)
	important := s.AsImportant()

	if important.BaseClass() == s.BaseClass() {
		t.Error("importance must be part of identity")
	}
	for i, v := range important.Variants() {
		if !v.Important {
			t.Errorf("variant %d is not important", i)
		}
		if s.Variants()[i].Important {
			t.Errorf("AsImportant() modified receiver variant %d", i)
		}
	}
}

func TestAttachAndAllClasses(t *testing.T) {
	raw := style.Func("card", func(c style.Content, _ env.Conditions) style.Content {
		return c.Style("padding", "1rem")
	})
	s := scoped.ForButton(buttonStyle)
	attached := s.Attach(raw, raw)

	if len(s.Variants()[0].Attached) != 0 {
		t.Error("Attach() modified receiver")
	}
	if attached.BaseClass() == s.BaseClass() {
		t.Error("attachment must be part of identity")
	}
	want := []string{attached.BaseClass(), style.ClassName(raw)}
	if diff := cmp.Diff(want, attached.AllClasses()); diff != "" {
		t.Errorf("AllClasses() mismatch (-want +got):\n%s", diff)
	}
	if n := len(attached.AttachedStyles()); n != 1 {
		t.Errorf("AttachedStyles() = %d styles, want 1", n)
	}
}

func TestParseAnchor(t *testing.T) {
	a, err := css.ParseAnchor("top_trailing")
	if err != nil || a != css.AnchorTopTrailing {
		t.Errorf("ParseAnchor() = %v, %v", a, err)
	}
	if a, err := css.ParseAnchor(""); err != nil || !a.IsNone() {
		t.Errorf("ParseAnchor(\"\") = %v, %v", a, err)
	}
	if _, err := css.ParseAnchor("north"); err == nil {
		t.Error("ParseAnchor(north) expected error")
	}
}
