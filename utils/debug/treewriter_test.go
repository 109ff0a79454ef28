package debug

import (
	"context"
	"strings"
	"testing"

	"stylegen/anim"
	"stylegen/css"
	"stylegen/env"
	"stylegen/scoped"
	"stylegen/style"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "value: %d", []any{42}, "  value: 42\n"},
		{"multiple args", 0, "%s = %d", []any{"count", 5}, "count = 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{"empty value", 0, "field", "", "field: \n"},
		{"with value", 1, "content", "test", "  content: \"test\"\n"},
		{"value with quotes", 0, "quoted", `he said "hello"`, "quoted: \"he said \\\"hello\\\"\"\n"},
		{"value with newline", 0, "multiline", "line1\nline2", "multiline: \"line1\\nline2\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Declarations(t *testing.T) {
	tw := NewTreeWriter()
	tw.Declarations(1, css.NewPropertySet(css.Prop("margin", "0"), css.Prop("color", "red")))
	tw.Declarations(1, css.PropertySet{})
	want := "  color: red;\n  margin: 0;\n  (none)\n"
	if got := tw.String(); got != want {
		t.Errorf("Declarations() = %q, want %q", got, want)
	}
}

func TestTreeWriter_Resolved(t *testing.T) {
	cat := env.Catalog{ColorSchemes: []env.ColorScheme{env.ColorSchemeLight, env.ColorSchemeDark}}
	s := style.Func("text", func(c style.Content, e env.Conditions) style.Content {
		if v, ok := e.ColorScheme.Get(); ok && v == env.ColorSchemeDark {
			return c.Style("color", "white")
		}
		return c.Style("color", "black")
	})
	rs, err := style.NewResolver(cat).Resolve(context.Background(), s)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	tw := NewTreeWriter()
	tw.Resolved(0, "text", rs)
	want := "style text (" + rs.Class + ")\n" +
		"  combinations: 2, differing: 1, evaluations: 3\n" +
		"  base:\n" +
		"    color: black;\n" +
		"  when {color-scheme: dark}:\n" +
		"    color: white;\n"
	if got := tw.String(); got != want {
		t.Errorf("Resolved() =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeWriter_ResolvedPinned(t *testing.T) {
	dark := env.Conditions{}.WithColorScheme(env.ColorSchemeDark)
	reduced := env.Conditions{}.WithMotion(env.MotionReduced)
	red := css.NewPropertySet(css.Prop("color", "red"))
	rs := style.ResolvedStyle{
		Class: "style-x",
		Base:  css.NewPropertySet(css.Prop("color", "black")),
		Conditional: []style.Entry{
			{Conditions: reduced, Properties: red},
			{Conditions: dark, Properties: css.NewPropertySet(css.Prop("color", "white"))},
		},
		Pinned: []style.Entry{{Conditions: dark.Merge(reduced), Properties: red}},
	}

	tw := NewTreeWriter()
	tw.Resolved(0, "alert", rs)
	got := tw.String()
	if !strings.Contains(got, "  pinned: 1\n") {
		t.Errorf("pinned count missing:\n%s", got)
	}
	if strings.Count(got, "  when ") != 3 {
		t.Errorf("expected 3 entries:\n%s", got)
	}
}

func TestTreeWriter_ScopedAndAnimation(t *testing.T) {
	tw := NewTreeWriter()
	tw.Scoped(0, "grow", scoped.HoverEffect(style.Content{}.Style("opacity", "0.8"), css.AnchorCenter))
	tw.Animation(0, "fade", anim.Animation{
		Keyframes: []anim.Keyframe{anim.At(0, anim.Frame{}.Opacity(0)), anim.At(100, anim.Frame{}.Opacity(1))},
		Trigger:   anim.TriggerTap,
		Options:   anim.Options{Reverse: true},
	}.Compile())

	out := tw.String()
	for _, want := range []string{
		"hover grow (hover-",
		"  variant &:hover:\n    opacity: 0.8;\n    transform-origin: center;\n",
		"  keyframes anim-",
		"    100%:\n      opacity: 1;\n",
		"  reverse anim-",
		".active:\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}
}
