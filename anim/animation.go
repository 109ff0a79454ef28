package anim

import (
	"strings"

	"github.com/samber/lo"

	"stylegen/css"
	"stylegen/ident"
)

// Animation is a keyframe animation started by a trigger. Its class and
// keyframes names are derived from the whole definition.
type Animation struct {
	Keyframes []Keyframe
	Options   Options
	Trigger   Trigger
	Anchor    css.Anchor
	Lifecycle Lifecycle
}

func (a Animation) Fingerprint(h *ident.Hasher) {
	o := a.Options.withDefaults()
	h.Tag("animation").
		String(a.Trigger.String()).
		String(a.Lifecycle.String()).
		String(a.Anchor.String()).
		Int(o.Duration.Milliseconds()).
		Int(o.Delay.Milliseconds()).
		String(string(o.Easing)).
		Int(int64(o.Repeat)).
		Bool(o.Reverse)
	frames := Normalize(a.Keyframes)
	h.Int(int64(len(frames)))
	for _, kf := range frames {
		h.Float(kf.Position).Value(kf.Styles)
	}
}

// Name is used both as class and as @keyframes identifier.
func (a Animation) Name() string {
	return ident.Name("anim", a)
}

// Compiled is CSS of an animation.
type Compiled struct {
	Name    string
	Forward css.Keyframes
	// Reverse is empty unless reverse playback was requested.
	Reverse css.Keyframes
	Rules   []css.Ruleset
}

// HasReverse reports whether reverse keyframes were generated.
func (c Compiled) HasReverse() bool {
	return c.Reverse.Name != ""
}

// Compile produces keyframes blocks and rules: base rule (preapplied first
// frame and transform-origin), trigger rule and reverse-mode rule.
func (a Animation) Compile() Compiled {
	name := a.Name()
	opts := a.Options.withDefaults()
	frames := Normalize(a.Keyframes)

	c := Compiled{Name: name, Forward: css.Keyframes{Name: name, Steps: lo.Map(frames, func(kf Keyframe, _ int) css.KeyframeStep {
		return css.KeyframeStep{Position: kf.Position, Properties: kf.Styles.Clone()}
	})}}

	self := css.Class(name)

	var base css.PropertySet
	if a.Lifecycle.Preapply() && len(frames) > 0 {
		base = frames[0].Styles.Clone()
	}
	if origin, ok := a.Anchor.Origin(); ok {
		base.Add(origin)
	}
	if !base.IsEmpty() {
		c.Rules = append(c.Rules, css.Ruleset{Selector: self, Properties: base})
	}

	if len(frames) == 0 {
		return c
	}

	c.Rules = append(c.Rules, css.Ruleset{
		Selector:   a.Trigger.apply(self),
		Properties: css.NewPropertySet(css.Prop("animation", shorthand(name, opts, a.Lifecycle))),
	})

	if opts.Reverse {
		c.Reverse = css.Keyframes{Name: name + "-reverse", Steps: lo.Map(frames, func(_ Keyframe, i int) css.KeyframeStep {
			kf := frames[len(frames)-1-i]
			return css.KeyframeStep{Position: 100 - kf.Position, Properties: kf.Styles.Clone()}
		})}
		c.Rules = append(c.Rules, css.Ruleset{
			Selector:   a.Trigger.apply(self.WithClass(ReverseModeClass)),
			Properties: css.NewPropertySet(css.Prop("animation", shorthand(c.Reverse.Name, opts, a.Lifecycle))),
		})
	}
	return c
}

// shorthand returns "name duration easing delay iterations fill-mode".
func shorthand(name string, o Options, l Lifecycle) string {
	return strings.Join([]string{
		name,
		formatDuration(o.Duration),
		string(o.Easing),
		formatDuration(o.Delay),
		o.iterations(),
		l.FillMode(),
	}, " ")
}
