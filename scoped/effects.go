package scoped

import (
	"stylegen/css"
	"stylegen/env"
	"stylegen/style"
)

// EnvironmentEffect evaluates fn once for every catalog case of a single
// dimension. Each case becomes one variant scoped exactly like the case,
// without any minimization.
func EnvironmentEffect(dim env.Dimension, catalog env.Catalog, fn style.ApplyFunc) ScopedStyle {
	cases := catalog.Values(dim)
	variants := make([]Variant, 0, len(cases))
	for _, c := range cases {
		variants = append(variants, Variant{
			Selector:   css.Self(),
			Conditions: c,
			Properties: fn(style.Content{}, c).Properties(),
		})
	}
	return New(KindEnvironment, variants...)
}

func triggerEffect(kind Kind, sel css.Selector, c style.Content, anchor css.Anchor) ScopedStyle {
	props := c.Properties()
	if origin, ok := anchor.Origin(); ok {
		props.Add(origin)
	}
	return New(kind, Variant{Selector: sel, Properties: props})
}

// HoverEffect applies content while pointer is over the element.
func HoverEffect(c style.Content, anchor css.Anchor) ScopedStyle {
	return triggerEffect(KindHover, css.Self().With(css.Pseudo("hover")), c, anchor)
}

// TapEffect applies content while element carries the active state class.
func TapEffect(c style.Content, anchor css.Anchor) ScopedStyle {
	return triggerEffect(KindTap, css.Self().WithClass(css.ActiveClass), c, anchor)
}

// EntryEffect applies content once element scrolled into view.
func EntryEffect(c style.Content, anchor css.Anchor) ScopedStyle {
	return triggerEffect(KindEntry, css.Self().WithClass(css.InViewClass), c, anchor)
}

// TraitEffect applies content to elements having data-<trait> attribute.
func TraitEffect(trait string, c style.Content) ScopedStyle {
	return New(KindTrait, Variant{
		Selector:   css.Self().With(css.BoolAttr("data-" + trait)),
		Properties: c.Properties(),
	})
}
