package scoped

import (
	"fmt"

	"stylegen/css"
	"stylegen/style"
)

// Phase is an interaction state of an element with its own selector.
type Phase interface {
	fmt.Stringer
	Selector() css.Selector
}

// ButtonPhase is an interaction state of a button.
type ButtonPhase int

const (
	ButtonInitial ButtonPhase = iota
	ButtonHovered
	ButtonPressed
	ButtonDisabled
)

// ButtonPhases lists phases in rule order.
var ButtonPhases = []ButtonPhase{ButtonInitial, ButtonHovered, ButtonPressed, ButtonDisabled}

func (p ButtonPhase) String() string {
	return [...]string{"initial", "hovered", "pressed", "disabled"}[p]
}

func (p ButtonPhase) Selector() css.Selector {
	switch p {
	case ButtonHovered:
		return css.Self().With(css.Pseudo("hover"))
	case ButtonPressed:
		return css.Self().With(css.Pseudo("active"))
	case ButtonDisabled:
		return css.Self().With(css.Pseudo("disabled"))
	}
	return css.Self()
}

// LinkPhase is an interaction state of a link.
type LinkPhase int

const (
	LinkInitial LinkPhase = iota
	LinkHovered
	LinkPressed
	LinkVisited
)

// LinkPhases lists phases in rule order.
var LinkPhases = []LinkPhase{LinkInitial, LinkHovered, LinkPressed, LinkVisited}

func (p LinkPhase) String() string {
	return [...]string{"initial", "hovered", "pressed", "visited"}[p]
}

func (p LinkPhase) Selector() css.Selector {
	switch p {
	case LinkHovered:
		return css.Self().With(css.Pseudo("hover"))
	case LinkPressed:
		return css.Self().With(css.Pseudo("active"))
	case LinkVisited:
		return css.Self().With(css.Pseudo("visited"))
	}
	return css.Self()
}

// DisclosurePhase is a state of a <details> summary label.
type DisclosurePhase int

const (
	DisclosureInitial DisclosurePhase = iota
	DisclosureHovered
	DisclosureExpanded
)

// DisclosurePhases lists phases in rule order.
var DisclosurePhases = []DisclosurePhase{DisclosureInitial, DisclosureHovered, DisclosureExpanded}

func (p DisclosurePhase) String() string {
	return [...]string{"initial", "hovered", "expanded"}[p]
}

func (p DisclosurePhase) Selector() css.Selector {
	switch p {
	case DisclosureHovered:
		return css.Self().With(css.Pseudo("hover"))
	case DisclosureExpanded:
		return css.Self().WhenChild(css.BoolAttr("open"))
	}
	return css.Self()
}

func forPhases[P Phase](kind Kind, phases []P, fn func(style.Content, P) style.Content) ScopedStyle {
	variants := make([]Variant, 0, len(phases))
	for _, p := range phases {
		variants = append(variants, Variant{
			Selector:   p.Selector(),
			Properties: fn(style.Content{}, p).Properties(),
		})
	}
	return New(kind, variants...)
}

// ForButton evaluates fn once per button phase.
func ForButton(fn func(style.Content, ButtonPhase) style.Content) ScopedStyle {
	return forPhases(KindButton, ButtonPhases, fn)
}

// ForLink evaluates fn once per link phase.
func ForLink(fn func(style.Content, LinkPhase) style.Content) ScopedStyle {
	return forPhases(KindLink, LinkPhases, fn)
}

// ForDisclosure evaluates fn once per disclosure phase.
func ForDisclosure(fn func(style.Content, DisclosurePhase) style.Content) ScopedStyle {
	return forPhases(KindDisclosure, DisclosurePhases, fn)
}
