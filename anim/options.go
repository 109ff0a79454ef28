package anim

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"stylegen/css"
)

// Trigger is the interaction that starts an animation.
type Trigger int

const (
	TriggerHover Trigger = iota
	TriggerTap
	TriggerEntry
)

// ReverseModeClass is set by the page runtime while reverse animation plays.
const ReverseModeClass = "reverse-mode"

func (t Trigger) String() string {
	switch t {
	case TriggerHover:
		return "hover"
	case TriggerTap:
		return "tap"
	case TriggerEntry:
		return "entry"
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

// ParseTrigger converts name into Trigger.
func ParseTrigger(s string) (Trigger, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hover":
		return TriggerHover, nil
	case "tap":
		return TriggerTap, nil
	case "entry":
		return TriggerEntry, nil
	}
	return TriggerHover, fmt.Errorf("unknown trigger %q", s)
}

// StateClass returns class set on element while trigger is engaged, empty for
// hover which is matched by pseudo-class.
func (t Trigger) StateClass() string {
	switch t {
	case TriggerTap:
		return css.ActiveClass
	case TriggerEntry:
		return css.InViewClass
	}
	return ""
}

// apply adds trigger condition to selector.
func (t Trigger) apply(sel css.Selector) css.Selector {
	if cls := t.StateClass(); cls != "" {
		return sel.WithClass(cls)
	}
	return sel.With(css.Pseudo("hover"))
}

// Lifecycle decides what is visible outside of playback.
type Lifecycle int

const (
	// LifecyclePersist preapplies first frame and keeps the last one.
	LifecyclePersist Lifecycle = iota
	// LifecycleRevert preapplies first frame and drops back after playback.
	LifecycleRevert
	// LifecycleTransient shows frames only while playing.
	LifecycleTransient
)

func (l Lifecycle) String() string {
	switch l {
	case LifecyclePersist:
		return "persist"
	case LifecycleRevert:
		return "revert"
	case LifecycleTransient:
		return "transient"
	}
	return fmt.Sprintf("Lifecycle(%d)", int(l))
}

// ParseLifecycle converts name into Lifecycle.
func ParseLifecycle(s string) (Lifecycle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "persist":
		return LifecyclePersist, nil
	case "revert":
		return LifecycleRevert, nil
	case "transient":
		return LifecycleTransient, nil
	}
	return LifecyclePersist, fmt.Errorf("unknown lifecycle %q", s)
}

// Preapply reports whether first frame is applied statically.
func (l Lifecycle) Preapply() bool {
	return l == LifecyclePersist || l == LifecycleRevert
}

// FillMode returns animation-fill-mode value.
func (l Lifecycle) FillMode() string {
	switch l {
	case LifecyclePersist:
		return "both"
	case LifecycleRevert:
		return "backwards"
	}
	return "none"
}

// Easing is an animation timing function.
type Easing string

const (
	EaseLinear    Easing = "linear"
	Ease          Easing = "ease"
	EaseIn        Easing = "ease-in"
	EaseOut       Easing = "ease-out"
	EaseInOut     Easing = "ease-in-out"
	EaseStepStart Easing = "step-start"
	EaseStepEnd   Easing = "step-end"
)

// CubicBezier returns custom easing curve.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return Easing("cubic-bezier(" + strings.Join([]string{
		formatNumber(x1), formatNumber(y1), formatNumber(x2), formatNumber(y2),
	}, ", ") + ")")
}

// Steps returns stepped easing.
func Steps(n int) Easing {
	return Easing("steps(" + strconv.Itoa(n) + ")")
}

// RepeatForever makes animation loop.
const RepeatForever = -1

// Options controls playback.
type Options struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing
	// Repeat is the iteration count, RepeatForever loops, zero means once.
	Repeat int
	// Reverse adds reverse keyframes played while element has reverse-mode
	// state class.
	Reverse bool
}

// DefaultOptions are used for zero fields.
var DefaultOptions = Options{Duration: 300 * time.Millisecond, Easing: Ease}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultOptions.Duration
	}
	if o.Easing == "" {
		o.Easing = DefaultOptions.Easing
	}
	if o.Repeat == 0 {
		o.Repeat = 1
	}
	return o
}

func (o Options) iterations() string {
	if o.Repeat < 0 {
		return "infinite"
	}
	return strconv.Itoa(o.Repeat)
}

func formatDuration(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
