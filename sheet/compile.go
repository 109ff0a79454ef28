package sheet

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylegen/anim"
	"stylegen/css"
	"stylegen/env"
	"stylegen/ident"
	"stylegen/registry"
	"stylegen/scoped"
	"stylegen/style"
)

type rule struct {
	when  env.Conditions
	props css.PropertySet
}

// Definition is a raw style declared in a document. Rules are applied in
// declaration order over base, later rules win.
type Definition struct {
	name  string
	base  css.PropertySet
	rules []rule
}

func (d *Definition) Name() string   { return d.name }
func (d *Definition) String() string { return d.name }

func (d *Definition) Apply(c style.Content, e env.Conditions) style.Content {
	c = c.Apply(d.base)
	for _, r := range d.rules {
		if e.Satisfies(r.when) {
			c = c.Apply(r.props)
		}
	}
	return c
}

// Fingerprint does not include name, equal definitions share a class.
func (d *Definition) Fingerprint(h *ident.Hasher) {
	h.Tag("definition").Value(d.base).Int(int64(len(d.rules)))
	for _, r := range d.rules {
		h.Value(r.when).Value(r.props)
	}
}

// Named pairs compiled value with its name in the document.
type Named[T any] struct {
	Name  string
	Value T
}

// Sheet is a compiled document.
type Sheet struct {
	Styles     []*Definition
	Scoped     []Named[scoped.ScopedStyle]
	Animations []Named[anim.Animation]
}

// Classes lists what markup needs to reference a named definition.
type Classes struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Classes []string `yaml:"classes"`
}

// Register adds everything to reg and returns class names in document order.
func (s *Sheet) Register(reg *registry.Registry) []Classes {
	out := make([]Classes, 0, len(s.Styles)+len(s.Scoped)+len(s.Animations))
	for _, d := range s.Styles {
		out = append(out, Classes{Name: d.name, Kind: "style", Classes: []string{reg.Register(d)}})
	}
	for _, n := range s.Scoped {
		out = append(out, Classes{Name: n.Name, Kind: n.Value.Kind().String(), Classes: reg.RegisterScoped(n.Value)})
	}
	for _, n := range s.Animations {
		out = append(out, Classes{Name: n.Name, Kind: "animation", Classes: []string{reg.RegisterAnimation(n.Value)}})
	}
	return out
}

// Register compiles document and adds it to reg.
func (d *Document) Register(reg *registry.Registry, catalog env.Catalog, log *zap.Logger) ([]Classes, error) {
	s, err := d.Compile(catalog, log)
	if err != nil {
		return nil, err
	}
	return s.Register(reg), nil
}

type compiler struct {
	catalog env.Catalog
	parser  *css.Parser
	log     *zap.Logger
	styles  map[string]*Definition
}

// Compile checks document against catalog and builds style values. All
// problems found are reported together.
func (d *Document) Compile(catalog env.Catalog, log *zap.Logger) (*Sheet, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &compiler{
		catalog: catalog,
		parser:  css.NewParser(log),
		log:     log.Named("sheet"),
		styles:  make(map[string]*Definition, len(d.Styles)),
	}

	var (
		s    Sheet
		errs error
	)
	for i, def := range d.Styles {
		st, err := c.style(def)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("styles[%d] %q: %w", i, def.Name, err))
			continue
		}
		if _, ok := c.styles[def.Name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("styles[%d]: duplicate name %q", i, def.Name))
			continue
		}
		c.styles[def.Name] = st
		s.Styles = append(s.Styles, st)
	}

	names := make(map[string]struct{})
	for i, def := range d.Scoped {
		sc, err := c.scoped(def)
		if err == nil {
			err = unique(names, def.Name)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("scoped[%d] %q: %w", i, def.Name, err))
			continue
		}
		s.Scoped = append(s.Scoped, Named[scoped.ScopedStyle]{Name: def.Name, Value: sc})
	}

	clear(names)
	for i, def := range d.Animations {
		a, err := c.animation(def)
		if err == nil {
			err = unique(names, def.Name)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("animations[%d] %q: %w", i, def.Name, err))
			continue
		}
		s.Animations = append(s.Animations, Named[anim.Animation]{Name: def.Name, Value: a})
	}

	if errs != nil {
		return nil, errs
	}
	c.log.Debug("Definitions compiled",
		zap.Int("styles", len(s.Styles)),
		zap.Int("scoped", len(s.Scoped)),
		zap.Int("animations", len(s.Animations)))
	return &s, nil
}

func unique(names map[string]struct{}, name string) error {
	if _, ok := names[name]; ok {
		return fmt.Errorf("duplicate name %q", name)
	}
	names[name] = struct{}{}
	return nil
}

func (c *compiler) declarations(text string) (css.PropertySet, error) {
	if strings.TrimSpace(text) == "" {
		return css.PropertySet{}, nil
	}
	return c.parser.ParseDeclarations(text)
}

func (c *compiler) style(def StyleDef) (*Definition, error) {
	if def.Name == "" {
		return nil, errors.New("name is required")
	}
	base, err := c.declarations(def.Base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	st := &Definition{name: def.Name, base: base}

	var errs error
	for i, r := range def.When {
		when, err := c.conditions(r.If)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("when[%d]: %w", i, err))
			continue
		}
		if when.IsEmpty() {
			errs = multierr.Append(errs, fmt.Errorf("when[%d]: at least one condition is required", i))
			continue
		}
		props, err := c.declarations(r.CSS)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("when[%d]: %w", i, err))
			continue
		}
		st.rules = append(st.rules, rule{when: when, props: props})
	}
	if errs != nil {
		return nil, errs
	}
	return st, nil
}

// conditions converts {dimension: value} map, themes and breakpoints are
// looked up in catalog by name.
func (c *compiler) conditions(m map[string]string) (env.Conditions, error) {
	var (
		cond env.Conditions
		errs error
	)
	for _, key := range slices.Sorted(maps.Keys(m)) {
		value := m[key]
		dim, err := env.ParseDimension(key)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w %q", ErrUnknownDimension, key))
			continue
		}
		one, err := c.value(dim, value)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		cond = cond.Merge(one)
	}
	return cond, errs
}

func (c *compiler) value(dim env.Dimension, value string) (env.Conditions, error) {
	var cond env.Conditions
	switch dim {
	case env.DimColorScheme:
		v, err := env.ParseColorScheme(value)
		return cond.WithColorScheme(v), err
	case env.DimMotion:
		v, err := env.ParseMotion(value)
		return cond.WithMotion(v), err
	case env.DimContrast:
		v, err := env.ParseContrast(value)
		return cond.WithContrast(v), err
	case env.DimTransparency:
		v, err := env.ParseTransparency(value)
		return cond.WithTransparency(v), err
	case env.DimOrientation:
		v, err := env.ParseOrientation(value)
		return cond.WithOrientation(v), err
	case env.DimDisplayMode:
		v, err := env.ParseDisplayMode(value)
		return cond.WithDisplayMode(v), err
	case env.DimTheme:
		for _, t := range c.catalog.Themes {
			if string(t) == value || t.AttributeValue() == value {
				return cond.WithTheme(t), nil
			}
		}
		return cond, fmt.Errorf("theme %q is not in catalog", value)
	case env.DimBreakpoint:
		for _, b := range c.catalog.Breakpoints {
			if b.Name == value {
				return cond.WithBreakpoint(b), nil
			}
		}
		return cond, fmt.Errorf("breakpoint %q is not in catalog", value)
	}
	return cond, fmt.Errorf("%w %q", ErrUnknownDimension, dim)
}

func (c *compiler) scoped(def ScopedDef) (scoped.ScopedStyle, error) {
	var (
		sc  scoped.ScopedStyle
		err error
	)
	switch def.Kind {
	case "button":
		sc, err = phasedOf(c, def, scoped.ForButton, scoped.ButtonPhases)
	case "link":
		sc, err = phasedOf(c, def, scoped.ForLink, scoped.LinkPhases)
	case "disclosure":
		sc, err = phasedOf(c, def, scoped.ForDisclosure, scoped.DisclosurePhases)
	case "hover", "tap", "entry":
		sc, err = c.trigger(def)
	case "trait":
		if def.Trait == "" {
			return sc, errors.New("trait name is required")
		}
		var props css.PropertySet
		if props, err = c.declarations(def.CSS); err == nil {
			sc = scoped.TraitEffect(def.Trait, style.Content{}.Apply(props))
		}
	case "effect":
		sc, err = c.effect(def)
	default:
		return sc, fmt.Errorf("unknown kind %q", def.Kind)
	}
	if err != nil {
		return sc, err
	}
	if def.Important {
		sc = sc.AsImportant()
	}

	uses := make([]style.Style, 0, len(def.Uses))
	for _, name := range def.Uses {
		st, ok := c.styles[name]
		if !ok {
			return sc, fmt.Errorf("%w %q", ErrUnknownReference, name)
		}
		uses = append(uses, st)
	}
	if len(uses) > 0 {
		sc = sc.Attach(uses...)
	}
	return sc, nil
}

// phasedOf checks that every phase key names a phase of the kind and builds
// scoped style with declarations of each phase.
func phasedOf[P scoped.Phase](c *compiler, def ScopedDef, build func(func(style.Content, P) style.Content) scoped.ScopedStyle, phases []P) (scoped.ScopedStyle, error) {
	known := make(map[string]struct{}, len(phases))
	for _, p := range phases {
		known[p.String()] = struct{}{}
	}
	props := make(map[string]css.PropertySet, len(def.Phases))
	var errs error
	for _, name := range slices.Sorted(maps.Keys(def.Phases)) {
		if _, ok := known[name]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown %s phase %q", def.Kind, name))
			continue
		}
		ps, err := c.declarations(def.Phases[name])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("phase %s: %w", name, err))
			continue
		}
		props[name] = ps
	}
	if errs != nil {
		return scoped.ScopedStyle{}, errs
	}
	return build(func(content style.Content, p P) style.Content {
		return content.Apply(props[p.String()])
	}), nil
}

func (c *compiler) trigger(def ScopedDef) (scoped.ScopedStyle, error) {
	anchor, err := css.ParseAnchor(def.Anchor)
	if err != nil {
		return scoped.ScopedStyle{}, err
	}
	props, err := c.declarations(def.CSS)
	if err != nil {
		return scoped.ScopedStyle{}, err
	}
	content := style.Content{}.Apply(props)
	switch def.Kind {
	case "tap":
		return scoped.TapEffect(content, anchor), nil
	case "entry":
		return scoped.EntryEffect(content, anchor), nil
	}
	return scoped.HoverEffect(content, anchor), nil
}

// effect builds environment effect, catalog cases without declarations get
// empty variants which are never rendered.
func (c *compiler) effect(def ScopedDef) (scoped.ScopedStyle, error) {
	dim, err := env.ParseDimension(def.Dimension)
	if err != nil {
		return scoped.ScopedStyle{}, fmt.Errorf("%w %q", ErrUnknownDimension, def.Dimension)
	}
	known := make(map[string]struct{})
	for _, v := range c.catalog.Values(dim) {
		known[v.ValueName(dim)] = struct{}{}
	}
	if dim == env.DimTheme {
		for _, t := range c.catalog.Themes {
			known[t.AttributeValue()] = struct{}{}
		}
	}

	props := make(map[string]css.PropertySet, len(def.Cases))
	var errs error
	for _, name := range slices.Sorted(maps.Keys(def.Cases)) {
		if _, ok := known[name]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%s case %q is not in catalog", dim, name))
			continue
		}
		ps, err := c.declarations(def.Cases[name])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("case %s: %w", name, err))
			continue
		}
		props[name] = ps
	}
	if errs != nil {
		return scoped.ScopedStyle{}, errs
	}

	return scoped.EnvironmentEffect(dim, c.catalog, func(content style.Content, e env.Conditions) style.Content {
		name := e.ValueName(dim)
		if ps, ok := props[name]; ok {
			return content.Apply(ps)
		}
		if dim == env.DimTheme {
			if t, ok := e.Theme.Get(); ok {
				return content.Apply(props[t.AttributeValue()])
			}
		}
		return content
	}), nil
}

func (c *compiler) animation(def AnimationDef) (anim.Animation, error) {
	var (
		a    anim.Animation
		err  error
		errs error
	)
	if a.Trigger, err = anim.ParseTrigger(def.Trigger); err != nil {
		errs = multierr.Append(errs, err)
	}
	if a.Lifecycle, err = anim.ParseLifecycle(def.Lifecycle); err != nil {
		errs = multierr.Append(errs, err)
	}
	if a.Anchor, err = css.ParseAnchor(def.Anchor); err != nil {
		errs = multierr.Append(errs, err)
	}
	if a.Options.Duration, err = duration(def.Duration); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("duration: %w", err))
	}
	if a.Options.Delay, err = duration(def.Delay); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delay: %w", err))
	}
	if a.Options.Repeat, err = repeat(def.Repeat); err != nil {
		errs = multierr.Append(errs, err)
	}
	a.Options.Easing = anim.Easing(strings.TrimSpace(def.Easing))
	a.Options.Reverse = def.Reverse

	if len(def.Keyframes) == 0 {
		errs = multierr.Append(errs, errors.New("at least one keyframe is required"))
	}
	for i, kd := range def.Keyframes {
		kf, err := c.keyframe(kd)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("keyframes[%d]: %w", i, err))
			continue
		}
		a.Keyframes = append(a.Keyframes, kf)
	}
	return a, errs
}

func (c *compiler) keyframe(def KeyframeDef) (anim.Keyframe, error) {
	if def.At < 0 || def.At > 100 {
		return anim.Keyframe{}, fmt.Errorf("position %v is out of range 0-100", def.At)
	}
	props, err := c.declarations(def.CSS)
	if err != nil {
		return anim.Keyframe{}, err
	}
	var f anim.Frame
	for _, p := range props.Props() {
		f = f.Style(p.Name, p.Value)
	}
	if def.Translate != "" {
		xy := strings.Fields(def.Translate)
		if len(xy) != 2 {
			return anim.Keyframe{}, fmt.Errorf("translate expects two lengths, got %q", def.Translate)
		}
		f = f.Translate(xy[0], xy[1])
	}
	if def.Scale != nil {
		f = f.Scale(*def.Scale)
	}
	if def.Rotate != nil {
		f = f.Rotate(*def.Rotate)
	}
	return anim.At(def.At, f), nil
}

func duration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

func repeat(s string) (int, error) {
	switch s {
	case "":
		return 0, nil
	case "infinite":
		return anim.RepeatForever, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("repeat must be positive count or \"infinite\", got %q", s)
	}
	return n, nil
}
