// Package render turns resolved styles, scoped styles and compiled
// animations into one deterministic stylesheet.
package render

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stylegen/anim"
	"stylegen/css"
	"stylegen/env"
	"stylegen/scoped"
	"stylegen/style"
)

// Document is everything registered for a build, in registration order.
type Document struct {
	Styles     []style.ResolvedStyle
	Scoped     []scoped.ScopedStyle
	Animations []anim.Compiled
	// Resolved holds resolution of every style attached to scoped styles,
	// keyed by class name.
	Resolved map[string]style.ResolvedStyle
}

// Renderer produces CSS text.
type Renderer struct {
	catalog env.Catalog
	log     *zap.Logger
}

// NewRenderer creates renderer for catalog themes.
func NewRenderer(catalog env.Catalog, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{catalog: catalog, log: log.Named("renderer")}
}

// Render returns stylesheet text. With more than one theme the document is
// rendered once per theme, concurrently, every class-level selector scoped by
// the theme attribute. Identical fragments are emitted once, output does not
// depend on scheduling.
func (r *Renderer) Render(ctx context.Context, doc Document) (string, error) {
	var passes []pass
	if r.catalog.ThemeCount() > 1 {
		for _, t := range r.catalog.Themes {
			passes = append(passes, pass{theme: mo.Some(t), resolved: doc.Resolved, log: r.log})
		}
	} else {
		passes = append(passes, pass{resolved: doc.Resolved, log: r.log})
	}

	results := make([][]string, len(passes))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range passes {
		g.Go(func() error {
			frags, err := p.document(gctx, doc)
			if err != nil {
				return err
			}
			results[i] = frags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var fragments []string
	for _, frags := range results {
		fragments = append(fragments, frags...)
	}
	for _, c := range doc.Animations {
		fragments = append(fragments, Animation(c)...)
	}

	unique := lo.Uniq(fragments)
	r.log.Debug("Stylesheet rendered",
		zap.Int("passes", len(passes)),
		zap.Int("fragments", len(fragments)),
		zap.Int("unique", len(unique)))
	return strings.Join(unique, "\n"), nil
}

// RenderStyle returns fragments of a single resolved style without theme
// scoping.
func (r *Renderer) RenderStyle(rs style.ResolvedStyle) []string {
	return pass{log: r.log}.style(css.Class(rs.Class), env.Conditions{}, rs)
}

// RenderScoped returns fragments of a scoped style and its attached styles
// without theme scoping.
func (r *Renderer) RenderScoped(s scoped.ScopedStyle, resolved map[string]style.ResolvedStyle) []string {
	return pass{resolved: resolved, log: r.log}.scoped(s)
}

// Animation returns fragments of compiled animation: keyframes first, then
// rules.
func Animation(c anim.Compiled) []string {
	frags := []string{css.StylesheetItem{Keyframes: &c.Forward}.String()}
	if c.HasReverse() {
		frags = append(frags, css.StylesheetItem{Keyframes: &c.Reverse}.String())
	}
	for i := range c.Rules {
		frags = append(frags, css.StylesheetItem{Rule: &c.Rules[i]}.String())
	}
	return frags
}

// pass renders document for a single theme, or unscoped when theme is absent.
type pass struct {
	theme    mo.Option[env.Theme]
	resolved map[string]style.ResolvedStyle
	log      *zap.Logger
}

func (p pass) document(ctx context.Context, doc Document) ([]string, error) {
	var frags []string
	for _, rs := range doc.Styles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frags = append(frags, p.style(css.Class(rs.Class), env.Conditions{}, rs)...)
	}
	for _, s := range doc.Scoped {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frags = append(frags, p.scoped(s)...)
	}
	return frags, nil
}

// style renders base and conditional entries of rs for selector sel which is
// valid under outer conditions.
func (p pass) style(sel css.Selector, outer env.Conditions, rs style.ResolvedStyle) []string {
	var frags []string
	if frag, ok := p.rule(sel, outer, nil, rs.Base, false); ok {
		frags = append(frags, frag)
	}
	for _, e := range rs.SortedBySpecificity() {
		cond, ok := combine(outer, e.Conditions)
		if !ok {
			continue
		}
		if frag, ok := p.rule(sel, cond, nil, e.Properties, false); ok {
			frags = append(frags, frag)
		}
	}
	return frags
}

func (p pass) scoped(s scoped.ScopedStyle) []string {
	var frags []string
	base := css.Class(s.BaseClass())
	for _, v := range s.Variants() {
		sel := v.Selector.Bind(base)
		if frag, ok := p.rule(sel, v.Conditions, v.Media, v.Properties, v.Important); ok {
			frags = append(frags, frag)
		}
		for _, name := range v.AttachedClassNames() {
			rs, ok := p.resolved[name]
			if !ok {
				p.log.Warn("Attached style was not resolved, skipping", zap.String("class", name), zap.String("scoped", s.BaseClass()))
				continue
			}
			frags = append(frags, p.style(sel.WithClass(name), v.Conditions, rs)...)
		}
	}
	return frags
}

// rule renders a single ruleset scoped by conditions, wrapped into @media
// when needed. Empty property sets and conditions for other themes produce
// nothing.
func (p pass) rule(sel css.Selector, cond env.Conditions, media []css.MediaFeature, props css.PropertySet, important bool) (string, bool) {
	if props.IsEmpty() {
		return "", false
	}
	if theme, ok := p.theme.Get(); ok {
		if other, set := cond.Theme.Get(); set && other != theme {
			return "", false
		}
		cond = cond.WithTheme(theme)
	}

	scope := cond.Scope()
	rs := css.Ruleset{Selector: scope.Apply(sel), Properties: props, Important: important}
	features := append(scope.Media, media...)
	if len(features) == 0 {
		return css.StylesheetItem{Rule: &rs}.String(), true
	}
	return css.StylesheetItem{MediaBlock: &css.MediaBlock{Features: features, Rules: []css.Ruleset{rs}}}.String(), true
}

// combine merges conditions, ok is false when they contradict each other.
func combine(outer, inner env.Conditions) (env.Conditions, bool) {
	merged := outer.Merge(inner)
	return merged, merged.Satisfies(outer)
}
