// Package registry collects style definitions used during a build and turns
// them into a stylesheet.
package registry

import (
	"sync"

	"github.com/samber/lo"

	"stylegen/anim"
	"stylegen/scoped"
	"stylegen/style"
)

// Registry is an explicit build context. Registration is idempotent by
// content identity: registering an equal definition again only returns its
// class. Registry is safe for concurrent use, but the usual pattern is one
// registry per unit of work merged into the build registry when the unit is
// done.
type Registry struct {
	mu         sync.Mutex
	styles     []style.Style
	scoped     []scoped.ScopedStyle
	animations []anim.Animation
	known      map[string]struct{}
}

// New returns empty registry.
func New() *Registry {
	return &Registry{known: make(map[string]struct{})}
}

// add records key and reports whether it was new, caller holds the lock.
func (r *Registry) add(key string) bool {
	if _, ok := r.known[key]; ok {
		return false
	}
	r.known[key] = struct{}{}
	return true
}

// Register adds raw style and returns its class name.
func (r *Registry) Register(s style.Style) string {
	class := style.ClassName(s)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.add(class) {
		r.styles = append(r.styles, s)
	}
	return class
}

// RegisterScoped adds scoped style and returns every class the element needs:
// base class followed by attached style classes.
func (r *Registry) RegisterScoped(s scoped.ScopedStyle) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.add(s.BaseClass()) {
		r.scoped = append(r.scoped, s)
	}
	return s.AllClasses()
}

// RegisterAnimation adds animation and returns its class name.
func (r *Registry) RegisterAnimation(a anim.Animation) string {
	name := a.Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.add(name) {
		r.animations = append(r.animations, a)
	}
	return name
}

// Merge registers everything from other in its registration order.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}
	styles, scopedStyles, animations := other.Styles(), other.Scoped(), other.Animations()
	for _, s := range styles {
		r.Register(s)
	}
	for _, s := range scopedStyles {
		r.RegisterScoped(s)
	}
	for _, a := range animations {
		r.RegisterAnimation(a)
	}
}

// Styles returns raw styles in registration order.
func (r *Registry) Styles() []style.Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]style.Style(nil), r.styles...)
}

// Scoped returns scoped styles in registration order.
func (r *Registry) Scoped() []scoped.ScopedStyle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]scoped.ScopedStyle(nil), r.scoped...)
}

// Animations returns animations in registration order.
func (r *Registry) Animations() []anim.Animation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]anim.Animation(nil), r.animations...)
}

// Len returns number of registered definitions of all kinds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.known)
}

// resolvable returns raw styles followed by attached styles not registered
// as raw styles, each once.
func (r *Registry) resolvable() (raw, attached []style.Style) {
	raw = r.Styles()
	seen := lo.SliceToMap(raw, func(s style.Style) (string, struct{}) {
		return style.ClassName(s), struct{}{}
	})
	for _, sc := range r.Scoped() {
		for _, a := range sc.AttachedStyles() {
			class := style.ClassName(a)
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			attached = append(attached, a)
		}
	}
	return raw, attached
}
