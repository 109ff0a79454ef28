package style

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"

	"stylegen/env"
)

var (
	// ErrStylePanic is returned when a style function panics.
	ErrStylePanic = errors.New("style function panicked")
	// ErrNondeterministic is returned in verify mode when a style produces
	// different output for the same conditions.
	ErrNondeterministic = errors.New("style function is not deterministic")
)

// DefaultDepth is the maximum number of dimensions set in one combination.
const DefaultDepth = 5

// Mode selects how differing combinations are reduced to minimal keys.
type Mode int

const (
	// MinimizeGreedy clears every dimension once, in canonical order, keeping
	// the removal when output does not change. It can leave a dimension that
	// only becomes removable after a later one is cleared.
	MinimizeGreedy Mode = iota
	// MinimizeExhaustive searches subsets of the active dimensions by
	// increasing size and picks the first one reproducing the output.
	MinimizeExhaustive
)

func (m Mode) String() string {
	switch m {
	case MinimizeGreedy:
		return "greedy"
	case MinimizeExhaustive:
		return "exhaustive"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts configuration value into Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "greedy":
		return MinimizeGreedy, nil
	case "exhaustive":
		return MinimizeExhaustive, nil
	}
	return MinimizeGreedy, fmt.Errorf("unknown minimization mode %q", s)
}

// Option configures Resolver.
type Option func(*Resolver)

// WithDepth sets combination depth, values below 1 are ignored.
func WithDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.depth = depth
		}
	}
}

// WithMode sets minimization mode.
func WithMode(m Mode) Option {
	return func(r *Resolver) { r.mode = m }
}

// WithVerify makes resolver evaluate every combination twice and fail on
// differing output.
func WithVerify(verify bool) Option {
	return func(r *Resolver) { r.verify = verify }
}

// WithLogger sets logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// Resolver finds the conditions under which a style differs from its
// baseline. It only reads its catalog and is safe for concurrent use.
type Resolver struct {
	catalog env.Catalog
	depth   int
	mode    Mode
	verify  bool
	log     *zap.Logger
}

// NewResolver creates resolver over catalog.
func NewResolver(catalog env.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: catalog,
		depth:   DefaultDepth,
		mode:    MinimizeGreedy,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("resolver")
	return r
}

// Catalog returns catalog resolver enumerates.
func (r *Resolver) Catalog() env.Catalog {
	return r.catalog
}

// Combinations enumerates conditions of the resolver catalog.
func (r *Resolver) Combinations() iter.Seq[env.Conditions] {
	return Combinations(r.catalog, r.depth)
}

// Combinations lazily generates every assignment of values to every non-empty
// subset of at most depth dimensions that have cases in the catalog. Each
// combination is produced exactly once, depth first: a combination is
// followed by its extensions with later dimensions.
func Combinations(catalog env.Catalog, depth int) iter.Seq[env.Conditions] {
	dims := catalog.Dimensions()
	values := make([][]env.Conditions, len(dims))
	for i, d := range dims {
		values[i] = catalog.Values(d)
	}

	return func(yield func(env.Conditions) bool) {
		var expand func(start int, cur env.Conditions, left int) bool
		expand = func(start int, cur env.Conditions, left int) bool {
			for i := start; i < len(dims); i++ {
				for _, v := range values[i] {
					next := cur.Merge(v)
					if !yield(next) {
						return false
					}
					if left > 1 && !expand(i+1, next, left-1) {
						return false
					}
				}
			}
			return true
		}
		if depth > 0 {
			expand(0, env.Conditions{}, depth)
		}
	}
}

// evaluator memoizes style output per conditions for one resolution.
type evaluator struct {
	s      Style
	name   string
	verify bool
	cache  map[env.Conditions]Content
	calls  int
}

func (e *evaluator) apply(cond env.Conditions) (out Content, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s with %s: %v", ErrStylePanic, e.name, cond, p)
		}
	}()
	e.calls++
	return e.s.Apply(Content{}, cond), nil
}

func (e *evaluator) eval(cond env.Conditions) (Content, error) {
	if out, ok := e.cache[cond]; ok {
		return out, nil
	}
	out, err := e.apply(cond)
	if err != nil {
		return Content{}, err
	}
	if e.verify {
		again, err := e.apply(cond)
		if err != nil {
			return Content{}, err
		}
		if !again.Equal(out) {
			return Content{}, fmt.Errorf("%w: %s with %s produced {%s} and then {%s}",
				ErrNondeterministic, e.name, cond, out.Properties(), again.Properties())
		}
	}
	e.cache[cond] = out
	return out, nil
}

// Resolve evaluates style over every combination and returns baseline plus
// minimal conditional entries. Any style failure aborts resolution.
func (r *Resolver) Resolve(ctx context.Context, s Style) (ResolvedStyle, error) {
	class := ClassName(s)
	ev := &evaluator{
		s:      s,
		name:   fmt.Sprintf("%v (%s)", s, class),
		verify: r.verify,
		cache:  make(map[env.Conditions]Content),
	}

	base, err := ev.eval(env.Conditions{})
	if err != nil {
		return ResolvedStyle{}, err
	}

	res := ResolvedStyle{Class: class, Base: base.Properties()}
	index := make(map[env.Conditions]int)

	for cond := range r.Combinations() {
		if err := ctx.Err(); err != nil {
			return ResolvedStyle{}, err
		}
		res.Stats.Combinations++

		out, err := ev.eval(cond)
		if err != nil {
			return ResolvedStyle{}, err
		}
		if out.Equal(base) {
			continue
		}
		res.Stats.Differing++

		key, err := r.minimize(ev, cond, out)
		if err != nil {
			return ResolvedStyle{}, err
		}
		if key.IsEmpty() {
			// only possible when style output is not a function of conditions
			r.log.Warn("Combination reduced to baseline, ignoring", zap.String("class", class), zap.Stringer("conditions", cond))
			continue
		}

		entry := Entry{Conditions: key, Properties: out.Properties()}
		if i, ok := index[key]; ok {
			res.Conditional[i] = entry
			continue
		}
		index[key] = len(res.Conditional)
		res.Conditional = append(res.Conditional, entry)
	}
	if err := r.pin(ctx, ev, &res); err != nil {
		return ResolvedStyle{}, err
	}
	res.Stats.Evaluations = ev.calls

	r.log.Debug("Style resolved",
		zap.String("class", class),
		zap.Stringer("mode", r.mode),
		zap.Int("combinations", res.Stats.Combinations),
		zap.Int("differing", res.Stats.Differing),
		zap.Int("conditional", len(res.Conditional)),
		zap.Int("pinned", len(res.Pinned)),
		zap.Int("evaluations", res.Stats.Evaluations))
	return res, nil
}

// pin walks combinations from fewer to more dimensions and adds a pinned
// entry wherever rendered rules would not reproduce style output. A pinned
// entry only matches its own combination and supersets of it, which are
// checked later, so a single pass is enough.
func (r *Resolver) pin(ctx context.Context, ev *evaluator, res *ResolvedStyle) error {
	combos := slices.Collect(r.Combinations())
	slices.SortStableFunc(combos, func(a, b env.Conditions) int {
		return cmp.Compare(a.Count(), b.Count())
	})
	for _, cond := range combos {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := ev.eval(cond)
		if err != nil {
			return err
		}
		props := out.Properties()
		if res.reproduces(cond, props) {
			continue
		}
		r.log.Debug("Overlapping entries do not reproduce combination, pinning",
			zap.String("class", res.Class), zap.Stringer("conditions", cond))
		res.Pinned = append(res.Pinned, Entry{Conditions: cond, Properties: props})
	}
	return nil
}

func (r *Resolver) minimize(ev *evaluator, cond env.Conditions, want Content) (env.Conditions, error) {
	if r.mode == MinimizeExhaustive {
		return minimizeExhaustive(ev, cond, want)
	}
	return minimizeGreedy(ev, cond, want)
}

func minimizeGreedy(ev *evaluator, cond env.Conditions, want Content) (env.Conditions, error) {
	key := cond
	for _, d := range cond.Active() {
		candidate := key.Without(d)
		out, err := ev.eval(candidate)
		if err != nil {
			return env.Conditions{}, err
		}
		if out.Equal(want) {
			key = candidate
		}
	}
	return key, nil
}

func minimizeExhaustive(ev *evaluator, cond env.Conditions, want Content) (env.Conditions, error) {
	dims := cond.Active()
	for size := 1; size < len(dims); size++ {
		for subset := range subsets(len(dims), size) {
			var candidate env.Conditions
			for _, i := range subset {
				candidate = candidate.Merge(cond.Only(dims[i]))
			}
			out, err := ev.eval(candidate)
			if err != nil {
				return env.Conditions{}, err
			}
			if out.Equal(want) {
				return candidate, nil
			}
		}
	}
	return cond, nil
}

// subsets yields index sets of given size out of n in lexicographic order.
// The yielded slice is reused between iterations.
func subsets(n, size int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		idx := make([]int, size)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			i := size - 1
			for i >= 0 && idx[i] == n-size+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < size; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
