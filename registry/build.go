package registry

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stylegen/anim"
	"stylegen/env"
	"stylegen/render"
	"stylegen/style"
)

// Options controls a build.
type Options struct {
	// Concurrency limits number of styles resolved at once, zero means
	// GOMAXPROCS.
	Concurrency int
	Depth       int
	Mode        style.Mode
	Verify      bool
	Logger      *zap.Logger
}

// Result of a build.
type Result struct {
	CSS string
	// Resolved has raw styles in registration order followed by styles
	// only used as attachments.
	Resolved   []style.ResolvedStyle
	Animations []anim.Compiled
}

// Build resolves every registered style concurrently and renders the
// stylesheet. Any failure aborts the whole build, there is no partial result.
func Build(ctx context.Context, reg *Registry, catalog env.Catalog, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := catalog.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid dimension catalog: %w", err)
	}

	start := time.Now()
	resolver := style.NewResolver(catalog,
		style.WithDepth(opts.Depth),
		style.WithMode(opts.Mode),
		style.WithVerify(opts.Verify),
		style.WithLogger(log))

	raw, attached := reg.resolvable()
	jobs := append(append([]style.Style(nil), raw...), attached...)
	resolved := make([]style.ResolvedStyle, len(jobs))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range jobs {
		g.Go(func() error {
			rs, err := resolver.Resolve(gctx, s)
			if err != nil {
				return fmt.Errorf("unable to resolve style %s: %w", style.ClassName(s), err)
			}
			resolved[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	compiled := lo.Map(reg.Animations(), func(a anim.Animation, _ int) anim.Compiled { return a.Compile() })
	doc := render.Document{
		Styles:     resolved[:len(raw)],
		Scoped:     reg.Scoped(),
		Animations: compiled,
		Resolved: lo.SliceToMap(resolved, func(rs style.ResolvedStyle) (string, style.ResolvedStyle) {
			return rs.Class, rs
		}),
	}
	text, err := render.NewRenderer(catalog, log).Render(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("unable to render stylesheet: %w", err)
	}

	log.Info("Stylesheet built",
		zap.Int("styles", len(raw)),
		zap.Int("attached", len(attached)),
		zap.Int("scoped", len(doc.Scoped)),
		zap.Int("animations", len(compiled)),
		zap.Int("bytes", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return Result{CSS: text, Resolved: resolved, Animations: compiled}, nil
}
