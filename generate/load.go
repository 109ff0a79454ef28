package generate

import (
	"archive/zip"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stylegen/archive"
	"stylegen/config"
	"stylegen/env"
	"stylegen/registry"
	"stylegen/sheet"
)

// source is a definitions file either on disk or inside zip bundle.
type source struct {
	path   string
	member string
}

func (s source) String() string {
	if s.member == "" {
		return s.path
	}
	return s.path + "/" + s.member
}

func (s source) read() ([]byte, error) {
	if s.member == "" {
		return os.ReadFile(s.path)
	}
	return archive.ReadFile(s.path, s.member)
}

// unit is a single compiled definitions file.
type unit struct {
	src     source
	data    []byte
	sheet   *sheet.Sheet
	classes []sheet.Classes
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// collect expands directories and zip bundles into definition files they
// contain in natural order, symbolic links are not followed. Other files
// given explicitly are taken as is.
func collect(paths []string) ([]source, error) {
	var sources []source
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("unable to access definitions: %w", err)
		}
		switch {
		case fi.IsDir():
			found, err := walkDir(p)
			if err != nil {
				return nil, err
			}
			sources = append(sources, found...)
		case archive.IsArchive(p):
			found, err := walkArchive(p)
			if err != nil {
				return nil, err
			}
			sources = append(sources, found...)
		default:
			sources = append(sources, source{path: p})
		}
	}
	sources = lo.Uniq(sources)
	if len(sources) == 0 {
		return nil, fmt.Errorf("no definition files found in %s", strings.Join(paths, ", "))
	}
	return sources, nil
}

func walkDir(dir string) ([]source, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && isDefinitionFile(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to walk definitions directory %s: %w", dir, err)
	}
	sort.Sort(natural.StringSlice(found))
	return lo.Map(found, func(p string, _ int) source { return source{path: p} }), nil
}

func walkArchive(name string) ([]source, error) {
	var found []string
	err := archive.Walk(name, isDefinitionFile, func(f *zip.File) error {
		found = append(found, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read definitions bundle %s: %w", name, err)
	}
	sort.Sort(natural.StringSlice(found))
	return lo.Map(found, func(m string, _ int) source { return source{path: name, member: m} }), nil
}

// load compiles every file into its own registry concurrently and merges
// them in file order, so output does not depend on scheduling.
func load(ctx context.Context, sources []source, catalog env.Catalog, rpt *config.Report, log *zap.Logger) (*registry.Registry, []unit, error) {
	units := make([]unit, len(sources))
	regs := make([]*registry.Registry, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := src.read()
			if err != nil {
				return fmt.Errorf("unable to read definitions: %w", err)
			}
			doc, err := sheet.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			s, err := doc.Compile(catalog, log)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			regs[i] = registry.New()
			units[i] = unit{src: src, data: data, sheet: s, classes: s.Register(regs[i])}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	reg := registry.New()
	for i, u := range units {
		reg.Merge(regs[i])
		rpt.StoreData(fmt.Sprintf("definitions/%03d-%s", i, filepath.Base(u.src.String())), u.data)
		log.Debug("Definitions loaded", zap.Stringer("source", u.src), zap.Int("entries", len(u.classes)))
	}
	return reg, units, nil
}
