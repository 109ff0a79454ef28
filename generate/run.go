// Package generate implements stylesheet producing subcommands.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"stylegen/registry"
	"stylegen/sheet"
	"stylegen/state"
	"stylegen/style"
	"stylegen/utils/debug"
)

// prepare loads catalog and definitions named on command line and builds
// them.
func prepare(ctx context.Context, cmd *cli.Command, log *zap.Logger) (registry.Result, []unit, error) {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return registry.Result{}, nil, errors.New("no definitions have been specified")
	}
	if env.Cfg != nil {
		cat, err := env.Cfg.Catalog.Catalog()
		if err != nil {
			return registry.Result{}, nil, err
		}
		env.Catalog = cat
	}
	opts, err := env.BuildOptions()
	if err != nil {
		return registry.Result{}, nil, err
	}
	opts.Logger = log

	files, err := collect(cmd.Args().Slice())
	if err != nil {
		return registry.Result{}, nil, err
	}
	reg, units, err := load(ctx, files, env.Catalog, env.Rpt, log)
	if err != nil {
		return registry.Result{}, nil, fmt.Errorf("unable to load definitions: %w", err)
	}
	env.Registry.Merge(reg)

	log.Info("Building stylesheet",
		zap.Int("files", len(files)),
		zap.Int("definitions", env.Registry.Len()),
		zap.Int("dimensions", len(env.Catalog.Dimensions())),
		zap.Int("depth", opts.Depth),
		zap.Stringer("minimization", opts.Mode))

	res, err := registry.Build(ctx, env.Registry, env.Catalog, opts)
	if err != nil {
		return registry.Result{}, nil, err
	}
	return res, units, nil
}

// Run renders stylesheet from definition files.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, units, err := prepare(ctx, cmd, log)
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" && env.Cfg != nil {
		out = env.Cfg.Build.Output
	}
	if err := writeOutput(out, []byte(res.CSS)); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	env.Rpt.StoreData("stylesheet.css", []byte(res.CSS))
	log.Debug("Stylesheet written", zap.String("file", outputName(out)), zap.Int("bytes", len(res.CSS)))

	mapFile := cmd.String("classes")
	if mapFile == "" && env.Cfg != nil {
		mapFile = env.Cfg.Build.ClassMap
	}
	if mapFile == "" {
		return nil
	}
	data, err := yaml.Marshal(classMap(units))
	if err != nil {
		return fmt.Errorf("unable to marshal class map: %w", err)
	}
	if err := writeOutput(mapFile, data); err != nil {
		return fmt.Errorf("unable to write class map: %w", err)
	}
	env.Rpt.StoreData("classes.yaml", data)
	return nil
}

// Explain dumps resolution of every definition in human readable form.
func Explain(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("explain")

	res, units, err := prepare(ctx, cmd, log)
	if err != nil {
		return err
	}
	dump := explain(res, units)
	if err := writeOutput(cmd.String("out"), []byte(dump)); err != nil {
		return fmt.Errorf("unable to write explanation: %w", err)
	}
	env.Rpt.StoreData("explain.txt", []byte(dump))
	return nil
}

type classMapEntry struct {
	File        string          `yaml:"file"`
	Definitions []sheet.Classes `yaml:"definitions"`
}

func classMap(units []unit) []classMapEntry {
	out := make([]classMapEntry, 0, len(units))
	for _, u := range units {
		out = append(out, classMapEntry{File: u.src.String(), Definitions: u.classes})
	}
	return out
}

func explain(res registry.Result, units []unit) string {
	resolved := make(map[string]int, len(res.Resolved))
	for i, rs := range res.Resolved {
		resolved[rs.Class] = i
	}
	compiled := make(map[string]int, len(res.Animations))
	for i, c := range res.Animations {
		compiled[c.Name] = i
	}

	tw := debug.NewTreeWriter()
	for _, u := range units {
		tw.Line(0, "file %s", u.src)
		for _, d := range u.sheet.Styles {
			if i, ok := resolved[style.ClassName(d)]; ok {
				tw.Resolved(1, d.Name(), res.Resolved[i])
			}
		}
		for _, n := range u.sheet.Scoped {
			tw.Scoped(1, n.Name, n.Value)
			for _, a := range n.Value.AttachedStyles() {
				if i, ok := resolved[style.ClassName(a)]; ok {
					tw.Resolved(2, fmt.Sprint(a), res.Resolved[i])
				}
			}
		}
		for _, n := range u.sheet.Animations {
			if i, ok := compiled[n.Value.Name()]; ok {
				tw.Animation(1, n.Name, res.Animations[i])
			}
		}
	}
	return tw.String()
}

func outputName(name string) string {
	if name == "" {
		return "STDOUT"
	}
	return name
}

func writeOutput(name string, data []byte) error {
	if name == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(name, data, 0644)
}
