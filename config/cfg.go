package config

import (
	"bytes"
	"cmp"
	_ "embed"
	"fmt"
	"os"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"

	"stylegen/env"
	"stylegen/style"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	BuildConfig struct {
		Depth        int    `yaml:"depth" validate:"min=1,max=8"`
		Minimization string `yaml:"minimization" validate:"oneof=greedy exhaustive"`
		Verify       bool   `yaml:"verify"`
		Concurrency  int    `yaml:"concurrency" validate:"gte=0"` // 0 means number of CPUs
		Output       string `yaml:"output,omitempty" validate:"omitempty,filepath"`
		ClassMap     string `yaml:"class_map,omitempty" validate:"omitempty,filepath"`
	}

	BreakpointConfig struct {
		Name     string `yaml:"name" validate:"required"`
		MinWidth int    `yaml:"min_width" validate:"gt=0"`
	}

	CatalogConfig struct {
		ColorSchemes []string           `yaml:"color_schemes" validate:"dive,oneof=light dark"`
		Themes       []string           `yaml:"themes" validate:"dive,required"`
		Breakpoints  []BreakpointConfig `yaml:"breakpoints" validate:"dive"`
		Motion       []string           `yaml:"motion" validate:"dive,oneof=reduced no-preference"`
		Contrast     []string           `yaml:"contrast" validate:"dive,oneof=more less custom no-preference"`
		Transparency []string           `yaml:"transparency" validate:"dive,oneof=reduced no-preference"`
		Orientation  []string           `yaml:"orientation" validate:"dive,oneof=portrait landscape"`
		DisplayModes []string           `yaml:"display_modes" validate:"dive,oneof=browser standalone fullscreen minimal-ui picture-in-picture"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Build     BuildConfig    `yaml:"build"`
		Catalog   CatalogConfig  `yaml:"catalog"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Mode returns requested minimization strategy.
func (b *BuildConfig) Mode() (style.Mode, error) {
	return style.ParseMode(b.Minimization)
}

// Catalog converts configured dimension cases into validated catalog. Lists
// left empty in configuration produce no cases for the dimension. Breakpoints
// are ordered by min width.
func (c *CatalogConfig) Catalog() (env.Catalog, error) {
	var (
		cat  env.Catalog
		errs error
	)
	cat.ColorSchemes, errs = parseAll(c.ColorSchemes, env.ParseColorScheme, errs)
	cat.Motion, errs = parseAll(c.Motion, env.ParseMotion, errs)
	cat.Contrast, errs = parseAll(c.Contrast, env.ParseContrast, errs)
	cat.Transparency, errs = parseAll(c.Transparency, env.ParseTransparency, errs)
	cat.Orientations, errs = parseAll(c.Orientation, env.ParseOrientation, errs)
	cat.DisplayModes, errs = parseAll(c.DisplayModes, env.ParseDisplayMode, errs)
	for _, t := range c.Themes {
		cat.Themes = append(cat.Themes, env.Theme(t))
	}
	for _, b := range c.Breakpoints {
		cat.Breakpoints = append(cat.Breakpoints, env.Breakpoint{Name: b.Name, MinWidth: b.MinWidth})
	}
	slices.SortStableFunc(cat.Breakpoints, func(a, b env.Breakpoint) int {
		return cmp.Compare(a.MinWidth, b.MinWidth)
	})
	if errs != nil {
		return env.Catalog{}, fmt.Errorf("bad catalog configuration: %w", errs)
	}
	if err := cat.Validate(); err != nil {
		return env.Catalog{}, fmt.Errorf("bad catalog configuration: %w", err)
	}
	return cat, nil
}

func parseAll[T any](names []string, parse func(string) (T, error), errs error) ([]T, error) {
	var out []T
	for _, n := range names {
		v, err := parse(n)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file, lists are replaced
	// as a whole
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
