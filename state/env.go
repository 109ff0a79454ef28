// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stylegen/config"
	"stylegen/env"
	"stylegen/registry"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// filled from configuration before any definitions are loaded
	Catalog env.Catalog
	// every definition loaded during this run
	Registry *registry.Registry

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if le, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return le
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// BuildOptions converts build configuration into registry build options.
func (e *LocalEnv) BuildOptions() (registry.Options, error) {
	if e.Cfg == nil {
		return registry.Options{Logger: e.Log}, nil
	}
	mode, err := e.Cfg.Build.Mode()
	if err != nil {
		return registry.Options{}, fmt.Errorf("bad build configuration: %w", err)
	}
	return registry.Options{
		Concurrency: e.Cfg.Build.Concurrency,
		Depth:       e.Cfg.Build.Depth,
		Mode:        mode,
		Verify:      e.Cfg.Build.Verify,
		Logger:      e.Log,
	}, nil
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
