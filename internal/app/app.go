// Package app wires the engine's subsystems together: load, discover,
// bind, then run. It is the one place that knows about every adapter.
package app

import (
	"context"
	"errors"

	"github.com/xetl-run/xetl/internal/adapters/manifest"
	"github.com/xetl-run/xetl/internal/adapters/registry"
	"github.com/xetl-run/xetl/internal/adapters/shell"
	progrocksink "github.com/xetl-run/xetl/internal/adapters/sink/progrock"
	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/engine/binder"
	"github.com/xetl-run/xetl/internal/engine/runner"
	"github.com/xetl-run/xetl/internal/engine/validator"
)

// App orchestrates a single job run from a manifest path to completion.
type App struct {
	loader *manifest.Loader
}

// New creates an App.
func New() *App {
	return &App{loader: manifest.NewLoader()}
}

// Run loads, discovers, binds, and (unless dryRun) executes the job at
// path. It returns the process exit code the caller should use: 0 on
// success, or the child's exit code capped at 125 on domain.ErrCommandFailed.
// Any other error is an engine-level failure and callers should exit 1.
func (a *App) Run(ctx context.Context, path string, dryRun, verbose bool) (int, error) {
	job, err := a.loader.LoadJob(path, dryRun)
	if err != nil {
		return 1, err
	}

	reg, err := registry.Discover(job.TaskPaths, a.loader)
	if err != nil {
		return 1, err
	}

	sink := progrocksink.New(verbose)
	defer sink.Close() //nolint:errcheck

	sink.TasksDiscovered(reg.Names())

	if err := binder.Bind(job, reg); err != nil {
		return 1, err
	}

	exec := shell.NewExecutor()
	exitCode, err := runner.New(exec, sink).Run(ctx, job, dryRun)
	if err == nil {
		return 0, nil
	}

	if errors.Is(err, domain.ErrCommandFailed) {
		return capExitCode(exitCode), err
	}
	return 1, err
}

// Validate loads a single task manifest and runs every test case it
// declares, without discovering a registry or binding a job. It returns the
// per-case results regardless of how many fail.
func (a *App) Validate(ctx context.Context, path string, verbose bool) ([]validator.CaseResult, error) {
	task, err := a.loader.LoadTask(path)
	if err != nil {
		return nil, err
	}

	sink := progrocksink.New(verbose)
	defer sink.Close() //nolint:errcheck

	exec := shell.NewExecutor()
	return validator.Run(ctx, task, exec, sink), nil
}

func capExitCode(code int) int {
	if code > 125 {
		return 125
	}
	if code < 0 {
		return 1
	}
	return code
}
