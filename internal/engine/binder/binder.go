// Package binder attaches a resolved task to every command in a job and
// validates that each command's env exactly matches its task's declared
// env keys before any command is spawned.
package binder

import (
	"sort"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bind resolves and validates every command in job against reg. It runs for
// every command regardless of Skip — the binder's fail-fast guarantee is
// that a job either binds completely or doesn't execute at all.
func Bind(job *domain.Job, reg ports.Registry) error {
	for i, cmd := range job.Commands {
		if err := bindOne(cmd, reg); err != nil {
			return zerr.With(err, "command_index", i)
		}
	}
	return nil
}

func bindOne(cmd *domain.Command, reg ports.Registry) error {
	task, ok := reg.Lookup(cmd.TaskName)
	if !ok {
		return zerr.With(zerr.With(domain.ErrUnknownTask,
			"task", cmd.TaskName),
			"available", reg.Names())

	}

	declared := task.EnvKeys()
	supplied := make(map[string]struct{}, len(cmd.Env))
	for k := range cmd.Env {
		supplied[k] = struct{}{}
	}

	var missing, unexpected []string
	for k := range declared {
		if _, ok := supplied[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range supplied {
		if _, ok := declared[k]; !ok {
			unexpected = append(unexpected, k)
		}
	}

	if len(missing) > 0 || len(unexpected) > 0 {
		sort.Strings(missing)
		sort.Strings(unexpected)
		var err error
		switch {
		case len(missing) > 0 && len(unexpected) > 0:
			err = zerr.With(domain.ErrMissingEnv, "missing", missing)
			err = zerr.With(err, "unexpected", unexpected)
		case len(missing) > 0:
			err = zerr.With(domain.ErrMissingEnv, "missing", missing)
		default:
			err = zerr.With(domain.ErrUnexpectedEnv, "unexpected", unexpected)
		}
		return zerr.With(err, "task", cmd.TaskName)
	}

	cmd.Task = task
	return nil
}
