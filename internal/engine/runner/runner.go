// Package runner implements the sequential per-command execution loop: the
// only subsystem in the engine that actually spawns child processes.
package runner

import (
	"context"
	"os"
	"path/filepath"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
	"github.com/xetl-run/xetl/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Runner drives a bound job's commands one at a time.
type Runner struct {
	executor ports.Executor
	sink     ports.Sink
}

// New creates a runner. job must already be bound (see the binder package)
// before Run is called.
func New(executor ports.Executor, sink ports.Sink) *Runner {
	return &Runner{executor: executor, sink: sink}
}

// Run executes every command of job in order, halting at the first non-zero
// exit. When dryRun is true, no child process is spawned — the loop still
// resolves every command's env so that placeholder errors are caught early.
// The returned exit code is only meaningful when err wraps
// domain.ErrCommandFailed; callers should otherwise treat any non-nil err as
// an engine-level failure.
func (r *Runner) Run(ctx context.Context, job *domain.Job, dryRun bool) (int, error) {
	r.sink.JobStart(job.Name)

	tmpRoot := filepath.Join(job.Data, "tmp")
	rs := resolver.NewRunState()
	res := resolver.New(job, rs, tmpRoot)

	exitCode, err := r.runCommands(ctx, job, res, rs, dryRun)

	status := domain.CommandStatusCompleted
	if err != nil {
		status = domain.CommandStatusFailed
	}
	r.sink.JobEnd(status)

	if err == nil {
		_ = os.RemoveAll(tmpRoot)
	}

	return exitCode, err
}

func (r *Runner) runCommands(ctx context.Context, job *domain.Job, res *resolver.Resolver, rs *resolver.RunState, dryRun bool) (int, error) {
	total := len(job.Commands)

	for i, cmd := range job.Commands {
		if cmd.Skip {
			cmd.Result = &domain.CommandResult{Status: domain.CommandStatusSkipped}
			continue
		}

		resolvedEnv, err := res.ResolveCommandEnv(cmd.Env)
		if err != nil {
			return 0, zerr.With(zerr.With(err, "command_index", i), "command", cmd.Name)
		}

		r.sink.CommandStart(i, total, domain.CommandRecord{Command: cmd, ResolvedEnv: resolvedEnv})

		if dryRun {
			result := &domain.CommandResult{Status: domain.CommandStatusCompleted, Env: resolvedEnv}
			cmd.Result = result
			rs.Complete(cmd.Name, cmd.TaskName, result)
			r.sink.CommandEnd(0)
			continue
		}

		argv, err := buildArgv(cmd.Task)
		if err != nil {
			return 0, zerr.With(zerr.With(err, "command_index", i), "command", cmd.Name)
		}

		spec := ports.ExecSpec{
			Argv: argv,
			Env:  mergeEnv(os.Environ(), resolvedEnv),
			Dir:  job.Data,
		}

		exitCode, err := r.executor.Run(ctx, spec, r.sink)
		if err != nil {
			return 0, zerr.With(zerr.With(err, "command_index", i), "command", cmd.Name)
		}

		r.sink.CommandEnd(exitCode)

		result := &domain.CommandResult{ExitCode: exitCode, Env: resolvedEnv}
		if exitCode == 0 {
			result.Status = domain.CommandStatusCompleted
		} else {
			result.Status = domain.CommandStatusFailed
		}
		cmd.Result = result
		rs.Complete(cmd.Name, cmd.TaskName, result)

		if exitCode != 0 {
			return exitCode, zerr.With(zerr.With(zerr.With(domain.ErrCommandFailed,
				"command_index", i),
				"command", cmd.Name),
				"exit_code", exitCode)

		}

		if ctx.Err() != nil {
			return 0, zerr.With(domain.ErrEngineInterrupted, "command_index", i)
		}
	}

	return 0, nil
}

// buildArgv constructs the child's argv from a task's run spec: inline
// form tokenises the interpreter and appends the script path as the final
// argument; command form runs the shell line via /bin/sh -c.
func buildArgv(task *domain.Task) ([]string, error) {
	if task.Run.IsInline() {
		words, err := SplitWords(task.Run.Interpreter)
		if err != nil {
			return nil, err
		}
		script := task.Run.Script
		if !filepath.IsAbs(script) {
			script = filepath.Join(task.Path, script)
		}
		return append(words, script), nil
	}
	return []string{"/bin/sh", "-c", task.Run.Command}, nil
}

// mergeEnv overlays overrides onto base (host environment entries of the
// form KEY=VALUE), with overrides winning on key conflicts.
func mergeEnv(base []string, overrides map[string]string) []string {
	merged := make(map[string]string, len(base)+len(overrides))
	for _, kv := range base {
		if k, v, ok := splitKV(kv); ok {
			merged[k] = v
		}
	}
	for k, v := range overrides {
		merged[k] = v
	}

	result := make([]string, 0, len(merged))
	for k, v := range merged {
		result = append(result, k+"="+v)
	}
	return result
}

func splitKV(entry string) (key, value string, ok bool) {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:], true
		}
	}
	return "", "", false
}
