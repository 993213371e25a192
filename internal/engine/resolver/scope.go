package resolver

import (
	"os"
	"strconv"

	"github.com/xetl-run/xetl/internal/core/domain"
	"go.trai.ch/zerr"
)

// scope is the tagged-variant node the placeholder grammar dispatches to once
// the first path segment has selected it. Each implementation owns the
// sub-grammar for everything after that first segment.
type scope interface {
	resolve(path []string) (string, error)
}

// jobScope resolves job.name, job.description, job.data, and job.env.<KEY>.
type jobScope struct {
	job *domain.Job
}

func (s jobScope) resolve(path []string) (string, error) {
	if len(path) == 0 {
		return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "job requires a field")
	}
	switch path[0] {
	case "name":
		return s.job.Name, nil
	case "description":
		return s.job.Description, nil
	case "data":
		return s.job.Data, nil
	case "env":
		if len(path) != 2 {
			return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "job.env requires a key")
		}
		v, ok := s.job.Env[path[1]]
		if !ok {
			return "", zerr.With(zerr.With(domain.ErrPlaceholderReferenceError, "key", path[1]), "scope", "job.env")
		}
		return v, nil
	default:
		return "", zerr.With(zerr.With(domain.ErrPlaceholderReferenceError, "field", path[0]), "scope", "job")
	}
}

// commandRef is a snapshot of a completed command, enough to answer
// previous/commands lookups without holding the full domain.Command.
type commandRef struct {
	name     string
	taskName string
	result   *domain.CommandResult
}

func (r *commandRef) resolve(path []string) (string, error) {
	if len(path) == 0 {
		return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "command reference requires a field")
	}
	switch path[0] {
	case "name":
		return r.name, nil
	case "task":
		return r.taskName, nil
	case "returncode":
		return strconv.Itoa(r.result.ExitCode), nil
	case "env":
		if len(path) != 2 {
			return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "env requires a key")
		}
		v, ok := r.result.Env[path[1]]
		if !ok {
			return "", zerr.With(zerr.With(domain.ErrPlaceholderReferenceError, "key", path[1]), "command", r.name)
		}
		return v, nil
	default:
		return "", zerr.With(domain.ErrPlaceholderReferenceError, "field", path[0])
	}
}

// previousScope resolves the `previous` segment. ref is nil until a command
// has completed (not merely spawned, and never for a skipped command).
type previousScope struct {
	ref *commandRef
}

func (s previousScope) resolve(path []string) (string, error) {
	if s.ref == nil {
		return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "no previously executed command")
	}
	return s.ref.resolve(path)
}

// namedCommandsScope resolves commands.<NAME>.* against completed commands
// only; referencing a command that hasn't run yet (or doesn't exist) fails.
type namedCommandsScope struct {
	byName map[string]*commandRef
}

func (s namedCommandsScope) resolve(path []string) (string, error) {
	if len(path) < 1 {
		return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "commands requires a name")
	}
	ref, ok := s.byName[path[0]]
	if !ok {
		return "", zerr.With(zerr.With(domain.ErrPlaceholderReferenceError, "command", path[0]), "reason", "not found or not yet executed")
	}
	return ref.resolve(path[1:])
}

// hostEnvScope resolves env.<KEY> against the host process environment.
type hostEnvScope struct{}

func (s hostEnvScope) resolve(path []string) (string, error) {
	if len(path) != 1 {
		return "", zerr.With(domain.ErrPlaceholderReferenceError, "reason", "env requires exactly one key")
	}
	v, ok := os.LookupEnv(path[0])
	if !ok {
		return "", zerr.With(zerr.With(domain.ErrPlaceholderReferenceError, "key", path[0]), "scope", "env")
	}
	return v, nil
}
