// Package resolver implements the `${...}` placeholder expression language:
// tokenising expressions, dispatching on the first path segment to a scope,
// and returning literal strings.
package resolver

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xetl-run/xetl/internal/core/domain"
	"go.trai.ch/zerr"
)

// RunState is the mutable scope table accumulated during a job run. It is
// owned by the engine and mutated only between commands, never concurrently
// with a running child.
type RunState struct {
	previous *commandRef
	byName   map[string]*commandRef
}

// NewRunState returns an empty run state, as at the start of a job.
func NewRunState() *RunState {
	return &RunState{byName: map[string]*commandRef{}}
}

// Complete records a command's resolved env and exit status. Skipped
// commands must not call Complete — doing so is what keeps `previous`
// pointing at the last *executed* command.
func (rs *RunState) Complete(name, taskName string, result *domain.CommandResult) {
	ref := &commandRef{name: name, taskName: taskName, result: result}
	rs.previous = ref
	if name != "" {
		rs.byName[name] = ref
	}
}

// Resolver resolves placeholder expressions against a job and a run state.
type Resolver struct {
	job     *domain.Job
	rs      *RunState
	tmpRoot string

	// tmpCalls counts ResolveCommandEnv invocations, so that each command
	// gets its own `${tmp.*}` namespace even when it reuses a key already
	// used by an earlier command.
	tmpCalls int
}

// New creates a resolver. tmpRoot is the run-scoped directory under which
// `${tmp.*}` allocations are created.
func New(job *domain.Job, rs *RunState, tmpRoot string) *Resolver {
	return &Resolver{job: job, rs: rs, tmpRoot: tmpRoot}
}

// ResolveCommandEnv resolves every value in env against the current scope
// table, sharing a single `tmp` allocator across all of them so that
// repeated `${tmp.X}` references within one command share a directory.
func (r *Resolver) ResolveCommandEnv(env map[string]string) (map[string]string, error) {
	tf := newTmpFactory(filepath.Join(r.tmpRoot, strconv.Itoa(r.tmpCalls)))
	r.tmpCalls++
	scopes := r.scopes(tf)

	resolved := make(map[string]string, len(env))
	for k, v := range env {
		out, err := resolveString(v, scopes)
		if err != nil {
			return nil, zerr.With(err, "key", k)
		}
		resolved[k] = out
	}
	return resolved, nil
}

// Resolve resolves a single string, for example job.Data itself or a CLI-
// supplied override. It allocates its own tmp factory rooted directly at
// tmpRoot, so `${tmp.X}` always resolves to tmpRoot/X: repeated calls with
// the same key get the same directory, and unlike ResolveCommandEnv there is
// no per-call namespace.
func (r *Resolver) Resolve(s string) (string, error) {
	return resolveString(s, r.scopes(newTmpFactory(r.tmpRoot)))
}

func (r *Resolver) scopes(tf *tmpFactory) map[string]scope {
	return map[string]scope{
		"job":      jobScope{job: r.job},
		"previous": previousScope{ref: r.rs.previous},
		"commands": namedCommandsScope{byName: r.rs.byName},
		"env":      hostEnvScope{},
		"tmp":      tf,
	}
}

// resolveString walks s, copying literal characters, substituting `${...}`
// expressions, and collapsing `$$` to a literal `$`.
func resolveString(s string, scopes map[string]scope) (string, error) {
	var sb strings.Builder
	i, n := 0, len(s)
	for i < n {
		c := s[i]
		if c != '$' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= n {
			return "", zerr.With(zerr.With(domain.ErrPlaceholderSyntaxError, "reason", "trailing '$'"), "expression", s)
		}
		switch s[i+1] {
		case '$':
			sb.WriteByte('$')
			i += 2
		case '{':
			rest := s[i+2:]
			end := strings.IndexByte(rest, '}')
			if end == -1 {
				return "", zerr.With(zerr.With(domain.ErrPlaceholderSyntaxError, "reason", "unclosed '${'"), "expression", s)
			}
			expr := strings.TrimSpace(rest[:end])
			value, err := resolveExpr(expr, scopes)
			if err != nil {
				return "", err
			}
			sb.WriteString(value)
			i += 2 + end + 1
		default:
			return "", zerr.With(zerr.With(domain.ErrPlaceholderSyntaxError, "reason", "'$' must be followed by '$' or '{'"), "expression", s)
		}
	}
	return sb.String(), nil
}

func resolveExpr(expr string, scopes map[string]scope) (string, error) {
	if expr == "" {
		return "", zerr.With(domain.ErrPlaceholderSyntaxError, "reason", "empty placeholder expression")
	}
	segments := strings.Split(expr, ".")
	for _, seg := range segments {
		if !isValidSegment(seg) {
			return "", zerr.With(zerr.With(domain.ErrPlaceholderSyntaxError, "segment", seg), "expression", expr)
		}
	}
	sc, ok := scopes[segments[0]]
	if !ok {
		return "", zerr.With(zerr.With(domain.ErrPlaceholderReferenceError, "scope", segments[0]), "expression", expr)
	}
	return sc.resolve(segments[1:])
}

func isValidSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			continue
		case c >= '0' && c <= '9', c == '-':
			if i == 0 {
				return false
			}
			continue
		default:
			return false
		}
	}
	return true
}
