// Package registry discovers task manifests under a job's configured search
// paths and indexes them by name.
package registry

import (
	"sort"

	"github.com/xetl-run/xetl/internal/adapters/fs"
	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry is the read-only, post-discovery mapping of task name to loaded
// task. It satisfies ports.Registry. Tasks are indexed by their already-
// interned domain.Task.Name rather than by a freshly derived string key, so
// a job whose commands repeatedly reference the same task (the common case)
// never allocates more than one copy of that task's name.
type Registry struct {
	byName map[domain.InternedString]*domain.Task
	paths  map[domain.InternedString]string // task name -> manifest path, for duplicate diagnostics
}

var _ ports.Registry = (*Registry)(nil)

// Discover walks each root in order, loading every manifest.yml it finds via
// loader, and returns the populated registry. Duplicate task names fail with
// domain.ErrDuplicateTaskName naming both manifest paths.
func Discover(roots []string, loader ports.TaskLoader) (*Registry, error) {
	reg := &Registry{
		byName: map[domain.InternedString]*domain.Task{},
		paths:  map[domain.InternedString]string{},
	}
	walker := fs.NewWalker()

	for _, root := range roots {
		for path := range walker.WalkManifests(root) {
			task, err := loader.LoadTask(path)
			if err != nil {
				return nil, zerr.With(err, "path", path)
			}

			if existing, ok := reg.paths[task.Name]; ok {
				return nil, zerr.With(zerr.With(zerr.With(domain.ErrDuplicateTaskName,
					"name", task.Name.String()),
					"first_path", existing),
					"duplicate_path", path)

			}

			reg.byName[task.Name] = task
			reg.paths[task.Name] = path
		}
	}

	return reg, nil
}

// Lookup returns the task registered under name, if any.
func (r *Registry) Lookup(name string) (*domain.Task, bool) {
	t, ok := r.byName[domain.NewInternedString(name)]
	return t, ok
}

// Names returns every registered task name, sorted, for diagnostic messages.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name.String())
	}
	sort.Strings(names)
	return names
}
