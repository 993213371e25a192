package ports

import "github.com/xetl-run/xetl/internal/core/domain"

// Registry is the read-only, post-discovery mapping of task name to loaded
// task, built once per job run.
type Registry interface {
	Lookup(name string) (*domain.Task, bool)
	Names() []string
}
