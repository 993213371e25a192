package ports

import "github.com/xetl-run/xetl/internal/core/domain"

// JobLoader parses and validates a job manifest into a domain.Job.
type JobLoader interface {
	LoadJob(path string, dryRun bool) (*domain.Job, error)
}

// TaskLoader parses and validates a single task manifest into a domain.Task.
type TaskLoader interface {
	LoadTask(path string) (*domain.Task, error)
}
