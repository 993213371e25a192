package ports

import "context"

// ExecSpec is the fully resolved description of a child process to spawn.
// Nothing in it still contains a placeholder.
type ExecSpec struct {
	Argv []string
	Env  []string
	Dir  string
}

// Executor spawns a single child process, streams its stdout/stderr to the
// given sink line by line, and reports its exit code. At most one Executor
// invocation is ever in flight at a time; the engine never calls Run
// concurrently with itself. Cancelling ctx forwards SIGTERM to the child and
// gives it a grace window before it is killed.
type Executor interface {
	Run(ctx context.Context, spec ExecSpec, sink Sink) (exitCode int, err error)
}
