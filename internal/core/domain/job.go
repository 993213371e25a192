package domain

// Job is an ordered, named pipeline of commands, constructed by the loader.
// After construction its own fields are not changed; the binder attaches a
// Task reference to each of its commands and the runner records each
// executed or skipped command's Result on that command, so the commands a
// Job holds do change during a run.
type Job struct {
	Name        string
	Description string

	// Data is the working directory for every spawned command, and the
	// value of ${job.data}. Defaults to the manifest's base directory.
	Data string

	// TaskPaths are the absolute directories walked by the task registry.
	TaskPaths []string

	// Env is the job-level env map, reachable only via ${job.env.<KEY>}. It
	// is never auto-merged into a command's env (see Open Question (a)).
	Env map[string]string

	// HostEnv lists host environment variable names (or the literal "*"
	// for all of them) to merge into Env before resolution, mirroring the
	// job's inherit_env behaviour in the originating implementation.
	HostEnv []string

	Commands []*Command
}

// CommandByName returns the command with the given name, if any, and whether
// one was found. Names are unique within a job by construction.
func (j *Job) CommandByName(name string) (*Command, bool) {
	for _, c := range j.Commands {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
