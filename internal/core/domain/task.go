package domain

// RunSpec describes how a task's process is launched. Exactly one of the two
// forms is populated: the inline interpreter+script form, or the shell
// command form.
type RunSpec struct {
	// Interpreter is a shell command line; Script is appended as its final
	// argument after POSIX word-splitting the interpreter string.
	Interpreter string
	Script      string

	// Command is a shell line executed as `/bin/sh -c Command`.
	Command string
}

// IsInline reports whether the run spec uses the interpreter+script form.
func (r RunSpec) IsInline() bool {
	return r.Interpreter != ""
}

// TaskTestCase is a fixture declared on a task manifest: a sample env to run
// the task with, and a verification command that must exit zero for the
// task to be considered correct. Exercised by the validate subcommand,
// never by a job run.
type TaskTestCase struct {
	Env    map[string]string
	Verify []string
}

// Task is a reusable executable template discovered by the registry.
type Task struct {
	Name InternedString

	// Path is the directory containing the task's manifest.yml; relative
	// script paths in Run are resolved against it.
	Path string

	Description string

	// Env declares the set of env keys a command must supply, keyed by name,
	// with a human-readable description of each as the value. Descriptions
	// are documentation only, never defaults.
	Env map[string]string

	Run RunSpec

	TestCases []TaskTestCase
}

// EnvKeys returns the task's declared env keys.
func (t *Task) EnvKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(t.Env))
	for k := range t.Env {
		keys[k] = struct{}{}
	}
	return keys
}

// Digest returns a canonical content hash of the task, excluding Path, so
// that two manifests with identical content but different locations on disk
// hash equal.
func (t *Task) Digest() uint64 {
	return taskDigest(t)
}
