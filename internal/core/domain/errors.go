package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedManifest is returned when a manifest document does not parse as YAML.
	ErrMalformedManifest = zerr.New("manifest is malformed")

	// ErrSchemaViolation is returned when a manifest has a missing, unknown, or mistyped field.
	ErrSchemaViolation = zerr.New("manifest violates schema")

	// ErrPathError is returned when a required path does not exist or is not a directory.
	ErrPathError = zerr.New("path error")

	// ErrDuplicateTaskName is returned when two task manifests declare the same name.
	ErrDuplicateTaskName = zerr.New("duplicate task name")

	// ErrUnknownTask is returned when a command names a task not present in the registry.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrMissingEnv is returned when a command omits env keys its task declares.
	ErrMissingEnv = zerr.New("missing env keys")

	// ErrUnexpectedEnv is returned when a command supplies env keys its task does not declare.
	ErrUnexpectedEnv = zerr.New("unexpected env keys")

	// ErrDuplicateCommandName is returned when two commands in a job share a name.
	ErrDuplicateCommandName = zerr.New("duplicate command name")

	// ErrPlaceholderSyntaxError is returned when a `${...}` expression is malformed.
	ErrPlaceholderSyntaxError = zerr.New("placeholder syntax error")

	// ErrPlaceholderReferenceError is returned when a placeholder references an unknown
	// scope, key, or a command that has not yet executed.
	ErrPlaceholderReferenceError = zerr.New("placeholder reference error")

	// ErrCommandFailed is returned when a spawned command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEngineInterrupted is returned when the engine receives a termination signal.
	ErrEngineInterrupted = zerr.New("engine interrupted")
)
