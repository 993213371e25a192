package manifest

import (
	"path/filepath"

	"github.com/xetl-run/xetl/internal/core/domain"
	"go.trai.ch/zerr"
)

// JobDTO is the YAML-facing shape of a job manifest, kept separate from
// domain.Job so that YAML concerns never leak past this package.
type JobDTO struct {
	Name        strictString        `yaml:"name"`
	Description strictString        `yaml:"description"`
	Data        strictString        `yaml:"data"`
	Tasks       stringOrList        `yaml:"tasks"`
	Env         map[string]envValue `yaml:"env"`
	HostEnv     stringOrList        `yaml:"host_env"`
	Commands    []CommandDTO        `yaml:"commands"`
}

// CommandDTO is the YAML-facing shape of a single job command.
type CommandDTO struct {
	Name        strictString        `yaml:"name"`
	Description strictString        `yaml:"description"`
	Task        strictString        `yaml:"task"`
	Env         map[string]envValue `yaml:"env"`
	Skip        strictBool          `yaml:"skip"`
}

// LoadJob reads, validates, and coerces the job manifest at path. When
// dryRun is true, job.data is not required to exist yet — a preview of a job
// whose data directory is provisioned by an earlier step, or not yet at all,
// must still be able to load.
func (l *Loader) LoadJob(path string, dryRun bool) (*domain.Job, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := decodeStrict(path, data, &dto); err != nil {
		return nil, err
	}

	if dto.Name == "" {
		return nil, zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "name"), "reason", "required")
	}
	if len(dto.Commands) == 0 {
		return nil, zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "commands"), "reason", "must be non-empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrPathError, "path", path), "cause", err)
	}
	baseDir := filepath.Dir(absPath)

	jobData := baseDir
	if dataField := string(dto.Data); dataField != "" {
		jobData = resolvePath(dataField, baseDir)
	}
	if !dryRun {
		if err := requireDir(jobData); err != nil {
			return nil, zerr.With(zerr.With(err, "path", path), "field", "data")
		}
	}

	taskPaths := make([]string, 0, len(dto.Tasks))
	for _, t := range dto.Tasks {
		resolved := resolvePath(t, baseDir)
		if err := requireDir(resolved); err != nil {
			return nil, zerr.With(zerr.With(err, "path", path), "field", "tasks")
		}
		taskPaths = append(taskPaths, resolved)
	}

	job := &domain.Job{
		Name:        string(dto.Name),
		Description: string(dto.Description),
		Data:        jobData,
		TaskPaths:   taskPaths,
		Env:         envValuesToStrings(dto.Env),
		HostEnv:     []string(dto.HostEnv),
		Commands:    make([]*domain.Command, 0, len(dto.Commands)),
	}

	seenNames := map[string]struct{}{}
	for i, cdto := range dto.Commands {
		if cdto.Task == "" {
			return nil, zerr.With(zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "commands[].task"), "index", i), "reason", "required")
		}
		name := string(cdto.Name)
		if name != "" {
			if _, dup := seenNames[name]; dup {
				return nil, zerr.With(zerr.With(domain.ErrDuplicateCommandName, "path", path), "name", name)
			}
			seenNames[name] = struct{}{}
		}

		job.Commands = append(job.Commands, &domain.Command{
			Name:        name,
			Description: string(cdto.Description),
			TaskName:    string(cdto.Task),
			Env:         envValuesToStrings(cdto.Env),
			Skip:        bool(cdto.Skip),
		})
	}

	applyHostEnv(job)

	return job, nil
}

// applyHostEnv merges the job's declared host_env names (or "*" for every
// inherited variable) into job.Env, mirroring the originating project's
// inherit_env behaviour. It runs once at load time, before any placeholder
// resolution, and never overwrites a value the manifest set explicitly.
func applyHostEnv(job *domain.Job) {
	if len(job.HostEnv) == 0 {
		return
	}
	if job.Env == nil {
		job.Env = map[string]string{}
	}

	wildcard := false
	names := make([]string, 0, len(job.HostEnv))
	for _, n := range job.HostEnv {
		if n == "*" {
			wildcard = true
			continue
		}
		names = append(names, n)
	}

	setFromHost := func(name string) {
		if _, exists := job.Env[name]; exists {
			return
		}
		if v, ok := lookupHostEnv(name); ok {
			job.Env[name] = v
		}
	}

	if wildcard {
		for _, e := range hostEnviron() {
			name, value, ok := splitEnv(e)
			if ok {
				if _, exists := job.Env[name]; !exists {
					job.Env[name] = value
				}
			}
		}
		return
	}

	for _, name := range names {
		setFromHost(name)
	}
}
