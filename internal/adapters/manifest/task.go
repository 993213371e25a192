package manifest

import (
	"path/filepath"

	"github.com/xetl-run/xetl/internal/core/domain"
	"go.trai.ch/zerr"
)

// RunDTO is the YAML-facing shape of a task's run block. Exactly one of the
// two forms must be present: Interpreter+Script, or Command.
type RunDTO struct {
	Interpreter strictString `yaml:"interpreter"`
	Script      strictString `yaml:"script"`
	Command     strictString `yaml:"command"`
}

// TestCaseDTO is the YAML-facing shape of a task's test_cases entry.
type TestCaseDTO struct {
	Env    map[string]envValue `yaml:"env"`
	Verify stringOrList        `yaml:"verify"`
}

// TaskDTO is the YAML-facing shape of a task manifest.
type TaskDTO struct {
	Name        strictString            `yaml:"name"`
	Description strictString            `yaml:"description"`
	Env         map[string]strictString `yaml:"env"`
	Run         RunDTO                  `yaml:"run"`
	TestCases   []TestCaseDTO           `yaml:"test_cases"`
}

// LoadTask reads, validates, and coerces the task manifest at path.
func (l *Loader) LoadTask(path string) (*domain.Task, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := decodeStrict(path, data, &dto); err != nil {
		return nil, err
	}

	if dto.Name == "" {
		return nil, zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "name"), "reason", "required")
	}

	run, err := dto.Run.toRunSpec(path)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Name:        domain.NewInternedString(string(dto.Name)),
		Path:        filepath.Dir(path),
		Description: string(dto.Description),
		Env:         descsToStrings(dto.Env),
		Run:         run,
	}

	for i, tc := range dto.TestCases {
		if len(tc.Verify) == 0 {
			return nil, zerr.With(zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "test_cases[].verify"), "index", i), "reason", "required")
		}
		task.TestCases = append(task.TestCases, domain.TaskTestCase{
			Env:    envValuesToStrings(tc.Env),
			Verify: []string(tc.Verify),
		})
	}

	return task, nil
}

func (r RunDTO) toRunSpec(path string) (domain.RunSpec, error) {
	hasInline := r.Interpreter != "" || r.Script != ""
	hasCommand := r.Command != ""

	switch {
	case hasInline && hasCommand:
		return domain.RunSpec{}, zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "run"),
			"reason", "exactly one of interpreter+script or command must be present")
	case hasInline:
		if r.Interpreter == "" || r.Script == "" {
			return domain.RunSpec{}, zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "run"),
				"reason", "interpreter and script must both be present")
		}
		return domain.RunSpec{Interpreter: string(r.Interpreter), Script: string(r.Script)}, nil
	case hasCommand:
		return domain.RunSpec{Command: string(r.Command)}, nil
	default:
		return domain.RunSpec{}, zerr.With(zerr.With(zerr.With(domain.ErrSchemaViolation, "path", path), "field", "run"),
			"reason", "one of interpreter+script or command is required")
	}
}

func descsToStrings(m map[string]strictString) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = string(v)
	}
	return out
}
