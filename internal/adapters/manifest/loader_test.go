package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xetl-run/xetl/internal/adapters/manifest"
	"github.com/xetl-run/xetl/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadJob_Minimal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
commands:
  - task: noop
`)

	job, err := manifest.NewLoader().LoadJob(path, false)
	require.NoError(t, err)
	require.Equal(t, "demo", job.Name)
	require.Equal(t, dir, job.Data)
	require.Len(t, job.Commands, 1)
	require.Equal(t, "noop", job.Commands[0].TaskName)
}

func TestLoadJob_UnknownKeyFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
bogus: true
commands:
  - task: noop
`)

	_, err := manifest.NewLoader().LoadJob(path, false)
	require.ErrorIs(t, err, domain.ErrSchemaViolation)
}

func TestLoadJob_MalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, "name: [unterminated\n")

	_, err := manifest.NewLoader().LoadJob(path, false)
	require.ErrorIs(t, err, domain.ErrMalformedManifest)
}

func TestLoadJob_MissingNameFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, "commands:\n  - task: noop\n")

	_, err := manifest.NewLoader().LoadJob(path, false)
	require.Error(t, err)
}

func TestLoadJob_EmptyCommandsFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, "name: demo\ncommands: []\n")

	_, err := manifest.NewLoader().LoadJob(path, false)
	require.Error(t, err)
}

func TestLoadJob_EnvCoercion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
env:
  COUNT: 3
  ENABLED: true
  LABEL: hello
commands:
  - task: noop
`)

	job, err := manifest.NewLoader().LoadJob(path, false)
	require.NoError(t, err)
	require.Equal(t, "3", job.Env["COUNT"])
	require.Equal(t, "true", job.Env["ENABLED"])
	require.Equal(t, "hello", job.Env["LABEL"])
}

func TestLoadJob_DryRunDoesNotRequireDataDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
data: ./not-created-yet
commands:
  - task: noop
`)

	job, err := manifest.NewLoader().LoadJob(path, true)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "not-created-yet"), job.Data)

	_, err = manifest.NewLoader().LoadJob(path, false)
	require.ErrorIs(t, err, domain.ErrPathError)
}

func TestLoadJob_RelativePathResolvesToAbsoluteDataAndTaskPaths(t *testing.T) {
	dir := t.TempDir()
	tasksDir := filepath.Join(dir, "tasks")
	require.NoError(t, os.Mkdir(tasksDir, 0o755))
	writeFile(t, filepath.Join(dir, "job.yml"), `
name: demo
tasks: tasks
commands:
  - task: noop
`)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })

	job, err := manifest.NewLoader().LoadJob("job.yml", false)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(job.Data), "job.Data must be absolute, got %q", job.Data)
	require.Equal(t, dir, job.Data)
	require.Len(t, job.TaskPaths, 1)
	require.True(t, filepath.IsAbs(job.TaskPaths[0]), "job.TaskPaths[0] must be absolute, got %q", job.TaskPaths[0])
	require.Equal(t, tasksDir, job.TaskPaths[0])
}

func TestLoadJob_HostEnvWildcardInheritsEveryHostVar(t *testing.T) {
	t.Setenv("XETL_TEST_HOST_VAR", "from-host")

	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
host_env: ["*"]
commands:
  - task: noop
`)

	job, err := manifest.NewLoader().LoadJob(path, false)
	require.NoError(t, err)
	require.Equal(t, "from-host", job.Env["XETL_TEST_HOST_VAR"])
}

func TestLoadJob_HostEnvNamedListOnlyInheritsListedVars(t *testing.T) {
	t.Setenv("XETL_TEST_WANTED", "wanted-value")
	t.Setenv("XETL_TEST_UNWANTED", "unwanted-value")

	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
host_env: [XETL_TEST_WANTED]
commands:
  - task: noop
`)

	job, err := manifest.NewLoader().LoadJob(path, false)
	require.NoError(t, err)
	require.Equal(t, "wanted-value", job.Env["XETL_TEST_WANTED"])
	_, present := job.Env["XETL_TEST_UNWANTED"]
	require.False(t, present, "only names listed in host_env should be inherited")
}

func TestLoadJob_HostEnvNeverOverwritesExplicitJobEnv(t *testing.T) {
	t.Setenv("XETL_TEST_WANTED", "from-host")

	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
env:
  XETL_TEST_WANTED: from-manifest
host_env: ["*"]
commands:
  - task: noop
`)

	job, err := manifest.NewLoader().LoadJob(path, false)
	require.NoError(t, err)
	require.Equal(t, "from-manifest", job.Env["XETL_TEST_WANTED"], "an explicit job.env entry must win over host_env")
}

func TestLoadJob_SkipMustBeBoolean(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yml")
	writeFile(t, path, `
name: demo
commands:
  - task: noop
    skip: "yes"
`)

	_, err := manifest.NewLoader().LoadJob(path, false)
	require.Error(t, err)
}

func TestLoadTask_InlineForm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yml")
	writeFile(t, path, `
name: download
env:
  URL: the resource to fetch
run:
  interpreter: python3
  script: download.py
`)

	task, err := manifest.NewLoader().LoadTask(path)
	require.NoError(t, err)
	require.Equal(t, "download", task.Name.String())
	require.True(t, task.Run.IsInline())
	require.Equal(t, "python3", task.Run.Interpreter)
}

func TestLoadTask_BothFormsFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yml")
	writeFile(t, path, `
name: download
run:
  interpreter: python3
  script: download.py
  command: echo hi
`)

	_, err := manifest.NewLoader().LoadTask(path)
	require.Error(t, err)
}

func TestLoadTask_NeitherFormFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yml")
	writeFile(t, path, "name: download\nrun: {}\n")

	_, err := manifest.NewLoader().LoadTask(path)
	require.Error(t, err)
}
