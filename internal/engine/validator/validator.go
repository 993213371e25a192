// Package validator runs a task's declared test cases: each pairs a sample
// env with a verify command that must exit zero for the task to be
// considered correct. It never runs a task's own Run spec — the verify
// command is expected to exercise the task itself.
package validator

import (
	"context"
	"os"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
)

// CaseResult is the outcome of running one TaskTestCase.
type CaseResult struct {
	Index    int
	ExitCode int
	Err      error
}

// Passed reports whether the test case's verify command exited zero.
func (r CaseResult) Passed() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Run executes every test case declared on task in order, via exec. It does
// not halt on the first failure — all cases run so a caller can report the
// full set of results.
func Run(ctx context.Context, task *domain.Task, exec ports.Executor, sink ports.Sink) []CaseResult {
	results := make([]CaseResult, len(task.TestCases))

	for i, tc := range task.TestCases {
		if len(tc.Verify) == 0 {
			results[i] = CaseResult{Index: i, Err: domain.ErrMalformedManifest}
			continue
		}

		spec := ports.ExecSpec{
			Argv: tc.Verify,
			Env:  mergeEnv(os.Environ(), tc.Env),
			Dir:  task.Path,
		}

		exitCode, err := exec.Run(ctx, spec, sink)
		results[i] = CaseResult{Index: i, ExitCode: exitCode, Err: err}
	}

	return results
}

func mergeEnv(base []string, overrides map[string]string) []string {
	merged := make(map[string]string, len(base)+len(overrides))
	for _, kv := range base {
		if k, v, ok := splitKV(kv); ok {
			merged[k] = v
		}
	}
	for k, v := range overrides {
		merged[k] = v
	}

	result := make([]string, 0, len(merged))
	for k, v := range merged {
		result = append(result, k+"="+v)
	}
	return result
}

func splitKV(entry string) (key, value string, ok bool) {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:], true
		}
	}
	return "", "", false
}
