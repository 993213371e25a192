package validator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
	"github.com/xetl-run/xetl/internal/engine/validator"
)

type fakeExecutor struct {
	exitCodes []int
	calls     []ports.ExecSpec
}

func (f *fakeExecutor) Run(_ context.Context, spec ports.ExecSpec, _ ports.Sink) (int, error) {
	f.calls = append(f.calls, spec)
	return f.exitCodes[len(f.calls)-1], nil
}

type fakeSink struct{}

func (fakeSink) JobStart(string)                                     {}
func (fakeSink) JobEnd(domain.CommandStatus)                         {}
func (fakeSink) TasksDiscovered([]string)                            {}
func (fakeSink) CommandStart(int, int, domain.CommandRecord)         {}
func (fakeSink) CommandEnd(int)                                      {}
func (fakeSink) OutputLine(domain.OutputStream, time.Time, string)   {}

func TestRun_AllCasesExecutedRegardlessOfFailure(t *testing.T) {
	task := &domain.Task{
		Path: "/tasks/demo",
		TestCases: []domain.TaskTestCase{
			{Env: map[string]string{"X": "1"}, Verify: []string{"/bin/sh", "-c", "true"}},
			{Env: map[string]string{"X": "2"}, Verify: []string{"/bin/sh", "-c", "false"}},
		},
	}

	exec := &fakeExecutor{exitCodes: []int{0, 1}}
	results := validator.Run(context.Background(), task, exec, fakeSink{})

	require.Len(t, results, 2)
	require.True(t, results[0].Passed())
	require.False(t, results[1].Passed())
	require.Len(t, exec.calls, 2, "second case must still run after the first")
	require.Contains(t, exec.calls[1].Env, "X=2")
}

func TestRun_EmptyVerifyIsMalformed(t *testing.T) {
	task := &domain.Task{
		TestCases: []domain.TaskTestCase{{Env: nil, Verify: nil}},
	}

	results := validator.Run(context.Background(), task, &fakeExecutor{exitCodes: []int{0}}, fakeSink{})
	require.Len(t, results, 1)
	require.ErrorIs(t, results[0].Err, domain.ErrMalformedManifest)
}
