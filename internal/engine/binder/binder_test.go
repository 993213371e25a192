package binder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/engine/binder"
)

type fakeRegistry struct {
	tasks map[string]*domain.Task
}

func (f *fakeRegistry) Lookup(name string) (*domain.Task, bool) {
	t, ok := f.tasks[name]
	return t, ok
}

func (f *fakeRegistry) Names() []string {
	names := make([]string, 0, len(f.tasks))
	for n := range f.tasks {
		names = append(names, n)
	}
	return names
}

func TestBind_AttachesTask(t *testing.T) {
	reg := &fakeRegistry{tasks: map[string]*domain.Task{
		"fetch": {Env: map[string]string{"OUT": "output path"}},
	}}
	job := &domain.Job{Commands: []*domain.Command{
		{TaskName: "fetch", Env: map[string]string{"OUT": "/tmp/a"}},
	}}

	err := binder.Bind(job, reg)
	require.NoError(t, err)
	require.NotNil(t, job.Commands[0].Task)
}

func TestBind_UnknownTaskFails(t *testing.T) {
	reg := &fakeRegistry{tasks: map[string]*domain.Task{}}
	job := &domain.Job{Commands: []*domain.Command{
		{TaskName: "missing"},
	}}

	err := binder.Bind(job, reg)
	require.ErrorIs(t, err, domain.ErrUnknownTask)
}

func TestBind_EnvMismatchFails(t *testing.T) {
	reg := &fakeRegistry{tasks: map[string]*domain.Task{
		"fetch": {Env: map[string]string{"A": "", "B": ""}},
	}}
	job := &domain.Job{Commands: []*domain.Command{
		{TaskName: "fetch", Env: map[string]string{"A": "1", "C": "2"}},
	}}

	err := binder.Bind(job, reg)
	require.Error(t, err)
}

func TestBind_RunsEvenWhenSkipped(t *testing.T) {
	reg := &fakeRegistry{tasks: map[string]*domain.Task{}}
	job := &domain.Job{Commands: []*domain.Command{
		{TaskName: "missing", Skip: true},
	}}

	err := binder.Bind(job, reg)
	require.ErrorIs(t, err, domain.ErrUnknownTask)
}
