// Package shell provides the child-process executor adapter.
package shell

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"syscall"
	"time"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// GracePeriod is how long a child is given to exit after it is sent SIGTERM
// on context cancellation before it is killed outright.
const GracePeriod = 5 * time.Second

// Executor implements ports.Executor using os/exec, draining stdout and
// stderr concurrently so neither pipe can block the other.
type Executor struct{}

// NewExecutor creates a shell executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Run spawns spec.Argv[0] with the rest as arguments, streaming stdout and
// stderr into sink line by line, and returns the child's exit code.
func (e *Executor) Run(ctx context.Context, spec ports.ExecSpec, sink ports.Sink) (int, error) {
	if len(spec.Argv) == 0 {
		return 0, zerr.New("empty argv")
	}

	cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...) //nolint:gosec // caller-resolved command
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = GracePeriod

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, zerr.Wrap(err, "failed to open stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0, zerr.Wrap(err, "failed to open stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return 0, zerr.Wrap(err, "failed to start command")
	}

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error { return drain(stdout, domain.StreamStdout, sink) })
	g.Go(func() error { return drain(stderr, domain.StreamStderr, sink) })

	drainErr := g.Wait()
	waitErr := cmd.Wait()

	if drainErr != nil {
		return 0, zerr.Wrap(drainErr, "failed to read command output")
	}

	if waitErr == nil {
		return 0, nil
	}

	if ctx.Err() != nil {
		return -1, zerr.With(domain.ErrEngineInterrupted, "signal", ctx.Err().Error())
	}

	var exitErr *exec.ExitError
	if ok := asExitError(waitErr, &exitErr); ok {
		return exitErr.ExitCode(), nil
	}

	return -1, zerr.Wrap(waitErr, "command did not exit cleanly")
}

func asExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if ok {
		*target = ee
	}
	return ok
}

func drain(r io.Reader, stream domain.OutputStream, sink ports.Sink) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sink.OutputLine(stream, time.Now(), scanner.Text())
	}
	return scanner.Err()
}
