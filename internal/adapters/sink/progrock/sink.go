// Package progrock wires github.com/vito/progrock to implement ports.Sink:
// one vertex per job, one child vertex per command, with every OutputLine
// written straight to the command vertex's stdout or stderr writer. This
// package does no rendering of its own — that is progrock's own writer.
package progrock

import (
	"fmt"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/xetl-run/xetl/internal/core/domain"
	"github.com/xetl-run/xetl/internal/core/ports"
)

// Sink implements ports.Sink on top of a progrock.Recorder.
type Sink struct {
	rec      *progrock.Recorder
	w        progrock.Writer
	minLevel domain.LogLevel

	job *progrock.VertexRecorder
	cmd *progrock.VertexRecorder
}

var _ ports.Sink = (*Sink)(nil)

// New creates a sink writing to progrock's default tape. When verbose is
// true, the sink's level floor drops to domain.LogLevelDebug and each
// command's resolved env is written to its vertex; otherwise the floor stays
// at domain.LogLevelInfo and the resolved env is not written. Child output
// lines are written at either setting.
func New(verbose bool) *Sink {
	w := progrock.NewTape()
	return &Sink{rec: progrock.NewRecorder(w), w: w, minLevel: levelFloor(verbose)}
}

// NewWithWriter creates a sink writing to an arbitrary progrock.Writer,
// useful for tests and for directing output somewhere other than stdout.
func NewWithWriter(w progrock.Writer, verbose bool) *Sink {
	return &Sink{rec: progrock.NewRecorder(w), w: w, minLevel: levelFloor(verbose)}
}

func levelFloor(verbose bool) domain.LogLevel {
	if verbose {
		return domain.LogLevelDebug
	}
	return domain.LogLevelInfo
}

// logf writes a line to the command vertex's stdout if level clears the
// sink's configured floor; it is a no-op below that floor or with no
// command vertex open.
func (s *Sink) logf(level domain.LogLevel, format string, args ...any) {
	if s.cmd == nil || level < s.minLevel {
		return
	}
	fmt.Fprintf(s.cmd.Stdout(), format, args...) //nolint:errcheck
}

func (s *Sink) JobStart(name string) {
	s.job = s.rec.Vertex(digest.FromString("job:"+name), name)
}

func (s *Sink) JobEnd(status domain.CommandStatus) {
	if s.job == nil {
		return
	}
	var err error
	if status == domain.CommandStatusFailed {
		err = domain.ErrCommandFailed
	}
	s.job.Done(err)
}

func (s *Sink) TasksDiscovered(names []string) {
	if s.job == nil {
		return
	}
	for _, n := range names {
		fmt.Fprintf(s.job.Stdout(), "discovered task %s\n", n) //nolint:errcheck
	}
}

func (s *Sink) CommandStart(index, total int, record domain.CommandRecord) {
	name := record.Command.Name
	if name == "" {
		name = record.Command.TaskName
	}
	label := fmt.Sprintf("[%d/%d] %s", index+1, total, name)
	s.cmd = s.rec.Vertex(digest.FromString(fmt.Sprintf("command:%d:%s", index, name)), label)
	for k, v := range record.ResolvedEnv {
		s.logf(domain.LogLevelDebug, "env %s=%s\n", k, v)
	}
}

func (s *Sink) OutputLine(stream domain.OutputStream, _ time.Time, text string) {
	if s.cmd == nil {
		return
	}
	w := s.cmd.Stdout()
	if stream == domain.StreamStderr {
		w = s.cmd.Stderr()
	}
	fmt.Fprintln(w, text) //nolint:errcheck
}

func (s *Sink) CommandEnd(exitCode int) {
	if s.cmd == nil {
		return
	}
	var err error
	if exitCode != 0 {
		err = domain.ErrCommandFailed
	}
	s.cmd.Done(err)
	s.cmd = nil
}

// Close flushes and closes the underlying writer, if it supports it.
func (s *Sink) Close() error {
	if c, ok := s.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
