package ports

import (
	"time"

	"github.com/xetl-run/xetl/internal/core/domain"
)

// Sink is the structured log consumer contract. The engine depends only on
// this interface; rendering (banners, indentation, colour) is an external
// concern.
type Sink interface {
	JobStart(name string)
	JobEnd(status domain.CommandStatus)
	TasksDiscovered(names []string)
	CommandStart(index, total int, record domain.CommandRecord)
	OutputLine(stream domain.OutputStream, ts time.Time, text string)
	CommandEnd(exitCode int)
}
