package trace

import (
	"errors"
	"fmt"
)

// ErrTraceSource reports that the trace stream itself is missing or
// unreadable. It is fatal: no partial counters are meaningful after it.
var ErrTraceSource = errors.New("trace source unavailable")

// A MalformedEntryError reports one trace line that failed to parse. The
// reader stays usable after returning one, so callers can skip the line and
// keep going.
type MalformedEntryError struct {
	LineNumber int
	Line       string
	Reason     string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("trace line %d %q: %s", e.LineNumber, e.Line, e.Reason)
}
