package replay

import (
	"log"
)

// An AccessLogger is a hook that prints one line per counted access, in the
// same shape as the trace itself plus the outcome. It is the verbose mode of
// the simulator.
type AccessLogger struct {
	*log.Logger
}

// NewAccessLogger creates an AccessLogger that writes through the given
// logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	return &AccessLogger{Logger: logger}
}

// Func prints the access.
func (l *AccessLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosAccess {
		return
	}

	access := ctx.Item.(Access)

	l.Printf("%s %x,%d set=%d %s\n",
		access.Kind,
		access.Address,
		access.Size,
		access.SetIndex,
		access.Outcome,
	)
}
