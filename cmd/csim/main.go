// The csim command is a trace-driven simulator of a set-associative LRU
// cache.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/csim/simulation"
	"github.com/sarchlab/csim/trace"
)

// Exit codes. Missing and unknown parameters are distinguishable, as are
// trace-source failures.
const (
	exitConfigMissing = 1
	exitConfigUnknown = 2
	exitTraceSource   = 3
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		switch {
		case isUnknownFlagErr(err):
			atexit.Exit(exitConfigUnknown)
		case errors.Is(err, trace.ErrTraceSource):
			atexit.Exit(exitTraceSource)
		case errors.Is(err, simulation.ErrConfig):
			atexit.Exit(exitConfigMissing)
		default:
			atexit.Exit(exitConfigMissing)
		}
	}

	atexit.Exit(0)
}

// isUnknownFlagErr tells if the error comes from pflag rejecting a flag that
// does not exist. pflag does not type these errors, so the message is all
// there is to go on.
func isUnknownFlagErr(err error) bool {
	return strings.Contains(err.Error(), "unknown flag") ||
		strings.Contains(err.Error(), "unknown shorthand flag")
}
