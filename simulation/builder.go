package simulation

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/rs/xid"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/monitoring"
	"github.com/sarchlab/csim/replay"
)

// ErrConfig reports an invalid or incomplete user configuration. It is always
// returned before any trace processing starts.
var ErrConfig = errors.New("invalid configuration")

const paramUnset = -1

// Builder can be used to build a simulation. The set-index bits, the
// associativity, the block-offset bits, and the trace path are required;
// everything else is optional.
type Builder struct {
	setIndexBits    int
	associativity   int
	blockOffsetBits int
	tracePath       string

	recording     bool
	recordingPath string
	verboseWriter io.Writer
	monitor       *monitoring.Monitor
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		setIndexBits:    paramUnset,
		associativity:   paramUnset,
		blockOffsetBits: paramUnset,
	}
}

// WithSetIndexBits sets the number of set-index bits (s).
func (b Builder) WithSetIndexBits(s int) Builder {
	b.setIndexBits = s
	return b
}

// WithAssociativity sets the number of lines per set (E).
func (b Builder) WithAssociativity(e int) Builder {
	b.associativity = e
	return b
}

// WithBlockOffsetBits sets the number of block-offset bits (b).
func (b Builder) WithBlockOffsetBits(bits int) Builder {
	b.blockOffsetBits = bits
	return b
}

// WithTracePath sets the trace file to replay.
func (b Builder) WithTracePath(path string) Builder {
	b.tracePath = path
	return b
}

// WithDataRecording makes the simulation record every access into a SQLite
// database at `<path>.sqlite3`. An empty path picks a unique name.
func (b Builder) WithDataRecording(path string) Builder {
	b.recording = true
	b.recordingPath = path
	return b
}

// WithVerboseLog makes the simulation print one line per access to w.
func (b Builder) WithVerboseLog(w io.Writer) Builder {
	b.verboseWriter = w
	return b
}

// WithMonitor registers the simulation with a monitor.
func (b Builder) WithMonitor(m *monitoring.Monitor) Builder {
	b.monitor = m
	return b
}

func (b Builder) parametersMustBeValid() error {
	switch {
	case b.setIndexBits == paramUnset:
		return fmt.Errorf("%w: set-index bits are required", ErrConfig)
	case b.associativity == paramUnset:
		return fmt.Errorf("%w: associativity is required", ErrConfig)
	case b.blockOffsetBits == paramUnset:
		return fmt.Errorf("%w: block-offset bits are required", ErrConfig)
	case b.tracePath == "":
		return fmt.Errorf("%w: a trace file is required", ErrConfig)
	case b.setIndexBits < 0:
		return fmt.Errorf("%w: set-index bits must be non-negative", ErrConfig)
	case b.associativity < 1:
		return fmt.Errorf("%w: associativity must be positive", ErrConfig)
	case b.blockOffsetBits < 0:
		return fmt.Errorf(
			"%w: block-offset bits must be non-negative", ErrConfig)
	case b.setIndexBits+b.blockOffsetBits >= 64:
		return fmt.Errorf(
			"%w: set-index and block-offset bits must fit a 64-bit address",
			ErrConfig)
	}

	return nil
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	if err := b.parametersMustBeValid(); err != nil {
		return nil, err
	}

	c := cache.MakeBuilder().
		WithSetIndexBits(uint(b.setIndexBits)).
		WithAssociativity(b.associativity).
		WithBlockOffsetBits(uint(b.blockOffsetBits)).
		Build()

	s := &Simulation{
		id: xid.New().String(),
		name: fmt.Sprintf("s=%d E=%d b=%d",
			b.setIndexBits, b.associativity, b.blockOffsetBits),
		cache:     c,
		replayer:  replay.NewReplayer(c),
		tracePath: b.tracePath,
	}

	if b.verboseWriter != nil {
		s.replayer.AcceptHook(
			replay.NewAccessLogger(log.New(b.verboseWriter, "", 0)))
	}

	if b.recording {
		s.recorder = datarecording.New(b.recordingPath)
		s.replayer.AcceptHook(replay.NewRecorderHook(s.recorder))
	}

	if b.monitor != nil {
		s.replayer.AcceptHook(s)
		b.monitor.RegisterRun(s)
	}

	return s, nil
}
