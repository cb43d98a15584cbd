// Package simulation ties the cache model, the trace reader, and the replayer
// together into runnable simulations.
package simulation

import (
	"sync"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/monitoring"
	"github.com/sarchlab/csim/replay"
	"github.com/sarchlab/csim/trace"
)

// A Simulation replays one trace against one private cache. Simulations do
// not share state and can run concurrently.
type Simulation struct {
	id        string
	name      string
	cache     *cache.Cache
	replayer  *replay.Replayer
	recorder  datarecording.DataRecorder
	tracePath string

	liveLock   sync.Mutex
	liveResult replay.Result
	done       bool
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Name returns a human-readable description of the configuration.
func (s *Simulation) Name() string {
	return s.name
}

// Cache returns the simulated cache.
func (s *Simulation) Cache() *cache.Cache {
	return s.cache
}

// Run replays the whole trace and returns the final counters. Opening the
// trace or reading from it may fail; in that case no partial counters are
// returned.
func (s *Simulation) Run() (replay.Result, error) {
	reader, err := trace.Open(s.tracePath)
	if err != nil {
		return replay.Result{}, err
	}
	defer reader.Close()

	result, err := s.replayer.Replay(reader)
	if err != nil {
		return replay.Result{}, err
	}

	if s.recorder != nil {
		s.recorder.Flush()
	}

	s.liveLock.Lock()
	s.liveResult = result
	s.done = true
	s.liveLock.Unlock()

	return result, nil
}

// Status reports the live counters, so that a monitor can watch the
// simulation while it runs.
func (s *Simulation) Status() monitoring.RunStatus {
	s.liveLock.Lock()
	defer s.liveLock.Unlock()

	return monitoring.RunStatus{
		ID:        s.id,
		Name:      s.name,
		Hits:      s.liveResult.Hits,
		Misses:    s.liveResult.Misses,
		Evictions: s.liveResult.Evictions,
		Done:      s.done,
	}
}

// Func keeps the live counters up to date while the replay is in flight. It
// makes the simulation a replay hook.
func (s *Simulation) Func(ctx replay.HookCtx) {
	if ctx.Pos != replay.HookPosAccess {
		return
	}

	access := ctx.Item.(replay.Access)

	s.liveLock.Lock()
	defer s.liveLock.Unlock()

	switch access.Outcome {
	case cache.OutcomeHit:
		s.liveResult.Hits++
	case cache.OutcomeMiss:
		s.liveResult.Misses++
	case cache.OutcomeMissEvict:
		s.liveResult.Misses++
		s.liveResult.Evictions++
	}

	if access.Kind == trace.KindModify {
		s.liveResult.Hits++
	}
}
