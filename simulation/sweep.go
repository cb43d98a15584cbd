package simulation

import (
	"sync"

	"github.com/sarchlab/csim/monitoring"
	"github.com/sarchlab/csim/replay"
)

// A Config is one cache geometry to sweep over.
type Config struct {
	SetIndexBits    int
	Associativity   int
	BlockOffsetBits int
}

// A SweepResult pairs one configuration with the counters its run produced.
type SweepResult struct {
	Config Config
	Result replay.Result
	Err    error
}

// RunSweep replays the same trace once per configuration, each run with its
// own private cache, all runs in parallel. The monitor may be nil. Results
// come back in configuration order.
func RunSweep(
	configs []Config,
	tracePath string,
	monitor *monitoring.Monitor,
) []SweepResult {
	var bar *monitoring.ProgressBar
	if monitor != nil {
		bar = monitor.CreateProgressBar("configurations", uint64(len(configs)))
	}

	results := make([]SweepResult, len(configs))

	var wg sync.WaitGroup
	for i, config := range configs {
		wg.Add(1)

		go func(i int, config Config) {
			defer wg.Done()

			if bar != nil {
				bar.IncrementInProgress(1)
				defer bar.MoveInProgressToFinished(1)
			}

			results[i] = runOne(config, tracePath, monitor)
		}(i, config)
	}
	wg.Wait()

	return results
}

func runOne(
	config Config,
	tracePath string,
	monitor *monitoring.Monitor,
) SweepResult {
	builder := MakeBuilder().
		WithSetIndexBits(config.SetIndexBits).
		WithAssociativity(config.Associativity).
		WithBlockOffsetBits(config.BlockOffsetBits).
		WithTracePath(tracePath)

	if monitor != nil {
		builder = builder.WithMonitor(monitor)
	}

	sim, err := builder.Build()
	if err != nil {
		return SweepResult{Config: config, Err: err}
	}

	result, err := sim.Run()

	return SweepResult{Config: config, Result: result, Err: err}
}
