package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/csim/monitoring"
	"github.com/sarchlab/csim/simulation"
)

var (
	setIndexBits    int
	associativity   int
	blockOffsetBits int
	tracePath       string

	verbose       bool
	recordPath    string
	monitorPort   int
	openDashboard bool
)

// rootCmd is the csim command itself: one replay of one trace against one
// cache configuration.
var rootCmd = &cobra.Command{
	Use:   "csim -s <num> -E <num> -b <num> -t <file>",
	Short: "csim replays a memory trace against a set-associative LRU cache",
	Long: `csim replays a valgrind-style memory trace against a single-level ` +
		`set-associative cache with an LRU replacement policy, and reports ` +
		`the total number of hits, misses, and evictions.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSimulation,
}

func init() {
	rootCmd.Flags().IntVarP(&setIndexBits, "set-bits", "s", 0,
		"number of set index bits")
	rootCmd.Flags().IntVarP(&associativity, "associativity", "E", 0,
		"number of lines per set")
	rootCmd.Flags().IntVarP(&blockOffsetBits, "block-bits", "b", 0,
		"number of block offset bits")
	rootCmd.Flags().StringVarP(&tracePath, "trace", "t", "",
		"trace file to replay")

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"print every access and its outcome")
	rootCmd.Flags().StringVarP(&recordPath, "record", "r", "",
		"record every access into <path>.sqlite3")
	rootCmd.Flags().IntVarP(&monitorPort, "monitor", "m", 0,
		"serve live run status on the given port")
	rootCmd.Flags().BoolVar(&openDashboard, "open-dashboard", false,
		"open the monitor in a browser")

	for _, flag := range []string{
		"set-bits", "associativity", "block-bits", "trace",
	} {
		if err := rootCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	builder := simulation.MakeBuilder().
		WithSetIndexBits(setIndexBits).
		WithAssociativity(associativity).
		WithBlockOffsetBits(blockOffsetBits).
		WithTracePath(tracePath)

	if verbose {
		builder = builder.WithVerboseLog(cmd.OutOrStdout())
	}

	if cmd.Flags().Changed("record") {
		builder = builder.WithDataRecording(recordPath)
	}

	if cmd.Flags().Changed("monitor") {
		monitor := monitoring.NewMonitor().WithPortNumber(monitorPort)
		monitor.StartServer()
		if openDashboard {
			monitor.OpenDashboard()
		}

		builder = builder.WithMonitor(monitor)
	}

	sim, err := builder.Build()
	if err != nil {
		return err
	}

	result, err := sim.Run()
	if err != nil {
		return err
	}

	if result.MalformedLines > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"Skipped %d malformed trace lines\n", result.MalformedLines)
	}

	printSummary(result.Hits, result.Misses, result.Evictions)

	return nil
}

// printSummary prints the final counters in the classic cachelab format.
func printSummary(hits, misses, evictions uint64) {
	fmt.Fprintf(os.Stdout,
		"hits:%d misses:%d evictions:%d\n", hits, misses, evictions)
}
