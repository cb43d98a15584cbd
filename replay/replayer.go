// Package replay drives a cache model with a memory-reference trace and
// accumulates the global hit, miss, and eviction counts.
package replay

import (
	"errors"
	"io"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/trace"
)

// A Result carries the counters of one whole replay. MalformedLines counts
// trace lines that were skipped because they did not parse.
type Result struct {
	Hits           uint64
	Misses         uint64
	Evictions      uint64
	MalformedLines uint64
}

// An Access describes one counted cache access, for diagnostic hooks.
type Access struct {
	Seq      uint64
	Kind     trace.Kind
	Address  uint64
	Size     int
	SetIndex uint64
	Tag      uint64
	Outcome  cache.Outcome
}

// A Replayer folds a trace over a cache. Hooks registered on the replayer see
// every counted access through HookPosAccess.
type Replayer struct {
	HookableBase

	cache *cache.Cache
}

// NewReplayer creates a replayer that drives the given cache.
func NewReplayer(c *cache.Cache) *Replayer {
	r := &Replayer{
		cache: c,
	}

	return r
}

// Replay consumes the whole trace and returns the final counters.
//
// Instruction entries are consumed but never reach the cache. Malformed lines
// are counted and skipped; only a failure of the trace source itself aborts
// the replay, in which case no partial result is returned.
func (r *Replayer) Replay(src *trace.Reader) (Result, error) {
	var result Result
	var seq uint64

	for {
		entry, err := src.Read()

		var malformed *trace.MalformedEntryError
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return result, nil
		case errors.As(err, &malformed):
			result.MalformedLines++
			continue
		default:
			return Result{}, err
		}

		if !entry.Kind.IsData() {
			continue
		}

		outcome := r.cache.Access(entry.Address)
		switch outcome {
		case cache.OutcomeHit:
			result.Hits++
		case cache.OutcomeMiss:
			result.Misses++
		case cache.OutcomeMissEvict:
			result.Misses++
			result.Evictions++
		}

		// A modify access reads and then writes the same location. The read
		// has just brought the block in or confirmed its presence, so the
		// paired write always hits.
		if entry.Kind == trace.KindModify {
			result.Hits++
		}

		seq++
		r.notifyAccess(seq, entry, outcome)
	}
}

func (r *Replayer) notifyAccess(
	seq uint64,
	entry trace.Entry,
	outcome cache.Outcome,
) {
	if len(r.Hooks) == 0 {
		return
	}

	tag, setIndex := r.cache.Decode(entry.Address)

	r.InvokeHook(HookCtx{
		Domain: r,
		Pos:    HookPosAccess,
		Item: Access{
			Seq:      seq,
			Kind:     entry.Kind,
			Address:  entry.Address,
			Size:     entry.Size,
			SetIndex: setIndex,
			Tag:      tag,
			Outcome:  outcome,
		},
	})
}
