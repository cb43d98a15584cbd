package cache

// A Set is a fixed-size group of blocks where a certain range of memory
// blocks can be stored. The set owns the LRU bookkeeping of its blocks.
type Set struct {
	Blocks []Block

	victimFinder VictimFinder
}

// NewSet creates a set with the given associativity. Ranks are initialized to
// 0..associativity-1 so that they form a permutation from the start, as they
// do during normal operation.
func NewSet(associativity int, victimFinder VictimFinder) *Set {
	s := &Set{
		Blocks:       make([]Block, associativity),
		victimFinder: victimFinder,
	}

	for i := range s.Blocks {
		s.Blocks[i].Rank = i
	}

	return s
}

// Access looks the tag up in the set, placing and evicting as needed, and
// reports the outcome. The accessed block always ends up the most recently
// used one.
func (s *Set) Access(tag uint64) Outcome {
	for i := range s.Blocks {
		block := &s.Blocks[i]
		if block.IsValid && block.Tag == tag {
			s.promote(block.Rank)
			return OutcomeHit
		}
	}

	victim := s.victimFinder.FindVictim(s)

	if !victim.IsValid {
		victim.Tag = tag
		victim.IsValid = true
		s.promote(victim.Rank)

		return OutcomeMiss
	}

	// A full set must hand out its rank-(E-1) block. Anything else means the
	// ranks are no longer a permutation.
	if victim.Rank != len(s.Blocks)-1 {
		panic("eviction victim is not the least recently used block")
	}

	victim.Tag = tag
	s.promote(victim.Rank)

	return OutcomeMissEvict
}

// promote makes the block holding accessedRank the most recently used one.
// Every block more recent than it moves one step toward LRU; everything else
// stays put, so the ranks remain a permutation of 0..E-1.
func (s *Set) promote(accessedRank int) {
	for i := range s.Blocks {
		switch {
		case s.Blocks[i].Rank < accessedRank:
			s.Blocks[i].Rank++
		case s.Blocks[i].Rank == accessedRank:
			s.Blocks[i].Rank = 0
		}
	}
}
