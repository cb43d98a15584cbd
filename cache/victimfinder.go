package cache

// A VictimFinder decides which block of a set receives an incoming memory
// block on a miss.
type VictimFinder interface {
	FindVictim(set *Set) *Block
}

// LRUVictimFinder selects the least recently used block of a set, preferring
// invalid blocks so that no live block is evicted while the set still has
// room.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed LRU victim finder.
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the first invalid block of the set, or the block with
// the highest recency rank if every block is valid.
func (e *LRUVictimFinder) FindVictim(set *Set) *Block {
	for i := range set.Blocks {
		if !set.Blocks[i].IsValid {
			return &set.Blocks[i]
		}
	}

	maxRank := -1
	var victim *Block
	for i := range set.Blocks {
		if set.Blocks[i].Rank > maxRank {
			maxRank = set.Blocks[i].Rank
			victim = &set.Blocks[i]
		}
	}

	return victim
}
