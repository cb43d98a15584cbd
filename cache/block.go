// Package cache models a single-level set-associative cache with an LRU
// replacement policy. The model is purely functional in the hardware sense:
// it tracks tags and recency, not data, and reports the outcome of each
// access.
package cache

// A Block is the information that is associated with one cache line: the tag
// of the memory block it holds, whether it holds one at all, and its recency
// rank within its set.
type Block struct {
	Tag     uint64
	IsValid bool

	// Rank orders the blocks of a set by recency. 0 is the most recently
	// used block and associativity-1 is the least recently used one. The
	// ranks within a set always form a permutation of 0..associativity-1.
	Rank int
}
