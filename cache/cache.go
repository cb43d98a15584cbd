package cache

// A Cache is a collection of 2^setIndexBits sets. It routes each access to
// the set selected by the address and delegates the lookup to it. The cache
// holds no state of its own beyond owning the sets.
type Cache struct {
	setIndexBits    uint
	blockOffsetBits uint
	associativity   int

	sets []*Set
}

// Access performs one block-granularity access and reports the outcome.
func (c *Cache) Access(addr uint64) Outcome {
	tag, setIndex := c.Decode(addr)
	return c.sets[setIndex].Access(tag)
}

// Decode splits addr according to the cache geometry.
func (c *Cache) Decode(addr uint64) (tag, setIndex uint64) {
	return DecodeAddress(addr, c.setIndexBits, c.blockOffsetBits)
}

// NumSets returns the number of sets in the cache.
func (c *Cache) NumSets() int {
	return len(c.sets)
}

// WayAssociativity returns the number of blocks per set.
func (c *Cache) WayAssociativity() int {
	return c.associativity
}

// SetAt returns the i-th set. It is mainly useful for inspection and
// white-box testing.
func (c *Cache) SetAt(i int) *Set {
	return c.sets[i]
}
