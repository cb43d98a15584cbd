package cache

// Builder can be used to build a cache. Geometry parameters follow the usual
// (s, E, b) notation: 2^s sets, E blocks per set, 2^b bytes per block.
type Builder struct {
	setIndexBits    uint
	associativity   int
	blockOffsetBits uint
	victimFinder    VictimFinder
}

// MakeBuilder creates a builder with a direct-mapped, single-set geometry and
// an LRU victim finder.
func MakeBuilder() Builder {
	return Builder{
		associativity: 1,
		victimFinder:  NewLRUVictimFinder(),
	}
}

// WithSetIndexBits sets the number of address bits used to select a set.
func (b Builder) WithSetIndexBits(s uint) Builder {
	b.setIndexBits = s
	return b
}

// WithAssociativity sets the number of blocks per set.
func (b Builder) WithAssociativity(e int) Builder {
	b.associativity = e
	return b
}

// WithBlockOffsetBits sets the number of address bits that fall inside one
// block.
func (b Builder) WithBlockOffsetBits(bits uint) Builder {
	b.blockOffsetBits = bits
	return b
}

// WithVictimFinder sets the replacement policy used by every set.
func (b Builder) WithVictimFinder(vf VictimFinder) Builder {
	b.victimFinder = vf
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.associativity < 1 {
		panic("associativity must be at least 1")
	}

	if b.setIndexBits+b.blockOffsetBits >= 64 {
		panic("set index bits and block offset bits must fit a 64-bit address")
	}

	if b.victimFinder == nil {
		panic("a victim finder is required")
	}
}

// Build builds the cache.
func (b Builder) Build() *Cache {
	b.parametersMustBeValid()

	c := &Cache{
		setIndexBits:    b.setIndexBits,
		blockOffsetBits: b.blockOffsetBits,
		associativity:   b.associativity,
	}

	numSets := 1 << b.setIndexBits
	c.sets = make([]*Set, numSets)
	for i := range c.sets {
		c.sets[i] = NewSet(b.associativity, b.victimFinder)
	}

	return c
}
