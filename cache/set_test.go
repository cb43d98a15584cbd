package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// ranksArePermutation tells if the ranks of the set are exactly
// {0, 1, ..., E-1}.
func ranksArePermutation(s *Set) bool {
	seen := make([]bool, len(s.Blocks))
	for _, b := range s.Blocks {
		if b.Rank < 0 || b.Rank >= len(s.Blocks) || seen[b.Rank] {
			return false
		}
		seen[b.Rank] = true
	}

	return true
}

var _ = Describe("Set", func() {
	var set *Set

	BeforeEach(func() {
		set = NewSet(4, NewLRUVictimFinder())
	})

	It("should start with ranks forming a permutation", func() {
		Expect(ranksArePermutation(set)).To(BeTrue())
	})

	It("should miss without eviction while there are invalid blocks", func() {
		for tag := uint64(0); tag < 4; tag++ {
			Expect(set.Access(tag)).To(Equal(OutcomeMiss))
			Expect(ranksArePermutation(set)).To(BeTrue())
		}
	})

	It("should hit on a tag that is already present", func() {
		set.Access(0x10)

		outcome := set.Access(0x10)

		Expect(outcome).To(Equal(OutcomeHit))
		Expect(ranksArePermutation(set)).To(BeTrue())
	})

	It("should make the accessed block the most recently used one", func() {
		for tag := uint64(0); tag < 4; tag++ {
			set.Access(tag)
		}

		set.Access(0) // Touch the oldest tag again.

		for i := range set.Blocks {
			if set.Blocks[i].Tag == 0 {
				Expect(set.Blocks[i].Rank).To(Equal(0))
			}
		}
		Expect(ranksArePermutation(set)).To(BeTrue())
	})

	It("should evict the least recently used block when full", func() {
		for tag := uint64(0); tag < 4; tag++ {
			set.Access(tag)
		}

		outcome := set.Access(4)

		Expect(outcome).To(Equal(OutcomeMissEvict))
		Expect(ranksArePermutation(set)).To(BeTrue())

		// Tag 0 was the least recently used one and must be gone.
		Expect(set.Access(0)).To(Equal(OutcomeMissEvict))
	})

	It("should keep a hit from placing or evicting", func() {
		for tag := uint64(0); tag < 4; tag++ {
			set.Access(tag)
		}

		Expect(set.Access(3)).To(Equal(OutcomeHit))

		for i := range set.Blocks {
			Expect(set.Blocks[i].IsValid).To(BeTrue())
		}
	})

	Context("when direct mapped", func() {
		BeforeEach(func() {
			set = NewSet(1, NewLRUVictimFinder())
		})

		It("should always replace the single block", func() {
			Expect(set.Access(1)).To(Equal(OutcomeMiss))
			Expect(set.Access(1)).To(Equal(OutcomeHit))
			Expect(set.Access(2)).To(Equal(OutcomeMissEvict))
			Expect(set.Blocks[0].Rank).To(Equal(0))
		})
	})
})

var _ = Describe("LRUVictimFinder", func() {
	It("should prefer invalid blocks", func() {
		set := NewSet(2, NewLRUVictimFinder())
		set.Blocks[0].IsValid = true

		victim := NewLRUVictimFinder().FindVictim(set)

		Expect(victim).To(BeIdenticalTo(&set.Blocks[1]))
	})

	It("should pick the highest rank when the set is full", func() {
		set := NewSet(4, NewLRUVictimFinder())
		for i := range set.Blocks {
			set.Blocks[i].IsValid = true
		}

		victim := NewLRUVictimFinder().FindVictim(set)

		Expect(victim.Rank).To(Equal(3))
	})
})
