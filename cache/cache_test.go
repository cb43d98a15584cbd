package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DecodeAddress", func() {
	It("should split an address into tag and set index", func() {
		tag, setIndex := DecodeAddress(0b1101_0110_1000, 4, 4)

		Expect(setIndex).To(Equal(uint64(0b0110)))
		Expect(tag).To(Equal(uint64(0b1101)))
	})

	It("should use the whole address as tag when s and b are zero", func() {
		tag, setIndex := DecodeAddress(0xdeadbeef, 0, 0)

		Expect(setIndex).To(Equal(uint64(0)))
		Expect(tag).To(Equal(uint64(0xdeadbeef)))
	})
})

var _ = Describe("Cache", func() {
	It("should hit on a repeated access", func() {
		c := MakeBuilder().
			WithSetIndexBits(0).
			WithAssociativity(1).
			WithBlockOffsetBits(0).
			Build()

		Expect(c.Access(0)).To(Equal(OutcomeMiss))
		Expect(c.Access(0)).To(Equal(OutcomeHit))
	})

	It("should thrash a direct-mapped set on conflicting tags", func() {
		c := MakeBuilder().
			WithSetIndexBits(0).
			WithAssociativity(1).
			WithBlockOffsetBits(0).
			Build()

		Expect(c.Access(0x0)).To(Equal(OutcomeMiss))
		Expect(c.Access(0x10)).To(Equal(OutcomeMissEvict))
		Expect(c.Access(0x0)).To(Equal(OutcomeMissEvict))
	})

	It("should keep two conflicting tags in a two-way set", func() {
		c := MakeBuilder().
			WithSetIndexBits(0).
			WithAssociativity(2).
			WithBlockOffsetBits(0).
			Build()

		Expect(c.Access(0x0)).To(Equal(OutcomeMiss))
		Expect(c.Access(0x4)).To(Equal(OutcomeMiss))
		Expect(c.Access(0x0)).To(Equal(OutcomeHit))
		Expect(c.Access(0x4)).To(Equal(OutcomeHit))
	})

	It("should not evict while the working set fits", func() {
		c := MakeBuilder().
			WithSetIndexBits(2).
			WithAssociativity(4).
			WithBlockOffsetBits(4).
			Build()

		// Touch E distinct tags in every set, each once.
		for set := uint64(0); set < 4; set++ {
			for tag := uint64(0); tag < 4; tag++ {
				addr := tag<<6 | set<<4
				Expect(c.Access(addr)).To(Equal(OutcomeMiss))
			}
		}
	})

	It("should evict on every access when cycling E+1 conflicting tags", func() {
		const e = 4
		c := MakeBuilder().
			WithSetIndexBits(0).
			WithAssociativity(e).
			WithBlockOffsetBits(0).
			Build()

		for tag := uint64(0); tag < e; tag++ {
			Expect(c.Access(tag)).To(Equal(OutcomeMiss))
		}
		Expect(c.Access(e)).To(Equal(OutcomeMissEvict))

		// From here on, the next tag of the cycle is always the one that
		// was just evicted, so every access evicts.
		for cycle := 0; cycle < 3; cycle++ {
			for tag := uint64(0); tag <= e; tag++ {
				Expect(c.Access(tag)).To(Equal(OutcomeMissEvict))
			}
		}
	})

	It("should route addresses to independent sets", func() {
		c := MakeBuilder().
			WithSetIndexBits(1).
			WithAssociativity(1).
			WithBlockOffsetBits(0).
			Build()

		Expect(c.Access(0)).To(Equal(OutcomeMiss)) // set 0
		Expect(c.Access(1)).To(Equal(OutcomeMiss)) // set 1
		Expect(c.Access(0)).To(Equal(OutcomeHit))
		Expect(c.Access(1)).To(Equal(OutcomeHit))
	})

	It("should report its geometry", func() {
		c := MakeBuilder().
			WithSetIndexBits(3).
			WithAssociativity(2).
			WithBlockOffsetBits(5).
			Build()

		Expect(c.NumSets()).To(Equal(8))
		Expect(c.WayAssociativity()).To(Equal(2))
	})
})

var _ = Describe("Builder", func() {
	It("should panic on a non-positive associativity", func() {
		Expect(func() {
			MakeBuilder().WithAssociativity(0).Build()
		}).To(Panic())
	})

	It("should panic when the geometry does not fit a 64-bit address", func() {
		Expect(func() {
			MakeBuilder().WithSetIndexBits(40).WithBlockOffsetBits(24).Build()
		}).To(Panic())
	})
})
