package cache

// DecodeAddress splits a 64-bit address into the tag and the set index, given
// the number of set-index bits and block-offset bits. The block-offset bits
// are discarded, as the model works at block granularity.
func DecodeAddress(
	addr uint64,
	setIndexBits, blockOffsetBits uint,
) (tag, setIndex uint64) {
	indexMask := uint64(1)<<setIndexBits - 1

	setIndex = (addr >> blockOffsetBits) & indexMask
	tag = addr >> (setIndexBits + blockOffsetBits)

	return tag, setIndex
}
