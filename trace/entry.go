// Package trace defines the memory-reference trace format of the simulator
// and a reader that parses valgrind-style trace files.
package trace

// A Kind is the type of one memory reference.
type Kind byte

// The four access kinds that can show up in a trace.
const (
	KindInstruction Kind = 'I'
	KindLoad        Kind = 'L'
	KindStore       Kind = 'S'
	KindModify      Kind = 'M'
)

// IsData tells if the access references data. Instruction fetches are
// recorded in traces but never replayed against the data cache.
func (k Kind) IsData() bool {
	return k != KindInstruction
}

func (k Kind) String() string {
	return string(byte(k))
}

// An Entry is one parsed memory reference. Size is carried through from the
// trace but has no effect on the simulation, which works at block
// granularity.
type Entry struct {
	Kind    Kind
	Address uint64
	Size    int
}
