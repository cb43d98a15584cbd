package cache

// An Outcome describes what a single access did to the cache.
type Outcome int

// The three possible outcomes of an access.
const (
	OutcomeHit Outcome = iota
	OutcomeMiss
	OutcomeMissEvict
)

// IsMiss tells if the outcome is a miss, with or without an eviction.
func (o Outcome) IsMiss() bool {
	return o == OutcomeMiss || o == OutcomeMissEvict
}

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeMissEvict:
		return "miss eviction"
	default:
		return "unknown"
	}
}
