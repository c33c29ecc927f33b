package synthetic

import "math/rand/v2"

// Source supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed generator seeded from seed alone.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func orUnseeded(src Source) Source {
	if src != nil {
		return src
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
