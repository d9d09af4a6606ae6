// Package ordering produces the randomized, degree-biased vertex visiting
// orders consumed by the greedy colourer.
//
// [ByDegree] visits vertices in descending degree order and breaks ties among
// equal-degree vertices with a uniform shuffle. Diversity between trials comes
// entirely from the random source, so every trial must be given an
// independent stream; [Stream] derives one per (seed, trial) pair and
// [SeedFor] derives a per-graph seed from a run seed and a graph name.
//
// math/rand/v2 generators are not safe for concurrent use. Derive one stream
// per goroutine rather than sharing a *rand.Rand.
package ordering

import (
	"hash/fnv"
	"math/rand/v2"
)

// DefaultSeed is used by [SeedFor] when the run seed is zero.
const DefaultSeed uint64 = 42

// ByDegree returns a permutation of the vertices 0..len(degrees)-1 sorted by
// descending degree, with ties broken by rng.
//
// Vertices are grouped into buckets by degree, each bucket is shuffled, the
// buckets are concatenated in ascending degree order and the concatenation is
// reversed. For a fixed rng state the output is reproducible.
func ByDegree(degrees []int, rng *rand.Rand) []int {
	maxDeg := 0
	for _, d := range degrees {
		maxDeg = max(maxDeg, d)
	}

	buckets := make([][]int, maxDeg+1)
	for v, d := range degrees {
		buckets[d] = append(buckets[d], v)
	}

	order := make([]int, 0, len(degrees))
	for _, b := range buckets {
		rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
		order = append(order, b...)
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Stream returns the random source for one trial of a graph's search.
// Streams for different trial indices are independent, and the same
// (seed, trial) pair always yields the same sequence, which lets trials run
// in any order or in parallel without changing results.
func Stream(seed uint64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, mix(uint64(trial))))
}

// SeedFor derives the seed of one graph's search from the run seed and the
// graph name. A zero run seed is replaced by [DefaultSeed].
func SeedFor(runSeed uint64, name string) uint64 {
	if runSeed == 0 {
		runSeed = DefaultSeed
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return mix(runSeed ^ h.Sum64())
}

// mix is the SplitMix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
