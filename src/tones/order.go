package tones

import (
	"math/rand"
	"sort"
)

// ----- Tone Ordering ----- //

const (
	OrderForward = "forward"
	OrderReverse = "reverse"
	OrderShuffle = "shuffle"
	OrderRandom  = "random"
)

// Order returns a reordered copy of tones. The shuffle is a seeded
// Fisher-Yates permutation: the same seed and salt always produce the same
// permutation, so re-shuffling is an explicit, seed-changing action. The
// salt discriminates call sites (mono vs. poly) that share the global seed.
// "random" (and anything unknown) is identity: random selection already
// randomized the pool upstream.
func Order(tones []float64, method string, seed int64, salt int64) []float64 {
	out := make([]float64, len(tones))
	copy(out, tones)
	switch method {
	case OrderForward:
		sort.Float64s(out)
	case OrderReverse:
		sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	case OrderShuffle:
		rng := rand.New(rand.NewSource(seed + salt))
		for i := len(out) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
