package animation

import (
	"math/rand"
	"time"
)

// Rand is the source of every random choice the controller makes.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// sample returns k distinct indices of [0, n) in random order.
func sample(rnd Rand, n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rnd.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func pickSide(rnd Rand) Side {
	if rnd.Intn(2) == 1 {
		return SideRight
	}
	return SideLeft
}

func sampleOptions(rnd Rand, pool []PromptOption, count int) []PromptOption {
	picked := sample(rnd, len(pool), count)
	out := make([]PromptOption, len(picked))
	for i, idx := range picked {
		out[i] = pool[idx]
	}
	return out
}

// buildQueue samples length messages from pool, never repeating the final
// message, and appends final when it is set.
func buildQueue(rnd Rand, pool []string, length int, final string) []string {
	candidates := make([]string, 0, len(pool))
	for _, m := range pool {
		if final != "" && m == final {
			continue
		}
		candidates = append(candidates, m)
	}

	n := length
	if final != "" && n > 0 {
		n--
	}
	picked := sample(rnd, len(candidates), n)

	queue := make([]string, 0, len(picked)+1)
	for _, idx := range picked {
		queue = append(queue, candidates[idx])
	}
	if final != "" {
		queue = append(queue, final)
	}
	return queue
}
