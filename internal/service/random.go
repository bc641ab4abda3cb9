package service

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource はシャッフルと抽出に使う乱数源。テストでは固定シードを注入する。
type RandomSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource は並行利用できる乱数源を返す
func NewRandomSource(seed int64) RandomSource {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func NewTimeSeededRandom() RandomSource {
	return NewRandomSource(time.Now().UnixNano())
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// sampleIndices は 0..n-1 から k 個を重複なしで一様に選ぶ
func sampleIndices(rnd RandomSource, n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// 部分的な Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + rnd.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
