package oscillator

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies uniform floats in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// LockedRand is a RandomSource safe to share between goroutines
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// Used when New is given a nil source
var defaultRand = NewLockedRand(time.Now().UnixNano())
