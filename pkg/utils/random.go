package utils

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random é a fonte de aleatoriedade injetada em política de engajamento e jitter
type Random interface {
	Float64() float64
	IntN(n int) int
	Int64N(n int64) int64
}

type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom cria uma fonte determinística para a semente informada, segura para uso concorrente
func NewRandom(seed uint64) Random {
	return &lockedRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededRandom cria uma fonte com semente baseada no relógio
func NewTimeSeededRandom() Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

func (r *lockedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func (r *lockedRandom) Int64N(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Int64N(n)
}

// Jitter devolve um deslocamento uniforme em [-window, +window]
func Jitter(rnd Random, window time.Duration) time.Duration {
	if window <= 0 {
		return 0
	}
	return time.Duration(rnd.Int64N(int64(2*window)+1)) - window
}
