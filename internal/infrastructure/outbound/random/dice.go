package random

import (
	"math/rand/v2"
	"sync"

	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
)

var _ ports.Dice = (*Dice)(nil)

// Dice draws uniform percentages. The zero seed uses the runtime's random
// source; any other seed gives a reproducible sequence.
type Dice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Dice. Pass seed 0 for a non-deterministic sequence.
func New(seed uint64) *Dice {
	if seed == 0 {
		return &Dice{}
	}
	return &Dice{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Percent returns a value in [0, 100).
func (d *Dice) Percent() float64 {
	if d.rng == nil {
		return rand.Float64() * 100
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64() * 100
}
