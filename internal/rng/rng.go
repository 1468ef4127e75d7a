// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package rng provides the bit source behind the magic primitive.
package rng

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source produces pseudo-random bits. It is seeded once, when created, and
// cannot be reseeded. Not suitable for cryptographic use.
type Source struct {
	mu   sync.Mutex
	r    *rand.Rand
	seed uint64
}

// New creates a Source seeded with seed. A zero seed selects the current
// time.
func New(seed int64) *Source {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return &Source{
		r:    rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
		seed: s,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Bit returns 0 or 1.
func (s *Source) Bit() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.r.Uint64() & 1)
}
