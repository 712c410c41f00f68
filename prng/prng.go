// Copyright (c) 2026, The OT Duty-MAC Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package prng provides the seeded random generators of the duty-MAC stack.
package prng

import (
	"math/rand"
	"sync"
	"time"
)

var (
	wakeJitterGenerator  *rand.Rand
	csmaBackoffGenerator *rand.Rand
	lossGenerator        *rand.Rand
	mu                   sync.Mutex
)

func init() {
	Init(0)
}

// Init initializes the prng package, either with a fixed root seed
// (rootSeed != 0) for reproducible runs, or a time-based seed (rootSeed == 0).
func Init(rootSeed int64) {
	if rootSeed == 0 {
		rootSeed = time.Now().UnixNano()
	}
	root := rand.New(rand.NewSource(rootSeed))

	mu.Lock()
	defer mu.Unlock()
	wakeJitterGenerator = rand.New(rand.NewSource(root.Int63()))
	csmaBackoffGenerator = rand.New(rand.NewSource(root.Int63()))
	lossGenerator = rand.New(rand.NewSource(root.Int63()))
}

// WakeJitter returns a uniformly random duration in [0, max], used to
// de-phase the first wake-up of nodes enabling duty-cycling together.
func WakeJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	mu.Lock()
	defer mu.Unlock()
	return time.Duration(wakeJitterGenerator.Int63n(int64(max) + 1))
}

// CsmaBackoffUnits returns a random unit count in [0, 2^be - 1] for the CSMA
// backoff exponent be.
func CsmaBackoffUnits(be uint) int {
	mu.Lock()
	defer mu.Unlock()
	return csmaBackoffGenerator.Intn(1 << be)
}

// UnitRandom returns a random float in [0, 1), used as a loss probability by
// the simulated radio.
func UnitRandom() float64 {
	mu.Lock()
	defer mu.Unlock()
	return lossGenerator.Float64()
}
