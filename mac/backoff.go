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

package mac

import (
	"sync"
	"time"
)

// sleepBackoff holds the adaptive sleep-interval exponent. The current sleep
// interval is clamp(min << shift, min, max). The controller resets, backs off
// and reads it on the MAC goroutine; the shift still sits behind a mutex
// spanning only the read-modify-write, so any goroutine may use it.
type sleepBackoff struct {
	mu    sync.Mutex
	min   time.Duration
	max   time.Duration
	shift uint
}

func newSleepBackoff(min, max time.Duration) *sleepBackoff {
	return &sleepBackoff{min: min, max: max}
}

// Reset drops the shift back to zero. Called whenever data flows in either
// direction.
func (b *sleepBackoff) Reset() {
	b.mu.Lock()
	b.shift = 0
	b.mu.Unlock()
}

// Backoff doubles the sleep interval after an idle beacon exchange. The
// shift stops growing once the interval reaches max, which also guards the
// shift against overflow.
func (b *sleepBackoff) Backoff() {
	b.mu.Lock()
	if interval := b.min << b.shift; interval < b.max && interval<<1 > interval {
		b.shift++
	}
	b.mu.Unlock()
}

// Interval returns the current sleep interval.
func (b *sleepBackoff) Interval() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	interval := b.min << b.shift
	if interval > b.max || interval <= 0 {
		interval = b.max
	}
	return interval
}

// Shift returns the current backoff exponent.
func (b *sleepBackoff) Shift() uint {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shift
}
