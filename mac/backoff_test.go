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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSleepBackoff_Doubling(t *testing.T) {
	b := newSleepBackoff(100*time.Millisecond, 1600*time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, b.Interval())

	b.Backoff()
	assert.Equal(t, 200*time.Millisecond, b.Interval())
	b.Backoff()
	b.Backoff()
	b.Backoff()
	assert.Equal(t, 1600*time.Millisecond, b.Interval())

	// capped: further backoffs keep the interval at max
	b.Backoff()
	b.Backoff()
	assert.Equal(t, 1600*time.Millisecond, b.Interval())
	assert.Equal(t, uint(4), b.Shift())
}

func TestSleepBackoff_Reset(t *testing.T) {
	b := newSleepBackoff(100*time.Millisecond, 1600*time.Millisecond)
	b.Backoff()
	b.Backoff()
	assert.Equal(t, uint(2), b.Shift())

	b.Reset()
	assert.Equal(t, uint(0), b.Shift())
	assert.Equal(t, 100*time.Millisecond, b.Interval())
}

func TestSleepBackoff_MaxBelowDouble(t *testing.T) {
	// max is not a power-of-two multiple of min
	b := newSleepBackoff(100*time.Millisecond, 250*time.Millisecond)
	b.Backoff()
	assert.Equal(t, 200*time.Millisecond, b.Interval())
	b.Backoff()
	// clamped to max, shift capped
	assert.Equal(t, 250*time.Millisecond, b.Interval())
	b.Backoff()
	assert.Equal(t, 250*time.Millisecond, b.Interval())
}

// TestSleepBackoff_Bounds checks that for any sequence of backoffs and
// resets the interval stays within [min, max] and the shift stays bounded.
func TestSleepBackoff_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		min := time.Duration(rapid.Int64Range(1, int64(time.Second)).Draw(rt, "min"))
		max := min * time.Duration(rapid.Int64Range(1, 1024).Draw(rt, "factor"))
		b := newSleepBackoff(min, max)

		var maxShift uint
		for min<<(maxShift+1) <= max {
			maxShift++
		}

		steps := rapid.IntRange(1, 200).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "backoff") {
				b.Backoff()
			} else {
				b.Reset()
			}
			if iv := b.Interval(); iv < min || iv > max {
				rt.Fatalf("interval %v out of [%v, %v]", iv, min, max)
			}
			if s := b.Shift(); s > maxShift+1 {
				rt.Fatalf("shift %d beyond bound %d", s, maxShift+1)
			}
		}
	})
}
