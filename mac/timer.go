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

	"github.com/jonboulle/clockwork"
)

// wakeTimer is the single-shot wake-up timer. Only the MAC goroutine arms and
// disarms it; the expiry callback runs in timer context and must only post a
// TICK message. Each arm bumps a generation so that a TICK overtaken by a
// disarm is recognized as stale and dropped.
type wakeTimer struct {
	clock clockwork.Clock
	post  func(gen uint32)

	mu    sync.Mutex
	timer clockwork.Timer
	gen   uint32
	armed bool
}

func newWakeTimer(clock clockwork.Clock, post func(gen uint32)) *wakeTimer {
	return &wakeTimer{clock: clock, post: post}
}

// Arm schedules the next TICK after d, replacing any outstanding deadline.
func (t *wakeTimer) Arm(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	t.armed = true
	gen := t.gen
	t.timer = t.clock.AfterFunc(d, func() {
		t.expire(gen)
	})
}

// Disarm cancels the outstanding deadline, if any.
func (t *wakeTimer) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.armed = false
}

// Armed reports whether a deadline is outstanding.
func (t *wakeTimer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Stale reports whether gen belongs to a cancelled or replaced arm.
func (t *wakeTimer) Stale(gen uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen != t.gen
}

func (t *wakeTimer) expire(gen uint32) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.armed = false
	t.mu.Unlock()
	t.post(gen)
}
