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
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroBackoffConfig removes the random CSMA delay so attempts run inline.
func zeroBackoffConfig() Config {
	cfg := DefaultConfig()
	cfg.CsmaMinBE = 0
	cfg.CsmaMaxBE = 0
	cfg.CsmaUnitBackoff = 0
	return cfg
}

func TestCsmaSender_GivesUpAfterMaxBackoffs(t *testing.T) {
	cfg := zeroBackoffConfig()
	cfg.CsmaMaxBackoffs = 3
	s := newCsmaSender(clockwork.NewFakeClock(), cfg)

	attempts := 0
	s.Send(func() { attempts++ })
	assert.Equal(t, 1, attempts)

	// each failure schedules exactly one more attempt, up to the limit
	assert.True(t, s.SendFailed())
	assert.True(t, s.SendFailed())
	assert.True(t, s.SendFailed())
	assert.Equal(t, 4, attempts)
	assert.False(t, s.SendFailed())
	assert.Equal(t, 4, attempts)
}

func TestCsmaSender_SucceededStopsAttempts(t *testing.T) {
	s := newCsmaSender(clockwork.NewFakeClock(), zeroBackoffConfig())

	attempts := 0
	s.Send(func() { attempts++ })
	s.SendSucceeded()
	assert.False(t, s.SendFailed())
	assert.Equal(t, 1, attempts)
}

func TestCsmaSender_BackoffDelayed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CsmaMinBE = 1
	cfg.CsmaMaxBE = 1
	clk := clockwork.NewFakeClock()
	s := newCsmaSender(clk, cfg)

	var attempts atomic.Int32
	s.Send(func() { attempts.Add(1) })
	// the attempt runs either inline (zero units drawn) or after at most
	// (2^BE - 1) unit backoff periods
	clk.Advance(cfg.CsmaUnitBackoff)
	require.Eventually(t, func() bool {
		return attempts.Load() == 1
	}, 2*time.Second, time.Millisecond)
}

func TestRetrySender_RetriesThenGivesUp(t *testing.T) {
	r := &retrySender{}

	var attempts []bool
	r.Send(2, func(rexmit bool) { attempts = append(attempts, rexmit) })
	assert.Equal(t, []bool{false}, attempts)

	assert.True(t, r.SendFailed())
	assert.True(t, r.SendFailed())
	assert.Equal(t, []bool{false, true, true}, attempts)
	assert.False(t, r.SendFailed())
	assert.Len(t, attempts, 3)
}

func TestRetrySender_DefaultLimit(t *testing.T) {
	r := &retrySender{}

	attempts := 0
	r.Send(-1, func(bool) { attempts++ })
	for r.SendFailed() {
	}
	assert.Equal(t, 1+defaultMaxFrameRetries, attempts)
}

func TestRetrySender_SucceededStopsRetries(t *testing.T) {
	r := &retrySender{}

	attempts := 0
	r.Send(3, func(bool) { attempts++ })
	r.SendSucceeded()
	assert.False(t, r.SendFailed())
	assert.Equal(t, 1, attempts)
}
