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

package macmetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-dutymac/types"
)

func TestCollector_Observations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveTxBeacon()
	c.ObserveTxData()
	c.ObserveTxData()
	c.ObserveRx()
	c.ObserveQueueDepth(7)
	c.ObserveSleepInterval(200 * time.Millisecond)
	c.ObserveStateChange(types.DutySleep, types.DutyTxBeacon)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.TxBeacons))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.TxData))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.RxFrames))
	assert.Equal(t, float64(7), testutil.ToFloat64(c.QueueDepth))
	assert.Equal(t, 0.2, testutil.ToFloat64(c.SleepInterval))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		c.StateTransitions.WithLabelValues("sleep", "tx-beacon")))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	c.ObserveTxBeacon()
	c.ObserveTxData()
	c.ObserveTxFailure()
	c.ObserveRx()
	c.ObserveQueueDepth(1)
	c.ObserveQueueOverflow()
	c.ObserveFrameDropped()
	c.ObserveSleepInterval(time.Second)
	c.ObserveStateChange(types.DutyInit, types.DutySleep)
}
