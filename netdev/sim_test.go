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

package netdev

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openthread/ot-dutymac/types"
)

const eventually = 2 * time.Second

// drainListener drives ISR() itself and records the delivered events, like
// the MAC goroutine would.
type drainListener struct {
	mu     sync.Mutex
	dev    *SimDevice
	events []types.RadioEvent
}

func (l *drainListener) OnRadioEvent(ev types.RadioEvent) {
	if ev == types.EventISR {
		l.dev.ISR()
		return
	}
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *drainListener) recorded() []types.RadioEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]types.RadioEvent, len(l.events))
	copy(out, l.events)
	return out
}

func newSimUnderTest(t *testing.T, cfg SimConfig) (*SimDevice, *drainListener, *clockwork.FakeClock) {
	t.Helper()
	clk := clockwork.NewFakeClock()
	dev := NewSimDevice(cfg, clk)
	l := &drainListener{dev: dev}
	require.NoError(t, dev.Init(l))
	return dev, l, clk
}

func TestSimDevice_Options(t *testing.T) {
	dev, _, _ := newSimUnderTest(t, DefaultSimConfig())

	require.NoError(t, dev.Set(types.OptState, types.DeviceStateSleep))
	v, err := dev.Get(types.OptState)
	require.NoError(t, err)
	assert.Equal(t, types.DeviceStateSleep, v)

	require.NoError(t, dev.Set(types.OptSrcLen, types.ShortAddrLen))
	assert.ErrorIs(t, dev.Set(types.OptSrcLen, uint16(5)), ErrBadValue)
	assert.ErrorIs(t, dev.Set(types.OptChannel, uint8(5)), ErrBadValue)
	_, err = dev.Get(types.OptDutyCycle)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSimDevice_TxComplete(t *testing.T) {
	cfg := DefaultSimConfig()
	dev, l, clk := newSimUnderTest(t, cfg)

	require.NoError(t, dev.Send(types.NewFrame(types.FrameTypeData, []byte{1}), false))
	assert.ErrorIs(t, dev.Send(types.NewFrame(types.FrameTypeData, []byte{2}), false), ErrBusy)

	clk.Advance(cfg.TxLatency)
	require.Eventually(t, func() bool {
		evs := l.recorded()
		return len(evs) == 1 && evs[0] == types.EventTxComplete
	}, eventually, time.Millisecond)
}

func TestSimDevice_BeaconPendingAndDownlink(t *testing.T) {
	cfg := DefaultSimConfig()
	dev, l, clk := newSimUnderTest(t, cfg)

	f1 := types.NewFrame(types.FrameTypeData, []byte{1})
	f2 := types.NewFrame(types.FrameTypeData, []byte{2})
	dev.QueueDownlink(f1)
	dev.QueueDownlink(f2)
	assert.Equal(t, 2, dev.DownlinkDepth())

	require.NoError(t, dev.SendBeacon())
	clk.Advance(cfg.TxLatency)
	require.Eventually(t, func() bool {
		evs := l.recorded()
		return len(evs) == 1 && evs[0] == types.EventTxCompletePending
	}, eventually, time.Millisecond)

	// first delivery announces more traffic
	clk.Advance(cfg.RxLatency)
	require.Eventually(t, func() bool {
		evs := l.recorded()
		return len(evs) == 3 &&
			evs[1] == types.EventRxPending && evs[2] == types.EventRxComplete
	}, eventually, time.Millisecond)
	assert.Same(t, f1, dev.Recv())

	// last delivery has no pending hint
	clk.Advance(cfg.RxLatency)
	require.Eventually(t, func() bool {
		evs := l.recorded()
		return len(evs) == 4 && evs[3] == types.EventRxComplete
	}, eventually, time.Millisecond)
	assert.Same(t, f2, dev.Recv())
	assert.Nil(t, dev.Recv())
	assert.Equal(t, 0, dev.DownlinkDepth())
}

func TestSimDevice_NoDeliveryWhileAsleep(t *testing.T) {
	cfg := DefaultSimConfig()
	dev, l, clk := newSimUnderTest(t, cfg)

	dev.QueueDownlink(types.NewFrame(types.FrameTypeData, []byte{1}))
	require.NoError(t, dev.SendBeacon())
	clk.Advance(cfg.TxLatency)
	require.Eventually(t, func() bool {
		return len(l.recorded()) == 1
	}, eventually, time.Millisecond)

	// the leaf went to sleep before the delivery slot
	require.NoError(t, dev.Set(types.OptState, types.DeviceStateSleep))
	clk.Advance(cfg.RxLatency)
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, l.recorded(), 1)
	assert.Equal(t, 1, dev.DownlinkDepth())
}

func TestSimDevice_NoAck(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.NoAckRate = 1
	dev, l, clk := newSimUnderTest(t, cfg)

	require.NoError(t, dev.Send(types.NewFrame(types.FrameTypeData, []byte{1}), false))
	clk.Advance(cfg.TxLatency)
	require.Eventually(t, func() bool {
		evs := l.recorded()
		return len(evs) == 1 && evs[0] == types.EventTxNoAck
	}, eventually, time.Millisecond)

	// beacons carry no payload and are not subject to the NoACK rate
	require.NoError(t, dev.SendBeacon())
	clk.Advance(cfg.TxLatency)
	require.Eventually(t, func() bool {
		evs := l.recorded()
		return len(evs) == 2 && evs[1] == types.EventTxComplete
	}, eventually, time.Millisecond)
}

func TestSimDevice_CcaFailure(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.CcaFailRate = 1
	dev, l, clk := newSimUnderTest(t, cfg)

	require.NoError(t, dev.Send(types.NewFrame(types.FrameTypeData, []byte{1}), false))
	clk.Advance(cfg.TxLatency)
	require.Eventually(t, func() bool {
		evs := l.recorded()
		return len(evs) == 1 && evs[0] == types.EventTxMediumBusy
	}, eventually, time.Millisecond)
}
