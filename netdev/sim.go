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
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openthread/ot-dutymac/prng"
	"github.com/openthread/ot-dutymac/types"
)

// SimConfig configures the simulated radio and its parent router.
type SimConfig struct {
	// TxLatency is the time between frame submission and the TX interrupt.
	TxLatency time.Duration
	// RxLatency is the time between two downlink frame deliveries.
	RxLatency time.Duration
	// NoAckRate is the probability that a data frame goes unacknowledged.
	NoAckRate float64
	// CcaFailRate is the probability that a transmission fails clear
	// channel assessment.
	CcaFailRate float64
}

// DefaultSimConfig returns the config used by the demo binary.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		TxLatency: 5 * time.Millisecond,
		RxLatency: 20 * time.Millisecond,
	}
}

// SimDevice is a simulated leaf radio attached to a simulated parent router.
// The parent queues downlink frames; a beacon transmission that finds queued
// downlink completes with frame-pending, after which the parent delivers the
// frames one by one while the leaf listens. TX outcomes are reported through
// the interrupt path like a real driver: the device raises a rate-collapsed
// EventISR and synthesizes the terminal events when ISR() is called.
type SimDevice struct {
	cfg   SimConfig
	clock clockwork.Clock

	mu        sync.Mutex
	listener  EventListener
	state     types.DeviceState
	srcLen    uint16
	channel   uint8
	txPower   int8
	irqRaised bool
	txBusy    bool
	pending   []types.RadioEvent // synthesized events, drained by ISR()
	rxReady   []*types.Frame     // frames offered to Recv()
	downlink  []*types.Frame     // parent's queue for this leaf
}

// NewSimDevice creates a simulated device on the given clock.
func NewSimDevice(cfg SimConfig, clock clockwork.Clock) *SimDevice {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SimDevice{
		cfg:     cfg,
		clock:   clock,
		state:   types.DeviceStateIdle,
		srcLen:  types.LongAddrLen,
		channel: 11,
	}
}

func (d *SimDevice) Init(l EventListener) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listener = l
	return nil
}

func (d *SimDevice) Set(opt types.NetOpt, value interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch opt {
	case types.OptState:
		st, ok := value.(types.DeviceState)
		if !ok {
			return ErrBadValue
		}
		d.state = st
	case types.OptSrcLen:
		n, ok := value.(uint16)
		if !ok || (n != types.ShortAddrLen && n != types.LongAddrLen) {
			return ErrBadValue
		}
		d.srcLen = n
	case types.OptChannel:
		ch, ok := value.(uint8)
		if !ok || ch < 11 || ch > 26 {
			return ErrBadValue
		}
		d.channel = ch
	case types.OptTxPower:
		p, ok := value.(int8)
		if !ok {
			return ErrBadValue
		}
		d.txPower = p
	default:
		return ErrUnsupported
	}
	return nil
}

func (d *SimDevice) Get(opt types.NetOpt) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch opt {
	case types.OptState:
		return d.state, nil
	case types.OptSrcLen:
		return d.srcLen, nil
	case types.OptChannel:
		return d.channel, nil
	case types.OptTxPower:
		return d.txPower, nil
	default:
		return nil, ErrUnsupported
	}
}

func (d *SimDevice) Send(frame *types.Frame, maybeBeacon bool) error {
	return d.submit(false)
}

func (d *SimDevice) Resend(frame *types.Frame, maybeBeacon bool) error {
	return d.submit(false)
}

func (d *SimDevice) SendBeacon() error {
	return d.submit(true)
}

// submit schedules the TX outcome interrupt for a frame or beacon.
func (d *SimDevice) submit(beacon bool) error {
	d.mu.Lock()
	if d.txBusy {
		d.mu.Unlock()
		return ErrBusy
	}
	d.txBusy = true
	d.mu.Unlock()

	d.clock.AfterFunc(d.cfg.TxLatency, func() {
		d.completeTx(beacon)
	})
	return nil
}

// completeTx synthesizes the terminal TX event and raises the interrupt.
func (d *SimDevice) completeTx(beacon bool) {
	d.mu.Lock()
	d.txBusy = false

	var outcome types.RadioEvent
	switch {
	case d.cfg.CcaFailRate > 0 && prng.UnitRandom() < d.cfg.CcaFailRate:
		outcome = types.EventTxMediumBusy
	case !beacon && d.cfg.NoAckRate > 0 && prng.UnitRandom() < d.cfg.NoAckRate:
		outcome = types.EventTxNoAck
	case beacon && len(d.downlink) > 0:
		outcome = types.EventTxCompletePending
	default:
		outcome = types.EventTxComplete
	}
	d.pending = append(d.pending, outcome)
	d.raiseISRLocked()
	d.mu.Unlock()

	if outcome == types.EventTxCompletePending {
		d.clock.AfterFunc(d.cfg.RxLatency, d.deliverDownlink)
	}
}

// deliverDownlink hands the next queued downlink frame to the leaf, as long
// as the leaf keeps its radio on. A frame that is not the last one is
// preceded by EventRxPending so the leaf keeps listening.
func (d *SimDevice) deliverDownlink() {
	d.mu.Lock()
	if len(d.downlink) == 0 || d.state == types.DeviceStateSleep {
		d.mu.Unlock()
		return
	}
	frame := d.downlink[0]
	d.downlink = d.downlink[1:]
	more := len(d.downlink) > 0

	if more {
		d.pending = append(d.pending, types.EventRxPending)
	}
	d.rxReady = append(d.rxReady, frame)
	d.pending = append(d.pending, types.EventRxComplete)
	d.raiseISRLocked()
	d.mu.Unlock()

	if more {
		d.clock.AfterFunc(d.cfg.RxLatency, d.deliverDownlink)
	}
}

// raiseISRLocked raises the rate-collapsed interrupt. d.mu must be held.
func (d *SimDevice) raiseISRLocked() {
	if d.irqRaised || d.listener == nil {
		return
	}
	d.irqRaised = true
	l := d.listener
	go l.OnRadioEvent(types.EventISR)
}

func (d *SimDevice) ISR() {
	d.mu.Lock()
	events := d.pending
	d.pending = nil
	d.irqRaised = false
	l := d.listener
	d.mu.Unlock()

	for _, ev := range events {
		l.OnRadioEvent(ev)
	}
}

func (d *SimDevice) Recv() *types.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.rxReady) == 0 {
		return nil
	}
	frame := d.rxReady[0]
	d.rxReady = d.rxReady[1:]
	return frame
}

// QueueDownlink queues a frame at the parent router for delivery after the
// leaf's next beacon.
func (d *SimDevice) QueueDownlink(frame *types.Frame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.downlink = append(d.downlink, frame)
}

// DownlinkDepth returns the number of frames queued at the parent.
func (d *SimDevice) DownlinkDepth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.downlink)
}

// SetFailRates adjusts the simulated NoACK and CCA failure probabilities.
func (d *SimDevice) SetFailRates(noAck, ccaFail float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.NoAckRate = noAck
	d.cfg.CcaFailRate = ccaFail
}
