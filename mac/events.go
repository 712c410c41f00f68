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
	"github.com/openthread/ot-dutymac/logger"
	"github.com/openthread/ot-dutymac/types"
)

// OnRadioEvent implements netdev.EventListener. EventISR arrives from
// interrupt context and only flags and posts; every other event is delivered
// synchronously from within Device.ISR() on the MAC goroutine, so the
// handlers below mutate controller state directly and self-post follow-up
// messages.
func (c *Controller) OnRadioEvent(ev types.RadioEvent) {
	switch ev {
	case types.EventISR:
		c.irqPending.Store(true)
		if !c.post(message{kind: msgRadioISR}) {
			c.lostInterrupts.Add(1)
			logger.Warnf("mac: possibly lost interrupt")
		}
	case types.EventRxPending:
		c.additionalWakeup = true
	case types.EventRxComplete:
		c.handleRxComplete()
	case types.EventTxCompletePending:
		c.handleTxComplete(true)
	case types.EventTxComplete:
		c.handleTxComplete(false)
	case types.EventTxMediumBusy, types.EventTxNoAck:
		c.handleTxFailed(ev)
	default:
		logger.Debugf("mac: unhandled radio event %v", ev)
	}
}

// handleRxComplete takes the received frame and decides whether to keep
// listening, transmit queued data, or go back to sleep.
func (c *Controller) handleRxComplete() {
	frame := c.dev.Recv()
	if frame != nil {
		c.counters.RxFrames++
		c.metrics.ObserveRx()
	}

	if c.dutyCycling {
		c.timer.Disarm()
		switch {
		case c.additionalWakeup:
			// the sender announced more traffic: listen for a while
			c.additionalWakeup = false
			c.setState(types.DutyListen)
			c.postSelf(message{kind: msgDutyEvent})
		case c.queue.Empty():
			c.setState(types.DutySleep)
			c.postSelf(message{kind: msgDutyEvent})
		default:
			c.armTimer(c.backoff.Interval())
			c.setState(types.DutyTxData)
			c.postSelf(message{kind: msgCheckQueue})
		}
	} else {
		c.additionalWakeup = false
	}

	if frame != nil {
		c.passOnFrame(frame)
	}
}

// handleTxComplete processes a successful transmission; pending indicates a
// frame-pending acknowledgement (the parent holds downlink data).
func (c *Controller) handleTxComplete(pending bool) {
	c.csma.SendSucceeded()
	c.retry.SendSucceeded()
	c.radioBusy = false

	if c.sendingBeacon {
		c.counters.TxBeacons++
		c.metrics.ObserveTxBeacon()
	} else {
		c.counters.TxData++
		c.metrics.ObserveTxData()
	}

	if pending {
		// there will be data in this interval
		c.backoff.Reset()
		if c.state == types.DutyInit {
			return
		}
		if c.state != types.DutyTxBeacon {
			logger.Debugf("mac: tx-complete-pending in state %v", c.state)
		}
		c.timer.Disarm()
		c.setState(types.DutyListen)
		c.postSelf(message{kind: msgDutyEvent})
		return
	}

	if c.state == types.DutyInit {
		// direct-send mode: completed frames still leave the queue
		if !c.dutyCycling && !c.sendingBeacon && !c.queue.Empty() {
			c.postSelf(message{kind: msgRemoveQueue})
		}
		return
	}

	switch {
	case c.state == types.DutyTxBeacon:
		c.timer.Disarm()
		if c.queue.Empty() {
			// no data in either direction: lengthen the sleep interval
			c.backoff.Backoff()
		}
		c.setState(types.DutySleep)
		c.postSelf(message{kind: msgDutyEvent})
	case !c.queue.Empty():
		c.backoff.Reset()
		if c.state != types.DutyTxData {
			c.timer.Disarm()
		}
		c.postSelf(message{kind: msgRemoveQueue})
	case c.state == types.DutyTxData:
		c.postSelf(message{kind: msgDutyEvent})
	}
}

// handleTxFailed processes a failed channel access or a missing ACK. The
// retry/CSMA helpers decide whether another attempt follows; only a final
// failure releases the radio and drops the frame.
func (c *Controller) handleTxFailed(ev types.RadioEvent) {
	if ev == types.EventTxMediumBusy {
		if c.csma.SendFailed() {
			return
		}
	} else {
		// the channel was won, the ACK never came
		c.csma.SendSucceeded()
	}
	if c.retry.SendFailed() {
		return
	}

	c.radioBusy = false
	c.counters.TxFailures++
	c.metrics.ObserveTxFailure()

	if c.state == types.DutyInit {
		if !c.dutyCycling && !c.sendingBeacon && !c.queue.Empty() {
			c.headFailed = true
			c.postSelf(message{kind: msgRemoveQueue})
		}
		return
	}

	switch {
	case c.state == types.DutyTxBeacon:
		c.timer.Disarm()
		c.setState(types.DutySleep)
		c.postSelf(message{kind: msgDutyEvent})
	case !c.queue.Empty():
		if c.state != types.DutyTxData {
			c.timer.Disarm()
		}
		c.headFailed = true
		c.postSelf(message{kind: msgRemoveQueue})
	case c.state == types.DutyTxData:
		c.postSelf(message{kind: msgDutyEvent})
	}
}
