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

package types

// RadioEvent is the event type a NetDevice reports to its registered
// listener. EventISR is raised from interrupt context and is rate-collapsed:
// raising it again before the MAC drains the device is a no-op. All other
// events are produced synchronously from within Device.ISR().
type RadioEvent uint8

const (
	EventISR               RadioEvent = 0
	EventRxPending         RadioEvent = 1
	EventRxComplete        RadioEvent = 2
	EventTxComplete        RadioEvent = 3
	EventTxCompletePending RadioEvent = 4
	EventTxMediumBusy      RadioEvent = 5
	EventTxNoAck           RadioEvent = 6
)

func (e RadioEvent) String() string {
	switch e {
	case EventISR:
		return "isr"
	case EventRxPending:
		return "rx-pending"
	case EventRxComplete:
		return "rx-complete"
	case EventTxComplete:
		return "tx-complete"
	case EventTxCompletePending:
		return "tx-complete-pending"
	case EventTxMediumBusy:
		return "tx-medium-busy"
	case EventTxNoAck:
		return "tx-noack"
	default:
		return "INVALID"
	}
}
