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

// Package types defines the common types used across the duty-MAC stack.
package types

// DutyState is the state of the leaf-node duty-cycle state machine. Only the
// MAC goroutine mutates it.
type DutyState int

const (
	DutyInit               DutyState = 0 // duty-cycling disabled
	DutySleep              DutyState = 1 // radio off, waiting for the wake deadline
	DutyTxBeacon           DutyState = 2 // transmitting the wake-up beacon
	DutyTxData             DutyState = 3 // transmitting queued data after a wake
	DutyTxDataBeforeBeacon DutyState = 4 // draining the queue in the pre-beacon slot
	DutyListen             DutyState = 5 // idle listen window after activity
)

func (s DutyState) String() string {
	switch s {
	case DutyInit:
		return "init"
	case DutySleep:
		return "sleep"
	case DutyTxBeacon:
		return "tx-beacon"
	case DutyTxData:
		return "tx-data"
	case DutyTxDataBeforeBeacon:
		return "tx-data-before-beacon"
	case DutyListen:
		return "listen"
	default:
		return "INVALID"
	}
}

// RadioOn reports whether the radio is powered in state s. The controller
// keeps this observable through the last issued Set(OptState, ...).
func (s DutyState) RadioOn() bool {
	return s != DutyInit && s != DutySleep
}

// IEEE 802.15.4 source-address lengths. Duty-cycled leaves use the short
// address form for beacons and polls.
const (
	ShortAddrLen uint16 = 2
	LongAddrLen  uint16 = 8
)
