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

// Device option identifiers and option values, modeled after the netopt
// option space of 802.15.4 radio drivers.

package types

// NetOpt identifies a device option accessed through Set/Get.
type NetOpt int

const (
	OptState     NetOpt = 0 // radio power/activity state (DeviceState)
	OptSrcLen    NetOpt = 1 // source address length in bytes (uint16)
	OptDutyCycle NetOpt = 2 // duty-cycling enable (bool); owned by the MAC, never forwarded
	OptChannel   NetOpt = 3 // radio channel number (uint8)
	OptTxPower   NetOpt = 4 // transmit power in dBm (int8)
)

func (o NetOpt) String() string {
	switch o {
	case OptState:
		return "state"
	case OptSrcLen:
		return "src-len"
	case OptDutyCycle:
		return "dutycycle"
	case OptChannel:
		return "channel"
	case OptTxPower:
		return "txpower"
	default:
		return "INVALID"
	}
}

// DeviceState is the power/activity state of the radio, set and read through
// OptState.
type DeviceState int

const (
	DeviceStateSleep DeviceState = 0
	DeviceStateIdle  DeviceState = 1
	DeviceStateRx    DeviceState = 2
)

func (s DeviceState) String() string {
	switch s {
	case DeviceStateSleep:
		return "sleep"
	case DeviceStateIdle:
		return "idle"
	case DeviceStateRx:
		return "rx"
	default:
		return "INVALID"
	}
}
