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

// Package netdev defines the contract of an 802.15.4-style radio driver as
// consumed by the duty-MAC controller, and provides a simulated device for
// tests and the demo binary.
package netdev

import (
	"github.com/pkg/errors"

	"github.com/openthread/ot-dutymac/types"
)

// Errors returned by Device implementations.
var (
	ErrBusy        = errors.New("radio busy")
	ErrUnsupported = errors.New("option not supported")
	ErrBadValue    = errors.New("bad option value")
)

// EventListener receives radio events from a Device.
//
// EventISR may be raised from any goroutine (interrupt context) and must do
// O(1) work: set a flag, post a message. All other events are delivered
// synchronously from within Device.ISR(), on the goroutine that called it,
// in the order the driver produces them.
type EventListener interface {
	OnRadioEvent(ev types.RadioEvent)
}

// Device is an 802.15.4-style radio driver. All methods except ISR are
// non-blocking; TX outcomes and received frames are reported through the
// registered EventListener.
type Device interface {
	// Init performs one-shot initialization and registers the event
	// listener. Called from the MAC goroutine at startup.
	Init(l EventListener) error

	// Set sets a device option. The value type is option-specific.
	Set(opt types.NetOpt, value interface{}) error

	// Get reads a device option.
	Get(opt types.NetOpt) (interface{}, error)

	// ISR runs the driver's interrupt service routine. The driver may
	// invoke the event listener zero or more times before returning.
	ISR()

	// Send submits a data frame without taking ownership of its buffer.
	// Returns an error on immediate rejection; otherwise the outcome
	// arrives as a TX event.
	Send(frame *types.Frame, maybeBeacon bool) error

	// Resend is Send for a link-layer retry of the same frame.
	Resend(frame *types.Frame, maybeBeacon bool) error

	// SendBeacon submits a wake-up beacon (no payload).
	SendBeacon() error

	// Recv returns the received frame offered by EventRxComplete, or nil.
	Recv() *types.Frame
}

// IsReceiving reports whether the device is currently receiving a frame.
// A failing Get is treated as not-receiving.
func IsReceiving(dev Device) bool {
	v, err := dev.Get(types.OptState)
	if err != nil {
		return false
	}
	st, ok := v.(types.DeviceState)
	return ok && st == types.DeviceStateRx
}
