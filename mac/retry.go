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

// Link-layer retry and CSMA/CA helpers. The controller consumes these
// through a narrow contract: Send starts the machinery, the SendSucceeded/
// SendFailed outcome calls report each TX event, and a SendFailed returning
// true means another attempt is already under way, so the radio-busy token
// must not be released yet.

package mac

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openthread/ot-dutymac/prng"
)

// 802.15.4 unslotted CSMA/CA and retry defaults.
const (
	defaultMaxFrameRetries = 3
)

// csmaSender schedules channel-access attempts with binary-exponential
// backoff. One submission at a time; the submit callback posts a
// LINK_RETRANSMIT message, it never touches the radio directly.
type csmaSender struct {
	clock       clockwork.Clock
	unitBackoff time.Duration
	minBE       uint
	maxBE       uint
	maxBackoffs int

	nb     int
	be     uint
	submit func()
}

func newCsmaSender(clock clockwork.Clock, cfg Config) *csmaSender {
	return &csmaSender{
		clock:       clock,
		unitBackoff: cfg.CsmaUnitBackoff,
		minBE:       cfg.CsmaMinBE,
		maxBE:       cfg.CsmaMaxBE,
		maxBackoffs: cfg.CsmaMaxBackoffs,
	}
}

// Send starts channel access for a new submission attempt.
func (s *csmaSender) Send(submit func()) {
	s.nb = 0
	s.be = s.minBE
	s.submit = submit
	s.scheduleAttempt()
}

// SendSucceeded reports that the attempt got onto the medium.
func (s *csmaSender) SendSucceeded() {
	s.submit = nil
}

// SendFailed reports a clear-channel failure. It returns true when another
// backoff attempt has been scheduled, false when CSMA gives up.
func (s *csmaSender) SendFailed() bool {
	if s.submit == nil {
		return false
	}
	s.nb++
	if s.nb > s.maxBackoffs {
		s.submit = nil
		return false
	}
	if s.be < s.maxBE {
		s.be++
	}
	s.scheduleAttempt()
	return true
}

func (s *csmaSender) scheduleAttempt() {
	delay := time.Duration(prng.CsmaBackoffUnits(s.be)) * s.unitBackoff
	submit := s.submit
	if delay == 0 {
		submit()
		return
	}
	s.clock.AfterFunc(delay, submit)
}

// retrySender drives link-layer retransmissions of one frame. Each attempt
// goes through a fresh CSMA round.
type retrySender struct {
	remaining int
	attempt   func(rexmit bool)
}

// Send starts transmission of a new frame with the given retry limit;
// limit < 0 selects the default.
func (r *retrySender) Send(limit int, attempt func(rexmit bool)) {
	if limit < 0 {
		limit = defaultMaxFrameRetries
	}
	r.remaining = limit
	r.attempt = attempt
	attempt(false)
}

// SendSucceeded reports frame acknowledgement.
func (r *retrySender) SendSucceeded() {
	r.attempt = nil
}

// SendFailed reports a failed attempt (no ACK, or CSMA gave up). It returns
// true when a retransmission has been started, false when the frame is
// abandoned.
func (r *retrySender) SendFailed() bool {
	if r.attempt == nil || r.remaining <= 0 {
		return false
	}
	r.remaining--
	r.attempt(true)
	return true
}
