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

// FrameType tags a frame for upper-layer dispatch, in the way gnrc nettypes
// demultiplex received packets. The MAC forwards payloads opaquely; the type
// is the only field it reads.
type FrameType uint8

const (
	FrameTypeUndef FrameType = 0
	FrameTypeData  FrameType = 1
	FrameTypeMle   FrameType = 2 // Thread Mesh Link Establishment
	FrameTypeIPv6  FrameType = 3
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeUndef:
		return "undef"
	case FrameTypeData:
		return "data"
	case FrameTypeMle:
		return "mle"
	case FrameTypeIPv6:
		return "ipv6"
	default:
		return "INVALID"
	}
}

// Frame is an opaque link-layer frame handle. Whoever holds the frame owns
// its buffer: the TX queue from Enqueue until terminal TX outcome, the
// receiving listener after dispatch. Release returns the buffer and must be
// called exactly once by the final owner.
type Frame struct {
	Type    FrameType
	Payload []byte

	onRelease func(*Frame)
	released  bool
}

// NewFrame wraps payload into a Frame of the given type.
func NewFrame(t FrameType, payload []byte) *Frame {
	return &Frame{Type: t, Payload: payload}
}

// SetReleaseHook registers fn to run when the frame buffer is released.
// Used by buffer pools and by tests observing frame lifetimes.
func (f *Frame) SetReleaseHook(fn func(*Frame)) {
	f.onRelease = fn
}

// Release frees the frame buffer. Releasing twice is a no-op.
func (f *Frame) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	if f.onRelease != nil {
		f.onRelease(f)
	}
	f.Payload = nil
}

// Released reports whether the frame buffer was already released.
func (f *Frame) Released() bool {
	return f.released
}

// Len returns the payload length in bytes.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Payload)
}
