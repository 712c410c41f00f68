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
	"github.com/openthread/ot-dutymac/types"
)

// txQueue is the bounded FIFO of frames awaiting transmission. The queue owns
// each enqueued frame until it is dropped. Only the head may be handed to the
// radio, and the head never changes while a transmission is in flight. Only
// the MAC goroutine touches the queue.
type txQueue struct {
	frames []*types.Frame
	cap    int
}

func newTxQueue(capacity int) *txQueue {
	return &txQueue{
		frames: make([]*types.Frame, 0, capacity),
		cap:    capacity,
	}
}

// Enqueue appends frame, or returns ErrQueueFull leaving ownership with the
// caller.
func (q *txQueue) Enqueue(frame *types.Frame) error {
	if len(q.frames) >= q.cap {
		return ErrQueueFull
	}
	q.frames = append(q.frames, frame)
	return nil
}

// PeekHead returns the head frame without removing it, or nil.
func (q *txQueue) PeekHead() *types.Frame {
	if len(q.frames) == 0 {
		return nil
	}
	return q.frames[0]
}

// DropHead removes and returns the head frame; the caller releases it.
func (q *txQueue) DropHead() *types.Frame {
	if len(q.frames) == 0 {
		return nil
	}
	head := q.frames[0]
	q.frames[0] = nil
	q.frames = q.frames[1:]
	return head
}

func (q *txQueue) Len() int {
	return len(q.frames)
}

func (q *txQueue) Empty() bool {
	return len(q.frames) == 0
}

// Flush releases every queued frame. Called on shutdown.
func (q *txQueue) Flush() {
	for _, f := range q.frames {
		f.Release()
	}
	q.frames = q.frames[:0]
}
