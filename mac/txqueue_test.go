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
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/openthread/ot-dutymac/types"
)

func TestTxQueue_Enqueue(t *testing.T) {
	q := newTxQueue(2)
	assert.True(t, q.Empty())

	f1 := types.NewFrame(types.FrameTypeData, []byte{1})
	f2 := types.NewFrame(types.FrameTypeData, []byte{2})
	f3 := types.NewFrame(types.FrameTypeData, []byte{3})

	assert.NoError(t, q.Enqueue(f1))
	assert.NoError(t, q.Enqueue(f2))
	assert.ErrorIs(t, q.Enqueue(f3), ErrQueueFull)
	assert.Equal(t, 2, q.Len())
	assert.False(t, f3.Released())
}

func TestTxQueue_HeadStable(t *testing.T) {
	q := newTxQueue(4)
	f1 := types.NewFrame(types.FrameTypeData, []byte{1})
	f2 := types.NewFrame(types.FrameTypeData, []byte{2})

	assert.NoError(t, q.Enqueue(f1))
	assert.Same(t, f1, q.PeekHead())
	assert.NoError(t, q.Enqueue(f2))
	assert.Same(t, f1, q.PeekHead())

	assert.Same(t, f1, q.DropHead())
	assert.Same(t, f2, q.PeekHead())
	assert.Same(t, f2, q.DropHead())
	assert.Nil(t, q.DropHead())
	assert.True(t, q.Empty())
}

func TestTxQueue_Flush(t *testing.T) {
	q := newTxQueue(8)
	released := 0
	for i := 0; i < 5; i++ {
		f := types.NewFrame(types.FrameTypeData, []byte{byte(i)})
		f.SetReleaseHook(func(*types.Frame) { released++ })
		assert.NoError(t, q.Enqueue(f))
	}
	q.Flush()
	assert.True(t, q.Empty())
	assert.Equal(t, 5, released)
}

// TestTxQueue_Fifo checks that any mix of enqueues and head drops preserves
// FIFO order and the capacity bound.
func TestTxQueue_Fifo(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		const capacity = 8
		q := newTxQueue(capacity)
		var model []*types.Frame

		steps := rapid.IntRange(1, 100).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "enqueue") {
				f := types.NewFrame(types.FrameTypeData, []byte{byte(i)})
				err := q.Enqueue(f)
				if len(model) < capacity {
					if err != nil {
						rt.Fatalf("unexpected enqueue error: %v", err)
					}
					model = append(model, f)
				} else if err == nil {
					rt.Fatalf("enqueue beyond capacity succeeded")
				}
			} else {
				head := q.DropHead()
				if len(model) == 0 {
					if head != nil {
						rt.Fatalf("drop on empty queue returned a frame")
					}
				} else {
					if head != model[0] {
						rt.Fatalf("head is not the oldest frame")
					}
					model = model[1:]
				}
			}
			if q.Len() != len(model) {
				rt.Fatalf("queue length %d, model %d", q.Len(), len(model))
			}
		}
	})
}
