// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// ring is a CAS-based multi-producer multi-consumer circular buffer.
//
// Each slot carries a sequence number:
//   - seq == pos:        free for the producer claiming pos
//   - seq == pos+1:      published, ready for the consumer claiming pos
//   - seq == pos+size:   released, free for the producer of the next lap
//
// Sequence validation makes the ring ABA safe for any element type. The ring
// itself has no notion of logical capacity; [Limited] bounds admission and
// keeps the ring from ever being asked to hold more than its slots.
type ring[T any] struct {
	_     pad
	tail  atomix.Uint64 // Producer position
	_     pad
	head  atomix.Uint64 // Consumer position
	_     pad
	slots []ringSlot[T]
	mask  uint64
	size  uint64
}

type ringSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// newRing allocates a ring with at least n slots.
// Slot count rounds up to the next power of 2 with a minimum of 2, since a
// single slot cannot tell "published" from "free for the next lap".
func newRing[T any](n int) *ring[T] {
	size := uint64(roundToPow2(n))
	r := &ring[T]{
		slots: make([]ringSlot[T], size),
		mask:  size - 1,
		size:  size,
	}
	for i := uint64(0); i < size; i++ {
		r.slots[i].seq.StoreRelaxed(i)
	}
	return r
}

// enqueue publishes *elem into the next free slot.
// Returns ErrWouldBlock if the slot for the next position has not been
// released by its consumer yet.
//
// Callers go through [Limited.Enqueue], which reserves admission in its length
// counter first. A reserved producer is therefore never refused for lack of
// room: ErrWouldBlock only means a consumer of the previous lap is still
// copying out of the slot, and the producer retries until it finishes.
func (r *ring[T]) enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := r.tail.LoadAcquire()
		slot := &r.slots[tail&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			if r.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = *elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// dequeue removes the oldest published element. The caller releases the
// element's admission in [Limited] afterwards.
// Returns (zero-value, ErrWouldBlock) when the slot at head is not published,
// which covers both an empty ring and a producer that claimed the position
// but has not stored into it yet.
func (r *ring[T]) dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := r.head.LoadAcquire()
		slot := &r.slots[head&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			if r.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + r.size)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// roundToPow2 rounds n up to the next power of 2, minimum 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
