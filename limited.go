// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Limited is a bounded MPMC FIFO queue with an exact capacity.
//
// Enqueue and Dequeue are non-blocking and return [ErrWouldBlock] when the
// queue is full or empty. Limited is the storage behind [Faucet]: it also
// carries the wakeup events and the in-flight producer count that Faucet
// uses to build its blocking Push and Next, so that every clone of a Faucet
// coordinates through the same synchronization.
//
// Admission is counted in length before touching the ring, so Len never
// exceeds Cap even though the ring rounds its slot count up to a power of 2.
//
// Example:
//
//	q := faucet.NewLimited[int](3)
//	v := 7
//	if err := q.Enqueue(&v); faucet.IsWouldBlock(err) {
//	    // full
//	}
//	elem, err := q.Dequeue()
type Limited[T any] struct {
	_        pad
	length   atomix.Int64 // Admitted and not yet dequeued
	_        pad
	inflight atomix.Int64 // Faucet producers between signal check and insertion
	_        pad
	ring     *ring[T]
	capacity int64

	space event // notified after Dequeue frees a slot
	items event // notified after Enqueue publishes, or a drain check may succeed
}

// NewLimited creates a queue holding at most capacity elements.
// Panics if capacity < 1.
func NewLimited[T any](capacity int) *Limited[T] {
	if capacity < 1 {
		panic("faucet: capacity must be >= 1")
	}
	return &Limited[T]{
		ring:     newRing[T](capacity),
		capacity: int64(capacity),
	}
}

// Enqueue adds an element to the queue (non-blocking).
// The element is copied into the queue's internal buffer.
// Returns ErrWouldBlock if the queue holds Cap elements.
func (q *Limited[T]) Enqueue(elem *T) error {
	for {
		n := q.length.Load()
		if n >= q.capacity {
			return ErrWouldBlock
		}
		if q.length.CompareAndSwapAcqRel(n, n+1) {
			break
		}
	}

	// The reservation guarantees a slot; the ring only refuses while a
	// consumer of the previous lap is still copying out of it.
	sw := spin.Wait{}
	for q.ring.enqueue(elem) != nil {
		sw.Once()
	}
	q.items.notify()
	return nil
}

// Dequeue removes and returns the oldest element (non-blocking).
// Returns (zero-value, ErrWouldBlock) if no element is ready.
func (q *Limited[T]) Dequeue() (T, error) {
	elem, err := q.ring.dequeue()
	if err != nil {
		return elem, err
	}
	q.length.AddAcqRel(-1)
	q.space.notify()
	return elem, nil
}

// Len returns the number of elements admitted and not yet dequeued.
// The value is a snapshot and is stale as soon as it is returned.
func (q *Limited[T]) Len() int {
	n := q.length.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Cap returns the queue capacity.
func (q *Limited[T]) Cap() int {
	return int(q.capacity)
}

// enter marks a producer as in flight. Every enter is paired with leave.
//
// The in-flight count is only touched through read-modify-write operations.
// Together with the signal's lock they order a producer's enter before its
// signal check, and a consumer's signal check before its settled check, on
// weakly ordered CPUs as well.
func (q *Limited[T]) enter() {
	q.inflight.AddAcqRel(1)
}

// leave ends an in-flight bracket and reports whether it was the last one.
func (q *Limited[T]) leave() bool {
	return q.inflight.AddAcqRel(-1) == 0
}

// settled reports whether no producer is in flight.
// A relaxed load may be satisfied before an earlier signal check; Add(0) may not.
func (q *Limited[T]) settled() bool {
	return q.inflight.AddAcqRel(0) == 0
}
