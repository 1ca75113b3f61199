// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet

import "iter"

// Faucet is a bounded MPMC queue that can be drained after completion is
// signaled.
//
//   - Push waits for space while the faucet is open (backpressure)
//   - Once the signal fires, Push is rejected and hands the element back
//   - Next keeps returning queued elements after the signal fires, and
//     reports the end only when the queue is also empty
//
// A Faucet is a pair of shared handles: the queue and the signal. Clone copies
// the pair, never the contents, so any number of producers and consumers may
// each hold their own clone. Passing the same *Faucet around works equally
// well.
//
// Example:
//
//	f := faucet.New[int](5)
//
//	go func() { // Producer
//	    for i := 1; ; i++ {
//	        if f.Push(i).IsBreak() {
//	            return
//	        }
//	    }
//	}()
//
//	go func() { // Consumer
//	    for v := range f.All() {
//	        process(v)
//	    }
//	}()
//
//	f.Cancel() // Producer stops; consumer drains, then its loop ends
type Faucet[T any] struct {
	queue  *Limited[T]
	signal *Signal
}

// New creates a faucet holding at most capacity elements, with a fresh
// signal owned by this faucet and its clones.
// Panics if capacity < 1.
func New[T any](capacity int) *Faucet[T] {
	return NewWithCancellation[T](capacity, NewSignal())
}

// NewWithCancellation creates a faucet holding at most capacity elements that
// is cancelled by sig.
//
// Sharing sig with other faucets or subsystems coordinates their shutdown:
// cancelling it anywhere stops all pushes and lets every faucet drain.
// Cancelling the faucet cancels sig as well; pass sig.Child() to keep the
// cancellation one-way.
//
// Panics if capacity < 1 or sig is nil.
func NewWithCancellation[T any](capacity int, sig *Signal) *Faucet[T] {
	if sig == nil {
		panic("faucet: nil signal")
	}
	return &Faucet[T]{
		queue:  NewLimited[T](capacity),
		signal: sig,
	}
}

// Clone returns a new handle sharing the queue and signal of f.
func (f *Faucet[T]) Clone() *Faucet[T] {
	return &Faucet[T]{queue: f.queue, signal: f.signal}
}

// Push enqueues elem, waiting for space if the faucet is full.
//
// If the signal has already fired, Push returns a Rejected result carrying
// elem without waiting. If the signal fires while Push waits, the wait is
// abandoned and elem is rejected. A Push that observes the signal fired never
// enqueues; one admitted before it fired is always delivered.
func (f *Faucet[T]) Push(elem T) PushResult[T] {
	q := f.queue
	for {
		space := q.space.wait()
		switch err := f.offer(&elem); err {
		case nil:
			return PushResult[T]{outcome: Enqueued}
		case ErrCancelled:
			return PushResult[T]{item: elem, outcome: Rejected}
		}
		select {
		case <-space:
		case <-f.signal.Done():
		}
	}
}

// TryPush enqueues elem without waiting.
// Returns ErrCancelled if the signal has fired, ErrWouldBlock if the faucet
// is full.
func (f *Faucet[T]) TryPush(elem T) error {
	return f.offer(&elem)
}

// offer makes one enqueue attempt. The signal check and the insertion both
// happen inside the queue's in-flight bracket: a consumer declares the faucet
// drained only after seeing the signal fired and no bracket open, so an
// element admitted before the signal fired is always visible to it.
func (f *Faucet[T]) offer(elem *T) error {
	q := f.queue
	q.enter()
	var err error
	if f.signal.Cancelled() {
		err = ErrCancelled
	} else {
		err = q.Enqueue(elem)
	}
	if q.leave() && f.signal.Cancelled() {
		q.items.notify()
	}
	return err
}

// Next removes and returns the oldest element, waiting while the faucet is
// empty.
//
// Queued elements are returned whether or not the signal has fired.
// ok is false only once the signal has fired and the queue is drained; every
// later call on any clone then returns ok == false as well.
func (f *Faucet[T]) Next() (elem T, ok bool) {
	q := f.queue
	for {
		items := q.items.wait()
		if elem, err := q.Dequeue(); err == nil {
			return elem, true
		}

		if !f.signal.Cancelled() {
			select {
			case <-items:
			case <-f.signal.Done():
			}
			continue
		}

		if q.settled() {
			// Every producer admitted before the signal has published.
			elem, err := q.Dequeue()
			return elem, err == nil
		}
		<-items
	}
}

// TryNext removes and returns the oldest element without waiting.
// ok is false if the faucet is currently empty.
func (f *Faucet[T]) TryNext() (elem T, ok bool) {
	elem, err := f.queue.Dequeue()
	return elem, err == nil
}

// All returns an iterator over the elements of f, in the order Next returns
// them. Iteration ends once the faucet is cancelled and drained.
func (f *Faucet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elem, ok := f.Next()
			if !ok || !yield(elem) {
				return
			}
		}
	}
}

// Cancel fires the faucet's signal: pushes are rejected from now on, and
// consumers drain what is queued. Cancel is idempotent and does not touch the
// queued elements.
func (f *Faucet[T]) Cancel() {
	f.signal.Cancel()
}

// End is an alias of Cancel.
func (f *Faucet[T]) End() {
	f.Cancel()
}

// IsCancelled reports whether the signal has fired.
func (f *Faucet[T]) IsCancelled() bool {
	return f.signal.Cancelled()
}

// IsFinished reports whether the faucet is cancelled and has nothing left to
// drain.
func (f *Faucet[T]) IsFinished() bool {
	return f.signal.Cancelled() && f.queue.settled() && f.queue.Len() == 0
}

// IsPending reports whether the faucet still accepts elements, or is
// cancelled but not yet drained.
func (f *Faucet[T]) IsPending() bool {
	return !f.IsFinished()
}

// Len returns the number of queued elements. Advisory only.
func (f *Faucet[T]) Len() int {
	return f.queue.Len()
}

// Cap returns the maximum number of queued elements.
func (f *Faucet[T]) Cap() int {
	return f.queue.Cap()
}

// Signal returns the signal that cancels f.
func (f *Faucet[T]) Signal() *Signal {
	return f.signal
}
