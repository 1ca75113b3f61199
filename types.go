// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet

// Queue is the non-blocking storage interface implemented by [Limited].
//
// Both operations return ErrWouldBlock when they cannot proceed (queue full
// or empty). Unlike lock-free queues that leave counting to the caller, Queue
// exposes Len: a faucet reports its backlog, and the count is maintained as
// part of admission anyway.
type Queue[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	Enqueue(elem *T) error

	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)

	Len() int
	Cap() int
}

// Producer is the sending half of a [Faucet].
//
// Producer code that should not be able to consume or cancel can accept a
// Producer instead of a *Faucet.
type Producer[T any] interface {
	// Push enqueues elem, waiting for space while the faucet is open.
	// Returns a Rejected result carrying elem once the faucet is cancelled.
	Push(elem T) PushResult[T]

	// TryPush enqueues elem without waiting.
	// Returns ErrCancelled or ErrWouldBlock when elem was not enqueued.
	TryPush(elem T) error

	IsCancelled() bool
}

// Consumer is the receiving half of a [Faucet].
type Consumer[T any] interface {
	// Next returns the next element, waiting while the faucet is empty but
	// not cancelled. Returns ok == false only once the faucet is cancelled
	// and fully drained.
	Next() (elem T, ok bool)

	// TryNext returns the next element without waiting.
	TryNext() (elem T, ok bool)

	IsFinished() bool
}

// Outcome classifies the result of [Faucet.Push].
type Outcome uint8

const (
	// Enqueued means the element was accepted and will be delivered to
	// exactly one consumer.
	Enqueued Outcome = iota
	// Rejected means the faucet was cancelled and the element was not
	// accepted. It is handed back in [PushResult].
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Enqueued:
		return "enqueued"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// PushResult is the outcome of [Faucet.Push].
//
// A rejected push is a normal result, not a failure: the element comes back
// to the caller, who decides whether to drop it, log it, or hand it to
// another sink.
//
//	for {
//	    if r := f.Push(next()); r.IsBreak() {
//	        item, _ := r.Rejected()
//	        requeue(item)
//	        break
//	    }
//	}
type PushResult[T any] struct {
	item    T
	outcome Outcome
}

// Outcome returns whether the element was enqueued or rejected.
func (r PushResult[T]) Outcome() Outcome { return r.outcome }

// Rejected returns the element handed back by a rejected push.
// ok is false if the element was enqueued.
func (r PushResult[T]) Rejected() (elem T, ok bool) {
	return r.item, r.outcome == Rejected
}

// IsBreak reports whether a producer loop should stop: the faucet is
// cancelled and no further push will be accepted.
func (r PushResult[T]) IsBreak() bool { return r.outcome == Rejected }

// IsContinue reports whether the element was enqueued.
func (r PushResult[T]) IsContinue() bool { return r.outcome == Enqueued }

// Err returns ErrCancelled for a rejected push, nil otherwise.
func (r PushResult[T]) Err() error {
	if r.outcome == Rejected {
		return ErrCancelled
	}
	return nil
}
