// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package faucet provides a bounded, back-pressured MPMC queue that can be
// drained after completion is signaled.
//
// A [Faucet] combines a bounded queue with a cancellation [Signal]:
//
//   - Push waits while the queue is full (backpressure)
//   - Cancel stops all further pushes; rejected elements are handed back
//   - Next keeps draining queued elements after Cancel, and reports the end
//     only when the queue is also empty
//
// # Quick Start
//
//	f := faucet.New[Job](64)
//
//	// Producer
//	go func() {
//	    for job := range incoming {
//	        if r := f.Push(job); r.IsBreak() {
//	            job, _ := r.Rejected()
//	            log.Printf("dropped %v", job)
//	            return
//	        }
//	    }
//	}()
//
//	// Consumer
//	go func() {
//	    for job := range f.All() {
//	        job.Run()
//	    }
//	    // cancelled and drained
//	}()
//
//	// Shutdown
//	f.Cancel()
//
// # Coordinated Shutdown
//
// Faucets created with the same [Signal] are cancelled together, which lets
// one event (typically SIGINT) drain several pipelines at once:
//
//	sig := faucet.NewSignal()
//	requests := faucet.NewWithCancellation[Request](128, sig)
//	audit := faucet.NewWithCancellation[Record](1024, sig)
//
//	sig.Cancel() // both stop accepting, both drain
//
// A signal can also follow a context, for example one from
// [os/signal.NotifyContext]:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	f := faucet.NewWithCancellation[Job](64, faucet.SignalFromContext(ctx))
//
// [Signal.Child] derives a signal that fires with its parent but can also be
// cancelled alone, for subsystems that must stop early without stopping the
// rest.
//
// # Handles
//
// A Faucet is a pair of shared handles (queue and signal). [Faucet.Clone]
// returns another handle to the same pair; it never copies queued elements.
// Producer and consumer code can take the narrower [Producer] and [Consumer]
// interfaces instead of *Faucet.
//
// # Non-blocking Operations
//
// [Faucet.TryPush] and [Faucet.TryNext] never wait. TryPush reports why an
// element was not accepted:
//
//	switch err := f.TryPush(v); {
//	case err == nil:
//	    // enqueued
//	case faucet.IsWouldBlock(err):
//	    // full - handle backpressure
//	case faucet.IsCancelled(err):
//	    // cancelled - stop producing
//	}
//
// [ErrWouldBlock] is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency; [IsSemantic] and [IsNonFailure] delegate to iox.
//
// # Guarantees
//
//   - An element for which Push returned Enqueued is returned by exactly one
//     Next or TryNext call.
//   - A Push that observes the signal fired never enqueues, including one
//     that was waiting for space when it fired. A Push admitted just before
//     the signal fired may still enqueue, and its element is delivered.
//   - Enqueued elements are returned in FIFO order.
//   - Once Next reports the end on any clone, it does so on every clone
//     from then on.
//   - Cancel is idempotent; the signal never resets.
//
// Which of several waiting producers or consumers is served first is
// unspecified: wakeups are broadcast and the released goroutines race.
//
// # Capacity and Length
//
// Capacity is exact and must be at least 1. [Faucet.Len] and [Faucet.Cap]
// are snapshots for metrics and UX; under concurrency Len is stale as soon as
// it returns and must not be used for synchronization.
//
// # Race Detection
//
// The queue publishes elements through per-slot sequence numbers with
// acquire-release ordering from [code.hybscloud.com/atomix]. Go's race
// detector cannot observe that synchronization and may report false
// positives on slot data; concurrent tests are skipped when [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package faucet
