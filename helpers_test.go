// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet_test

import (
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/faucet"
	"code.hybscloud.com/iox"
)

// =============================================================================
// Test Helpers
// =============================================================================

// blockWindow is how long an operation must stay pending to count as blocked.
const blockWindow = 50 * time.Millisecond

// settleTimeout bounds every wait for an operation that must complete.
const settleTimeout = 5 * time.Second

// skipIfRace skips tests that hand elements between goroutines. Ring slots
// are published through atomix sequences, which the race detector cannot see,
// so it reports the slot copy itself. Tests that only cancel or reject stay on.
func skipIfRace(t *testing.T) {
	t.Helper()
	if faucet.RaceEnabled {
		t.Skip("skip: cross-goroutine handoff through atomix ring slots")
	}
}

// retryWithTimeout retries f until it returns true or timeout expires.
// Reports failure with the given message if timeout is reached.
func retryWithTimeout(t *testing.T, timeout time.Duration, f func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s", timeout, msg)
		}
		backoff.Wait()
	}
}

// waitForCount waits until counter reaches target or timeout expires.
func waitForCount(t *testing.T, timeout time.Duration, counter *atomix.Int64, target int64, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for counter.Load() < target {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s (got %d, want %d)", timeout, msg, counter.Load(), target)
		}
		backoff.Wait()
	}
}

// async runs f in a goroutine and returns a channel receiving its result.
func async[R any](f func() R) <-chan R {
	ch := make(chan R, 1)
	go func() { ch <- f() }()
	return ch
}

// expectPending fails if ch delivers within blockWindow.
func expectPending[R any](t *testing.T, ch <-chan R, msg string) {
	t.Helper()
	select {
	case r := <-ch:
		t.Fatalf("%s: completed with %v, want blocked", msg, r)
	case <-time.After(blockWindow):
	}
}

// expectResult waits up to settleTimeout for ch to deliver.
func expectResult[R any](t *testing.T, ch <-chan R, msg string) R {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(settleTimeout):
		t.Fatalf("timeout after %v: %s", settleTimeout, msg)
		panic("unreachable")
	}
}

// popResult bundles the two results of Next for async.
type popResult[T any] struct {
	elem T
	ok   bool
}

func nextAsync[T any](f *faucet.Faucet[T]) <-chan popResult[T] {
	return async(func() popResult[T] {
		v, ok := f.Next()
		return popResult[T]{v, ok}
	})
}

func pushAsync[T any](f *faucet.Faucet[T], elem T) <-chan faucet.PushResult[T] {
	return async(func() faucet.PushResult[T] {
		return f.Push(elem)
	})
}

// mustNext calls Next on an element known to be queued and fails unless it
// returns want.
func mustNext[T comparable](t *testing.T, f *faucet.Faucet[T], want T) {
	t.Helper()
	got, ok := f.Next()
	if !ok {
		t.Fatalf("Next: got end of stream, want %v", want)
	}
	if got != want {
		t.Fatalf("Next: got %v, want %v", got, want)
	}
}

// mustEnd calls Next on a cancelled, drained faucet and fails unless it
// reports end of stream.
func mustEnd[T any](t *testing.T, f *faucet.Faucet[T]) {
	t.Helper()
	if got, ok := f.Next(); ok {
		t.Fatalf("Next: got %v, want end of stream", got)
	}
}

// mustPush calls Push and fails unless the element is enqueued.
func mustPush[T any](t *testing.T, f *faucet.Faucet[T], elem T) {
	t.Helper()
	if r := f.Push(elem); r.Outcome() != faucet.Enqueued {
		t.Fatalf("Push(%v): got %v, want enqueued", elem, r.Outcome())
	}
}
