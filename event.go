// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet

import "sync"

// event is a broadcast wakeup.
//
// A waiter calls wait before re-checking its condition and then blocks on the
// returned channel. Whoever changes the condition calls notify afterwards,
// which closes every channel handed out since the previous notify. Taking the
// channel before the re-check is what makes the pair free of lost wakeups.
//
// Wakeups are not FIFO-fair: all waiters are released and race again.
type event struct {
	mu      sync.Mutex
	ch      chan struct{}
	waiting bool
}

func (e *event) wait() <-chan struct{} {
	e.mu.Lock()
	if e.ch == nil {
		e.ch = make(chan struct{})
	}
	e.waiting = true
	ch := e.ch
	e.mu.Unlock()
	return ch
}

func (e *event) notify() {
	e.mu.Lock()
	if e.waiting {
		close(e.ch)
		e.ch = nil
		e.waiting = false
	}
	e.mu.Unlock()
}
