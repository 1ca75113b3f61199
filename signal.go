// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet

import "context"

// Signal is a one-shot, broadcast cancellation signal.
//
// Cancel fires it; firing is idempotent and permanent. Every goroutine
// selecting on Done is released at once, and Cancelled reports true from
// then on. A Signal may be shared by any number of faucets and other
// subsystems, so that one Cancel drains all of them.
//
// Signals compose with the standard library: [SignalFromContext] fires when a
// context is done, and [Signal.Context] yields a context cancelled with the
// signal.
type Signal struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignal creates an unfired signal with no parent.
func NewSignal() *Signal {
	return SignalFromContext(context.Background())
}

// SignalFromContext creates a signal that fires when parent is done or when
// Cancel is called, whichever happens first. Cancelling the signal does not
// cancel parent.
//
// Panics if parent is nil.
func SignalFromContext(parent context.Context) *Signal {
	if parent == nil {
		panic("faucet: nil parent context")
	}
	ctx, cancel := context.WithCancel(parent)
	return &Signal{ctx: ctx, cancel: cancel}
}

// Child creates a signal that fires together with s, and may also be
// cancelled on its own without affecting s.
func (s *Signal) Child() *Signal {
	return SignalFromContext(s.ctx)
}

// Cancel fires the signal. Calling it again, from any goroutine, has no
// further effect.
func (s *Signal) Cancel() {
	s.cancel()
}

// Cancelled reports whether the signal has fired. It never blocks.
//
// The answer comes from the context's own synchronization, which is
// sequentially consistent: a producer's in-flight increment cannot be
// reordered after it, nor a consumer's settled check before it.
func (s *Signal) Cancelled() bool {
	return s.ctx.Err() != nil
}

// Done returns a channel that is closed once the signal fires.
func (s *Signal) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Context returns a context that is cancelled when the signal fires.
func (s *Signal) Context() context.Context {
	return s.ctx
}
