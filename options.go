// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet

import "context"

// Options configures faucet creation.
type Options struct {
	// Maximum queued elements
	capacity int

	// Cancellation source; at most one is set
	signal *Signal
	parent context.Context
}

// Builder creates faucets with fluent configuration.
//
// Example:
//
//	// Fresh signal, same as faucet.New
//	f := faucet.Build[Event](faucet.NewBuilder(64))
//
//	// Shared signal: one Cancel drains both faucets
//	sig := faucet.NewSignal()
//	a := faucet.Build[Request](faucet.NewBuilder(128).Signal(sig))
//	b := faucet.Build[Response](faucet.NewBuilder(128).Signal(sig))
//
//	// Drain when the process is interrupted
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	f := faucet.Build[Job](faucet.NewBuilder(16).Context(ctx))
type Builder struct {
	opts Options
}

// NewBuilder creates a faucet builder with the given capacity.
// Capacity is exact; it is not rounded.
//
// Panics if capacity < 1.
func NewBuilder(capacity int) *Builder {
	if capacity < 1 {
		panic("faucet: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Signal makes built faucets share sig. Replaces any earlier Context.
//
// Panics if sig is nil.
func (b *Builder) Signal(sig *Signal) *Builder {
	if sig == nil {
		panic("faucet: nil signal")
	}
	b.opts.signal = sig
	b.opts.parent = nil
	return b
}

// Context makes each built faucet cancelled when ctx is done. Every faucet
// gets its own signal derived from ctx, so cancelling one faucet leaves the
// others and ctx untouched. Replaces any earlier Signal.
//
// Panics if ctx is nil.
func (b *Builder) Context(ctx context.Context) *Builder {
	if ctx == nil {
		panic("faucet: nil parent context")
	}
	b.opts.parent = ctx
	b.opts.signal = nil
	return b
}

// Build creates a Faucet[T] from the builder's configuration.
//
// Signal source:
//
//	Signal(sig)  → sig, shared with every faucet built from b
//	Context(ctx) → SignalFromContext(ctx), one per faucet
//	neither      → NewSignal(), one per faucet
func Build[T any](b *Builder) *Faucet[T] {
	switch {
	case b.opts.signal != nil:
		return NewWithCancellation[T](b.opts.capacity, b.opts.signal)
	case b.opts.parent != nil:
		return NewWithCancellation[T](b.opts.capacity, SignalFromContext(b.opts.parent))
	default:
		return New[T](b.opts.capacity)
	}
}
