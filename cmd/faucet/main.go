// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command faucet runs a slow consumer against a fast producer until
// interrupted, then drains what is left.
//
// Usage:
//
//	go run ./cmd/faucet -capacity 5 -produce-every 100ms -consume-every 500ms
//
// Press Ctrl-C to stop the producer; the consumer keeps going until the queue
// is empty.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/faucet"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"golang.org/x/sync/errgroup"
)

func main() {
	capacity := flag.Int("capacity", 5, "maximum queued items")
	produceEvery := flag.Duration("produce-every", 100*time.Millisecond, "delay between pushes")
	consumeEvery := flag.Duration("consume-every", 500*time.Millisecond, "processing time per item")
	limit := flag.Int("limit", 0, "cancel after this many pushes (0 = until interrupted)")
	flag.Parse()

	logger := stumpy.L.New(stumpy.L.WithStumpy(stumpy.WithWriter(os.Stdout)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := faucet.Build[int](faucet.NewBuilder(*capacity).Context(ctx))

	var g errgroup.Group
	g.Go(func() error {
		return produce(f.Clone(), f.Cancel, logger, *produceEvery, *limit)
	})
	g.Go(func() error {
		err := consume(f.Clone(), logger, *consumeEvery)
		if err != nil {
			f.Cancel() // release the producer
		}
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Err().Err(err).Log("faucet failed")
		stop()
		os.Exit(1)
	}

	logger.Info().Log("done")
}

func produce(p faucet.Producer[int], cancel func(), logger *logiface.Logger[*stumpy.Event], every time.Duration, limit int) error {
	for i := 1; ; i++ {
		if limit > 0 && i > limit {
			cancel()
		}
		if r := p.Push(i); r.IsBreak() {
			item, _ := r.Rejected()
			logger.Notice().Int("item", item).Log("rejected")
			return nil
		}
		time.Sleep(every)
	}
}

// consume logs every item until the faucet is drained. Items must arrive in
// the order produce pushed them; a gap or repeat is reported as an error.
func consume(f *faucet.Faucet[int], logger *logiface.Logger[*stumpy.Event], every time.Duration) error {
	want := 1
	for i := range f.All() {
		if i != want {
			return fmt.Errorf("consume: got item %d, want %d", i, want)
		}
		want++
		time.Sleep(every)
		status := "got"
		if f.IsCancelled() {
			status = "drain"
		}
		logger.Info().
			Str("status", status).
			Int("item", i).
			Int("waiting", f.Len()).
			Log("consumed")
	}
	return nil
}
