// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package faucet_test

import (
	"fmt"
	"sync"
	"testing"

	"code.hybscloud.com/faucet"
	"code.hybscloud.com/spin"
)

// =============================================================================
// Limited Baselines
// =============================================================================

func BenchmarkLimited_SingleOp(b *testing.B) {
	q := faucet.NewLimited[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkLimited_Parallel(b *testing.B) {
	skipBenchIfRace(b)
	q := faucet.NewLimited[int](1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		sw := spin.Wait{}
		i := 0
		for pb.Next() {
			v := i
			for q.Enqueue(&v) != nil {
				if _, err := q.Dequeue(); err == nil {
					break
				}
				sw.Once()
			}
			sw.Reset()
			q.Dequeue()
			i++
		}
	})
}

// =============================================================================
// Faucet Benchmarks
// =============================================================================

func BenchmarkFaucet_SingleOp(b *testing.B) {
	f := faucet.New[int](1024)

	b.ResetTimer()
	for i := range b.N {
		f.Push(i)
		f.Next()
	}
}

func BenchmarkFaucet_TrySingleOp(b *testing.B) {
	f := faucet.New[int](1024)

	b.ResetTimer()
	for i := range b.N {
		f.TryPush(i)
		f.TryNext()
	}
}

// BenchmarkFaucet_ContentionLevels measures blocking Push/Next throughput
// with equal producer and consumer counts and a shutdown at the end.
func BenchmarkFaucet_ContentionLevels(b *testing.B) {
	skipBenchIfRace(b)
	workerCounts := []int{2, 4, 8, 16}

	for _, workers := range workerCounts {
		b.Run(fmt.Sprintf("Workers%d", workers), func(b *testing.B) {
			f := faucet.New[int](64)
			numProducers := max(workers/2, 1)
			numConsumers := max(workers-numProducers, 1)
			opsPerProducer := max(b.N/numProducers, 1)

			b.ResetTimer()

			var producerWg sync.WaitGroup
			var consumerWg sync.WaitGroup

			for range numConsumers {
				consumerWg.Add(1)
				go func(c faucet.Consumer[int]) {
					defer consumerWg.Done()
					for {
						if _, ok := c.Next(); !ok {
							return
						}
					}
				}(f.Clone())
			}

			for p := range numProducers {
				producerWg.Add(1)
				go func(id int, p faucet.Producer[int]) {
					defer producerWg.Done()
					base := id * opsPerProducer
					for i := range opsPerProducer {
						if p.Push(base + i).IsBreak() {
							return
						}
					}
				}(p, f.Clone())
			}

			producerWg.Wait()
			f.Cancel()
			consumerWg.Wait()
		})
	}
}

// BenchmarkFaucet_Capacity measures a single producer and consumer across
// capacities, from a rendezvous-like faucet of one to a deep buffer.
func BenchmarkFaucet_Capacity(b *testing.B) {
	skipBenchIfRace(b)
	for _, capacity := range []int{1, 16, 1024} {
		b.Run(fmt.Sprintf("Cap%d", capacity), func(b *testing.B) {
			f := faucet.New[int](capacity)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for range f.All() {
				}
			}()

			b.ResetTimer()
			for i := range b.N {
				f.Push(i)
			}
			f.Cancel()
			<-done
		})
	}
}

func skipBenchIfRace(b *testing.B) {
	b.Helper()
	if faucet.RaceEnabled {
		b.Skip("skip: cross-goroutine handoff through atomix ring slots")
	}
}
