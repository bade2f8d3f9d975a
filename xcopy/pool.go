// pool.go - worker pool abstraction (spec §4.D)
//
// Workers are a fixed number of go-routines (one per CPU by default)
// that accept work submitted via a
// channel and invoke a caller-defined "work" function.
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package xcopy

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool fans a stream of Work items out to a fixed set of workers, each
// identified by its index for diagnostics. It is generic over the
// work payload so the same shape serves both the production driver
// (Work = Operation) and tests that want a narrower work item.
type Pool[Work any] struct {
	stopped atomic.Bool
	wg      sync.WaitGroup
	ch      chan Work

	ech  chan error
	ewg  sync.WaitGroup
	errs []error
}

// ErrPoolClosed names the error of submitting work after Close/Wait.
// Submit does not return it: it panics in that case.
var ErrPoolClosed = errors.New("xcopy: pool closed")

// NewPool creates a worker pool that invokes fp once per submitted
// Work item. fp's first argument is the worker's index, useful for
// attributing an error to a specific worker (Error.Worker).
func NewPool[Work any](nworkers int, fp func(worker int, w Work) error) *Pool[Work] {
	if nworkers <= 0 {
		nworkers = runtime.NumCPU()
	}

	p := &Pool[Work]{
		ch:   make(chan Work, nworkers),
		ech:  make(chan error, 1),
		errs: make([]error, 0, 1),
	}

	p.wg.Add(nworkers)
	for i := 0; i < nworkers; i++ {
		go func(worker int) {
			defer p.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					p.ech <- fmt.Errorf("xcopy: worker %d panic: %v", worker, r)
				}
			}()

			for w := range p.ch {
				if err := fp(worker, w); err != nil {
					p.ech <- err
				}
			}
		}(i)
	}

	p.ewg.Add(1)
	go func() {
		defer p.ewg.Done()
		for e := range p.ech {
			p.errs = append(p.errs, e)
		}
	}()

	return p
}

// Submit enqueues one unit of work. Panics if called after Close.
func (p *Pool[Work]) Submit(w Work) {
	if p.stopped.Load() {
		panic("xcopy: submit on a closed pool")
	}
	p.ch <- w
}

// Close signals that no more work is coming. Calls after the first
// are no-ops.
func (p *Pool[Work]) Close() {
	if p.stopped.Swap(true) {
		return
	}
	close(p.ch)
}

// Wait blocks until every worker has drained the queue, then returns
// the joined errors from all workers (nil if every operation
// succeeded). Must be called after Close.
func (p *Pool[Work]) Wait() error {
	p.wg.Wait()
	close(p.ech)
	p.ewg.Wait()
	if len(p.errs) > 0 {
		return errors.Join(p.errs...)
	}
	return nil
}
