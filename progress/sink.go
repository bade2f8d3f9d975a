// sink.go - the buffered, deduplicating progress sink used by the CLI
// and available to any library caller (spec §4.B)
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

package progress

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// BufferingSink accumulates Copied byte counts and only forwards an
// update once the running total has advanced by at least blockSize
// since the last forwarded update, so a swarm of workers copying small
// chunks doesn't flood the receive side with one message per chunk.
// Size and ErrorUpdate are always forwarded immediately.
//
// Send never blocks: updates are appended to an unbounded internal
// queue and a single feeder goroutine drains it into the channel
// Receive returns, the same non-blocking-producer shape as the
// teacher's work-pool error harvester.
type BufferingSink struct {
	blockSize uint64
	sent      atomic.Uint64 // bytes reported to the consumer so far
	pending   atomic.Uint64 // bytes copied so far, reported or not

	mu   sync.Mutex
	cond *sync.Cond
	q    *list.List
	done chan struct{}

	ch chan Update
}

// NewBufferingSink returns a sink that dedupes Copied updates at
// blockSize granularity. A blockSize of 0 forwards every update
// unmodified.
func NewBufferingSink(blockSize uint64) *BufferingSink {
	s := &BufferingSink{
		blockSize: blockSize,
		q:         list.New(),
		done:      make(chan struct{}),
		ch:        make(chan Update, 64),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.feed()
	return s
}

// Send implements Sink.
func (s *BufferingSink) Send(u Update) error {
	if u.Kind == Copied && s.blockSize > 0 {
		total := s.pending.Add(u.Bytes)
		last := s.sent.Load()
		if total <= last || total-last < s.blockSize {
			return nil
		}
		if !s.sent.CompareAndSwap(last, total) {
			// another goroutine already crossed this threshold
			return nil
		}
		u = Update{Kind: Copied, Bytes: total - last}
	}
	s.push(u)
	return nil
}

// Receive returns the channel updates are delivered on. Callers must
// drain it; Close stops feeding it and closes it once drained.
func (s *BufferingSink) Receive() <-chan Update {
	return s.ch
}

// Close flushes any Copied bytes withheld by dedup that never crossed
// a full blockSize boundary, stops the feeder goroutine once the
// queue drains, then closes the receive channel.
func (s *BufferingSink) Close() {
	for {
		last := s.sent.Load()
		total := s.pending.Load()
		if total <= last {
			break
		}
		if s.sent.CompareAndSwap(last, total) {
			s.push(Update{Kind: Copied, Bytes: total - last})
			break
		}
	}

	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *BufferingSink) push(u Update) {
	s.mu.Lock()
	s.q.PushBack(u)
	s.cond.Signal()
	s.mu.Unlock()
}

func (s *BufferingSink) feed() {
	defer close(s.ch)
	for {
		s.mu.Lock()
		for s.q.Len() == 0 {
			select {
			case <-s.done:
				s.mu.Unlock()
				return
			default:
			}
			s.cond.Wait()
		}
		front := s.q.Front()
		s.q.Remove(front)
		s.mu.Unlock()

		s.ch <- front.Value.(Update)
	}
}
