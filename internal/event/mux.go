package event

import (
	"context"
	"errors"
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// ErrClosed is returned by Next once the multiplexer is closed and drained.
var ErrClosed = errors.New("event multiplexer closed")

// Multiplexer is an unbounded multi-producer, single-consumer FIFO of events.
// Producers never block; the consumer blocks in Next until an event arrives.
type Multiplexer struct {
	mu     sync.Mutex
	queue  *linkedlistqueue.Queue
	closed bool
	// notify holds at most one wake-up for the consumer.
	notify chan struct{}
}

// New creates an empty multiplexer.
func New() *Multiplexer {
	return &Multiplexer{
		queue:  linkedlistqueue.New(),
		notify: make(chan struct{}, 1),
	}
}

// Sender returns a producer handle. Handles are cheap values and safe for
// concurrent use.
func (m *Multiplexer) Sender() Sender {
	return Sender{mux: m}
}

// Next blocks until an event is available, ctx is done, or the multiplexer
// is closed with nothing left to drain.
func (m *Multiplexer) Next(ctx context.Context) (Event, error) {
	for {
		m.mu.Lock()
		if v, ok := m.queue.Dequeue(); ok {
			m.mu.Unlock()
			return v.(Event), nil
		}
		closed := m.closed
		m.mu.Unlock()
		if closed {
			return nil, ErrClosed
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.notify:
		}
	}
}

// TryNext dequeues an event without blocking.
func (m *Multiplexer) TryNext() (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.queue.Dequeue()
	if !ok {
		return nil, false
	}
	return v.(Event), true
}

// Len reports the number of queued events.
func (m *Multiplexer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Size()
}

// Close stops accepting events. Queued events can still be drained.
func (m *Multiplexer) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.wake()
}

func (m *Multiplexer) push(ev Event) bool {
	if ev == nil {
		return false
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue.Enqueue(ev)
	m.mu.Unlock()
	m.wake()
	return true
}

func (m *Multiplexer) wake() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Sender enqueues events into a Multiplexer.
type Sender struct {
	mux *Multiplexer
}

// Send enqueues ev. It reports false when the multiplexer is closed or the
// sender is the zero value.
func (s Sender) Send(ev Event) bool {
	if s.mux == nil {
		return false
	}
	return s.mux.push(ev)
}
