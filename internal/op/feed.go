package op

import "sync"

// feedCapacity bounds the in-flight message buffer. The owner drains every UI
// tick, so in practice the buffer stays nearly empty; if a step produces a
// burst larger than the buffer, the worker blocks on send until the owner
// drains or tears the handle down. Teardown closes the feed, which unblocks
// any pending send with a failure result.
const feedCapacity = 512

// feed is the single-producer, single-consumer ordered message stream between
// a worker goroutine and its owner. Sends report whether the owner side still
// exists; a failed send means the worker must stop immediately.
type feed struct {
	ch        chan Message
	closed    chan struct{}
	closeOnce sync.Once
}

func newFeed() *feed {
	return &feed{
		ch:     make(chan Message, feedCapacity),
		closed: make(chan struct{}),
	}
}

// send enqueues msg in FIFO order. It returns false once the feed has been
// closed by the owner, including while blocked on a full buffer.
func (f *feed) send(msg Message) bool {
	select {
	case <-f.closed:
		return false
	default:
	}
	select {
	case f.ch <- msg:
		return true
	case <-f.closed:
		return false
	}
}

// tryRecv performs a non-blocking receive.
func (f *feed) tryRecv() (Message, bool) {
	select {
	case msg := <-f.ch:
		return msg, true
	default:
		return nil, false
	}
}

// close marks the owner side gone. Idempotent.
func (f *feed) close() {
	f.closeOnce.Do(func() {
		close(f.closed)
	})
}

func (f *feed) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}
