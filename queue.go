package frp

import "container/heap"

// reader is a first-class computation registered as a dependent of one or
// more behaviors or events, re-executed once per propagation cycle when a
// dependency changes.
type reader struct {
	startTS *Timestamp
	endTS   *Timestamp
	run     func()
	// enqueued makes insertion into the priority queue idempotent within a
	// single propagation cycle.
	enqueued bool
	// index is maintained by container/heap for Fix/Remove support; unused
	// here but kept in case a future cancellation path needs O(log n)
	// removal.
	index int
}

// readerHeap is a container/heap.Interface over pending readers, ordered by
// the Timeline position of each reader's startTS — min timestamp first.
type readerHeap struct {
	items []*reader
	tl    *Timeline
}

func (h *readerHeap) Len() int { return len(h.items) }

func (h *readerHeap) Less(i, j int) bool {
	return h.tl.Compare(h.items[i].startTS, h.items[j].startTS) < 0
}

func (h *readerHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

func (h *readerHeap) Push(x any) {
	r := x.(*reader)
	r.index = len(h.items)
	h.items = append(h.items, r)
}

func (h *readerHeap) Pop() any {
	old := h.items
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return r
}

// readerQueue is a heap of pending reader re-executions. Push is
// idempotent per reader per cycle via [reader.enqueued]; Pop skips
// readers whose startTS has since been spliced out (their enclosing binder
// was superseded before they got a chance to run).
type readerQueue struct {
	h *readerHeap
}

func newReaderQueue(tl *Timeline, capacityHint int) *readerQueue {
	h := &readerHeap{tl: tl, items: make([]*reader, 0, capacityHint)}
	heap.Init(h)
	return &readerQueue{h: h}
}

// Push enqueues r unless it is already pending.
func (q *readerQueue) Push(r *reader) {
	if r.enqueued {
		return
	}
	r.enqueued = true
	heap.Push(q.h, r)
}

// Pop removes and returns the reader with the earliest startTS, skipping
// (and dropping) any whose startTS has been spliced out. Returns nil when
// the queue is empty of live work.
func (q *readerQueue) Pop() *reader {
	for q.h.Len() > 0 {
		r := heap.Pop(q.h).(*reader)
		if r.startTS.IsSplicedOut() {
			continue
		}
		return r
	}
	return nil
}

// Len reports the number of entries still queued, including any that will
// be discarded on Pop because their startTS was spliced out.
func (q *readerQueue) Len() int {
	return q.h.Len()
}
