package frp

// Timestamp is a node in a timeline's singly-linked chain. It delimits when
// a reader started or ended, and owns the cleanup actions scoped to it.
//
// A Timestamp must not be used with any Timeline operation once it has been
// spliced out — doing so is a programmer error, reported as
// [ErrInvalidTimestamp].
type Timestamp struct {
	next       *Timestamp
	splicedOut bool
	sentinel   bool
	// cleanups holds cleanup actions with the most recently added at index
	// 0, so firing front-to-back yields LIFO order within this timestamp.
	cleanups []func()
}

// IsSplicedOut reports whether t has been removed from its timeline.
func (t *Timestamp) IsSplicedOut() bool {
	return t.splicedOut
}

// Timeline is an ordered, splice-capable sequence of logical timestamps.
// It tracks "now", the most recently allocated live timestamp, and
// exposes Tick, AddCleanup, SpliceOut, Compare, and Equal.
//
// The chain is singly-linked and terminates in a sentinel node (next ==
// itself). [Timeline.Compare] and [Timeline.SpliceOut] are O(n) in the
// distance walked; a Dietz-Sleator order-maintenance structure would give
// O(1) amortized operations without changing these contracts, if the
// linear walk ever becomes a bottleneck.
type Timeline struct {
	sentinel *Timestamp
	head     *Timestamp
	now      *Timestamp
}

// NewTimeline constructs a fresh timeline with a single live timestamp
// (head, also the initial "now") followed by the sentinel.
func NewTimeline() *Timeline {
	sentinel := &Timestamp{sentinel: true}
	sentinel.next = sentinel
	head := &Timestamp{next: sentinel}
	return &Timeline{sentinel: sentinel, head: head, now: head}
}

// Reset discards the current chain: every cleanup from head to the
// sentinel fires in order, then a fresh sentinel and head are installed and
// now is reset to the new head. Reset is idempotent and is what
// [Runtime.Init] calls; [NewTimeline] already yields the same fresh state.
func (tl *Timeline) Reset() {
	for n := tl.head; n != tl.sentinel && n != nil; {
		next := n.next
		fireCleanups(n)
		n.splicedOut = true
		n = next
	}
	sentinel := &Timestamp{sentinel: true}
	sentinel.next = sentinel
	head := &Timestamp{next: sentinel}
	tl.sentinel = sentinel
	tl.head = head
	tl.now = head
}

// Now returns the current cursor: the most recently allocated live
// timestamp.
func (tl *Timeline) Now() *Timestamp {
	return tl.now
}

// SetNow moves the cursor to t. Returns [ErrInvalidTimestamp] if t has been
// spliced out.
func (tl *Timeline) SetNow(t *Timestamp) error {
	if t == nil || t.splicedOut {
		return ErrInvalidTimestamp
	}
	tl.now = t
	return nil
}

// Tick validates now, inserts a fresh timestamp immediately after it,
// advances now to the new node, and returns it.
func (tl *Timeline) Tick() (*Timestamp, error) {
	if tl.now == nil || tl.now.splicedOut {
		return nil, ErrInvalidTimestamp
	}
	t := &Timestamp{next: tl.now.next}
	tl.now.next = t
	tl.now = t
	return t, nil
}

// AddCleanup validates t and prepends f to its cleanup list, so that
// cleanups fire in reverse order of registration (LIFO) when t is spliced.
func (tl *Timeline) AddCleanup(t *Timestamp, f func()) error {
	if t == nil || t.splicedOut {
		return ErrInvalidTimestamp
	}
	t.cleanups = append(t.cleanups, nil)
	copy(t.cleanups[1:], t.cleanups)
	t.cleanups[0] = f
	return nil
}

// SpliceOut removes every node strictly between t1 and t2 (exclusive of
// both): each intermediate node's cleanups fire in order, are cleared, and
// the node is marked spliced out. t1.next is then set to t2.
//
// SpliceOut validates that t2 actually lies after t1 by walking from
// t1.next before mutating anything; if the walk reaches the sentinel
// without encountering t2, it returns [ErrInvalidTimestamp] and leaves the
// timeline untouched, rather than firing cleanups partway through an
// invalid splice and leaving the timeline in a half-mutated state.
func (tl *Timeline) SpliceOut(t1, t2 *Timestamp) error {
	if t1 == nil || t1.splicedOut || t2 == nil || t2.splicedOut {
		return ErrInvalidTimestamp
	}
	if t1 == t2 {
		return nil
	}
	for n := t1.next; ; n = n.next {
		if n == t2 {
			break
		}
		if n == tl.sentinel {
			return ErrInvalidTimestamp
		}
	}
	for n := t1.next; n != t2; {
		next := n.next
		fireCleanups(n)
		n.cleanups = nil
		n.splicedOut = true
		n = next
	}
	t1.next = t2
	return nil
}

// Compare returns 0 if t1 and t2 are identical, -1 if t1 precedes t2 (found
// by forward walk from t1), or +1 otherwise (including t1 being after t2).
func (tl *Timeline) Compare(t1, t2 *Timestamp) int {
	if t1 == t2 {
		return 0
	}
	for n := t1; ; n = n.next {
		if n == t2 {
			return -1
		}
		if n == tl.sentinel {
			return 1
		}
	}
}

// Len reports the number of live timestamps from head (included) up to the
// sentinel (excluded), for introspection ([Runtime.Stats]). O(n).
func (tl *Timeline) Len() int {
	n := 0
	for t := tl.head; t != tl.sentinel; t = t.next {
		n++
	}
	return n
}

// Equal reports whether t1 and t2 are the same timestamp (identity).
func (tl *Timeline) Equal(t1, t2 *Timestamp) bool {
	return t1 == t2
}

// fireCleanups runs every cleanup registered on t, front to back (which is
// LIFO registration order, see AddCleanup). Timeline itself does not
// recover panics raised by a cleanup — Runtime wraps every cleanup it
// registers with its own panic recovery before handing it to AddCleanup,
// routing failures to the uncaught-exception sink, so this stays a thin,
// policy-free primitive.
func fireCleanups(t *Timestamp) {
	for _, f := range t.cleanups {
		if f != nil {
			f()
		}
	}
}
