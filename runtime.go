package frp

import "fmt"

// Runtime is the propagator: it owns the timeline, the event queue, the
// reader priority queue, and the "current reader" context used for
// dependency recording. State lives on the value rather than behind
// package-level globals, so a process can run more than one independent
// propagator.
//
// A Runtime is single-threaded and cooperative: every exported method is
// expected to be called from one logical executor. There is no internal
// locking.
type Runtime struct {
	tl      *Timeline
	events  *eventQueue
	readers *readerQueue

	currentReader *reader
	isPropagating bool

	uncaught func(error)
	debug    func(string)
	logger   runtimeLogger

	nextID       uint64
	hashOverride func(any) (uint64, bool)
}

// New constructs a Runtime, ready for immediate use.
func New(opts ...RuntimeOption) *Runtime {
	cfg := resolveRuntimeOptions(opts)
	tl := NewTimeline()
	return &Runtime{
		tl:           tl,
		events:       newEventQueue(cfg.capacityHint),
		readers:      newReaderQueue(tl, cfg.capacityHint),
		uncaught:     cfg.uncaught,
		debug:        cfg.debug,
		logger:       cfg.logger,
		nextID:       1,
		hashOverride: cfg.hashOverride,
	}
}

// Init discards the current timeline (firing every outstanding cleanup in
// order), drops all pending events and readers, and resets the propagator
// to a fresh state. It is offered for callers that want to recycle a
// Runtime rather than constructing a new one; New already leaves a
// freshly-constructed value in the equivalent state.
func (rt *Runtime) Init() {
	rt.tl.Reset()
	rt.events = newEventQueue(0)
	rt.readers = newReaderQueue(rt.tl, 0)
	rt.currentReader = nil
	rt.isPropagating = false
}

// Timeline returns the runtime's timeline, for callers that need direct
// access to timestamp operations (tests, and combinators implemented
// outside this package's own files would use this; everything in this
// module reaches rt.tl directly).
func (rt *Runtime) Timeline() *Timeline { return rt.tl }

// nextAllocID hands out a monotonically increasing identity used by
// [HashBehavior]/[HashEvent] (memo.go) and for log correlation fields.
func (rt *Runtime) nextAllocID() uint64 {
	id := rt.nextID
	rt.nextID++
	return id
}

// Cleanup registers f to run when the current timestamp's range is next
// spliced out — i.e. when the reader currently executing re-runs or is
// superseded. f is wrapped with panic recovery: a panicking cleanup is
// reported to the uncaught-exception sink and propagation continues,
// exactly like a panicking listener. Calling Cleanup outside of any
// reader is a no-op, since there is no bounded timespan to attach it to.
func (rt *Runtime) Cleanup(f func()) {
	if f == nil || rt.currentReader == nil {
		return
	}
	_ = rt.tl.AddCleanup(rt.tl.Now(), func() {
		rt.safeCall("cleanup", f)
	})
}

// currentTimestamp returns rt.tl.Now(), the timestamp any newly-registered
// dependency or cleanup should be scoped to.
func (rt *Runtime) currentTimestamp() *Timestamp {
	return rt.tl.Now()
}

// enqueueEvent pushes a pending delivery and, if no propagation cycle is
// currently running, drives one to completion. This is the one entry point
// every Send path in this package funnels through; behavior notifiers are
// called directly by writeBehavior instead.
func (rt *Runtime) enqueueEvent(deliver func()) {
	rt.events.Push(delivery{deliver: deliver})
	if !rt.isPropagating {
		rt.propagate()
	}
}

// newReader allocates a reader, runs it for the first time, and returns
// it. Every binder combinator (Bind, Lift, Catch, SwitchBB, BindN, ...)
// goes through this single entry point so first-run and re-run share one
// code path: run itself performs the dependency registration, via
// subscribeBehavior, as its first statement.
func (rt *Runtime) newReader(run func()) *reader {
	start, _ := rt.tl.Tick()
	r := &reader{startTS: start, run: run}
	rt.executeReader(r)
	return r
}

// executeReader runs r.run with rt.currentReader set to r, bracketed by a
// leading and trailing tick. Without the bracket, a reader whose body never
// ticks would have startTS == endTS for its own run, and any cleanup a
// dependency registers against "now" (subscribeBehavior's dependency-release
// closure, a notifier's auto-scoped cleanup) would land on one of the two
// boundary timestamps themselves — which [Timeline.SpliceOut] never fires,
// since it only clears nodes strictly between its two arguments. The
// bracket guarantees every registration made during run lands on an
// interior node, so it is reliably released the next time this reader's
// span is spliced.
func (rt *Runtime) executeReader(r *reader) {
	_, _ = rt.tl.Tick()

	prev := rt.currentReader
	rt.currentReader = r
	rt.safeCall("reader", r.run)
	rt.currentReader = prev

	end, _ := rt.tl.Tick()
	r.endTS = end
}

// enqueueReader schedules r for re-execution, unless already pending this
// cycle (the enqueued flag guards at-most-once-per-cycle scheduling).
func (rt *Runtime) enqueueReader(r *reader) {
	rt.readers.Push(r)
}

// propagate runs one full propagation cycle to quiescence: event phase,
// then update phase, repeating while either queue still has work.
func (rt *Runtime) propagate() {
	if rt.isPropagating {
		// Reentrant call: the caller already enqueued; the owning cycle's
		// loop will observe it. Nothing further to do here.
		return
	}
	rt.isPropagating = true
	defer func() { rt.isPropagating = false }()

	for {
		rt.Debugf("propagate: event phase")
		for {
			d, ok := rt.events.Pop()
			if !ok {
				break
			}
			rt.safeCall("listener", d.deliver)
		}

		rt.Debugf("propagate: update phase")
		for {
			r := rt.readers.Pop()
			if r == nil {
				break
			}
			rt.runReader(r)
		}

		if rt.events.Len() == 0 {
			break
		}
	}
}

// runReader splices out the reader's previous sub-timespan (releasing
// every subordinate reader and cleanup it owned), advances now to the
// reader's start, and re-executes it.
func (rt *Runtime) runReader(r *reader) {
	if r.startTS.IsSplicedOut() {
		return
	}
	if err := rt.tl.SpliceOut(r.startTS, r.endTS); err != nil {
		rt.Debugf("propagate: splice of superseded reader failed: %v", err)
	}
	_ = rt.tl.SetNow(r.startTS)
	r.enqueued = false
	rt.executeReader(r)
}

// safeCall invokes f with panic recovery, routing any recovered value to
// the uncaught-exception sink as a *ListenerPanic. Every user callback the
// propagator itself invokes (listener, cleanup, reader body) goes through
// this.
func (rt *Runtime) safeCall(category string, f func()) {
	if f == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			rt.reportUncaught(&ListenerPanic{Value: r, Category: category})
		}
	}()
	f()
}

func (rt *Runtime) reportUncaught(err error) {
	if rt.uncaught != nil {
		rt.uncaught(err)
	}
	rt.logUncaught(err)
}

// Debugf routes a formatted diagnostic message to the debug-string sink
// ([WithDebugSink]) and/or the structured logger ([WithLogger]), used by
// the propagator at the start of each event phase and update phase, and
// when splicing a re-run reader's old span fails.
// Both sinks default to dropping the message, so this has no cost unless
// a caller opts in.
func (rt *Runtime) Debugf(format string, args ...any) {
	if rt.debug == nil && !rt.logger.enabled() {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if rt.debug != nil {
		rt.debug(msg)
	}
	rt.logLoggerDebug(msg)
}

// Stats is a read-only introspection snapshot of a Runtime's internal
// queues and allocation counter.
type Stats struct {
	// EventQueueDepth is the number of deliveries still pending in the
	// event FIFO.
	EventQueueDepth int
	// ReaderQueueDepth is the number of entries still pending in the
	// reader heap, including any that will be discarded as stale on pop.
	ReaderQueueDepth int
	// TimelineLength is the number of live timestamps from the timeline's
	// head (included) up to its sentinel (excluded).
	TimelineLength int
	// AllocatedCount is the number of behaviors and channels ever
	// allocated by this Runtime (a monotonically increasing counter, not
	// a live count — nothing here tracks collection). Readers take no
	// allocation id and are not counted.
	AllocatedCount uint64
}

// Stats returns a snapshot of rt's current queue depths and allocation
// counter. It has no behavioral effect.
func (rt *Runtime) Stats() Stats {
	return Stats{
		EventQueueDepth:  rt.events.Len(),
		ReaderQueueDepth: rt.readers.Len(),
		TimelineLength:   rt.tl.Len(),
		AllocatedCount:   rt.nextID - 1,
	}
}
