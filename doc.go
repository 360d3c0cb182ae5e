// Package frp provides a self-adjusting-computation runtime for functional
// reactive programming: behaviors (time-varying values) and events
// (discrete occurrences), built on a splice-capable timeline and a
// priority-ordered propagator.
//
// # Architecture
//
// A [Runtime] owns four cooperating pieces:
//   - a [Timeline]: an ordered, splice-capable sequence of logical
//     timestamps used to order re-executions and scope cleanups;
//   - a priority queue of pending reader re-executions, ordered by the
//     timestamp at which each reader's enclosing bind started;
//   - a FIFO event queue of pending channel deliveries;
//   - the propagation loop itself, which drains the event queue, then the
//     reader queue, repeating until both are empty.
//
// Behaviors ([Behavior]) and event channels ([Channel]) are built entirely
// in terms of a [Runtime]: [Bind], [Lift], [Catch], [MakeEvent], [Merge],
// [Map], [Filter], [Hold], [SwitchBB], and friends all take the owning
// Runtime as their first argument, since Go's generic functions cannot
// themselves be methods with additional type parameters.
//
// # Execution model
//
// The runtime is single-threaded and cooperative: [Sender.Send] runs the
// propagation loop to completion before returning. There are no suspension
// points and no background goroutines — every public operation is expected
// to be called from one logical executor.
//
// # Consistency guarantee
//
// Because readers are drained in timeline order and each reader's own
// sub-timespan is spliced out and rebuilt before it runs, a reader never
// observes a behavior that will still be updated later in the same cycle by
// an upstream dependency: the upstream is always earlier in the timeline,
// and therefore already re-run. A reader re-runs at most once per
// propagation cycle regardless of how many of its dependencies changed.
//
// # Usage
//
//	rt := frp.New()
//	cell, set := frp.MakeCell(rt, 0)
//	doubled := frp.Lift(rt, func(n int) int { return n * 2 }, cell, nil)
//	set(21)
//	v := frp.Read(doubled) // 42
//
// # Errors
//
// [ErrInvalidTimestamp] signals programmer misuse of the timeline (an
// operation on a spliced-out timestamp, or a non-later splice target).
// Failures carried inside behaviors are first-class values, surfaced by
// [Read] as [*PropagatedFailure] panics (or, without panicking, via
// [ReadResult]), and never interrupt propagation.
// Panics raised by listeners or cleanups are recovered, wrapped in
// [*ListenerPanic], and handed to the configured uncaught-exception sink;
// propagation continues with the next listener.
package frp
