package frp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario_ConstantChain: a = return 1; b = lift ((+) 1) a;
// c = lift ((*) 2) b. Expect read c = 4 and no propagation triggered (both
// queues empty). The cleanup lists are not checked: each Lift reader still
// registers a dependency-release cleanup on its own timestamp.
func TestScenario_ConstantChain(t *testing.T) {
	rt := New()
	a := Return(rt, 1)
	b := Lift(rt, func(n int) int { return n + 1 }, a, nil)
	c := Lift(rt, func(n int) int { return n * 2 }, b, nil)

	assert.Equal(t, 4, Read(c))
	stats := rt.Stats()
	assert.Equal(t, 0, stats.EventQueueDepth)
	assert.Equal(t, 0, stats.ReaderQueueDepth)
}

// TestScenario_CellUpdateSingleRun: (b, set) = make_cell 0; c = lift f b
// where f counts its calls. set 1; set 2; set 3. f is invoked exactly 4
// times total: once for the initial value, and once per distinct later
// value, since each set drains to quiescence before the next call begins.
func TestScenario_CellUpdateSingleRun(t *testing.T) {
	rt := New()
	b, set := MakeCell(rt, 0)
	var calls int
	c := Lift(rt, func(n int) int { calls++; return n }, b, nil)

	require.Equal(t, 1, calls)
	set(1)
	set(2)
	set(3)

	assert.Equal(t, 4, calls)
	assert.Equal(t, 3, Read(c))
}

// TestScenario_GlitchFreeDiamond: a = make_cell 0; b = lift (+1) a;
// c = lift (*2) a; d = lift2 (+) b c. Setting a to 5 must re-run d exactly
// once, observing b=6, c=10, d=16 — never a stale intermediate value.
func TestScenario_GlitchFreeDiamond(t *testing.T) {
	rt := New()
	a, set := MakeCell(rt, 0)
	b := Lift(rt, func(n int) int { return n + 1 }, a, nil)
	c := Lift(rt, func(n int) int { return n * 2 }, a, nil)

	var dRuns int
	var observedB, observedC []int
	d := Lift2(rt, func(x, y int) int {
		dRuns++
		observedB = append(observedB, x)
		observedC = append(observedC, y)
		return x + y
	}, b, c, nil)

	require.Equal(t, 1, dRuns)
	set(5)

	assert.Equal(t, 2, dRuns, "d must re-execute exactly once for a single upstream change")
	assert.Equal(t, 6, Read(b))
	assert.Equal(t, 10, Read(c))
	assert.Equal(t, 16, Read(d))
	assert.Equal(t, []int{1, 6}, observedB, "d's construction-time run observes a's initial value, then the settled post-set value")
	assert.Equal(t, []int{0, 10}, observedC, "d's construction-time run observes a's initial value, then the settled post-set value")
}

// TestScenario_SwitchReleasesOldDependencies: bb = make_cell b1 where b1
// and b2 are cells; out = switch_bb bb. Subscribe via notify_b on out;
// switch bb to b2; mutate b1. The notifier must not fire for the b1
// mutation.
func TestScenario_SwitchReleasesOldDependencies(t *testing.T) {
	rt := New()
	b1, setB1 := MakeCell(rt, 10)
	b2, _ := MakeCell(rt, 20)
	bb, setBB := MakeCell(rt, b1)
	out := SwitchBB(rt, bb, nil)

	var notified []int
	NotifyB(rt, out, func(v int) { notified = append(notified, v) })

	setBB(b2)
	setB1(999)

	assert.Equal(t, []int{20}, notified, "mutating b1 after the switch must not reach the notifier")
}

// TestScenario_FailurePropagation: a = make_cell (Value 1);
// b = lift (fun x -> 10/x) a. Setting a to 0 makes reading b raise; catch
// applied to a thunk reading b yields the handler's value.
func TestScenario_FailurePropagation(t *testing.T) {
	rt := New()
	a, set := MakeCell(rt, 1)
	b := Lift(rt, func(x int) int {
		if x == 0 {
			panic(divByZero{})
		}
		return 10 / x
	}, a, nil)

	assert.Equal(t, 10, Read(b))

	caught := Catch(rt, func() int { return Read(b) }, func(error) int { return -1 }, nil)
	assert.Equal(t, 10, Read(caught))

	set(0)
	assert.True(t, ReadResult(b).IsFail())
	require.Panics(t, func() { Read(b) })
	assert.Equal(t, -1, Read(caught))
}

type divByZero struct{}

func (divByZero) Error() string { return "division by zero" }

// TestScenario_EventMergeOrdering: two channels e1, e2 merged into e; send
// e1<-"a", e2<-"b", e1<-"c" in that order; the listener on e must see
// ["a", "b", "c"].
func TestScenario_EventMergeOrdering(t *testing.T) {
	rt := New()
	e1, s1 := MakeEvent[string](rt)
	e2, s2 := MakeEvent[string](rt)
	e := Merge(rt, e1, e2)

	var got []string
	NotifyE(rt, e, func(v string) { got = append(got, v) })

	s1.Send("a")
	s2.Send("b")
	s1.Send("c")

	assert.Equal(t, []string{"a", "b", "c"}, got)
}
