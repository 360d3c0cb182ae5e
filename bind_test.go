package frp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBind_TracksInnerBehaviorAndSwitchesOnOuterChange(t *testing.T) {
	rt := New()
	a, setA := MakeCell(rt, 1)
	inner1 := Constant(rt, "one")
	inner2 := Constant(rt, "two")
	out := Bind(rt, a, func(n int) *Behavior[string] {
		if n == 1 {
			return inner1
		}
		return inner2
	}, nil)

	assert.Equal(t, "one", Read(out))
	setA(2)
	assert.Equal(t, "two", Read(out))
}

func TestBind_ForwardsInnerBehaviorChangesWithoutOuterChange(t *testing.T) {
	rt := New()
	a := Constant(rt, 0)
	innerCell, setInner := MakeCell(rt, 1)
	out := Bind(rt, a, func(int) *Behavior[int] { return innerCell }, nil)

	assert.Equal(t, 1, Read(out))
	setInner(2)
	assert.Equal(t, 2, Read(out), "a write to the inner behavior must forward even though the outer never changes")
}

func TestBind_ReleasesOldInnerSubscriptionOnSwitch(t *testing.T) {
	rt := New()
	b1, setB1 := MakeCell(rt, 1)
	b2, _ := MakeCell(rt, 2)
	bb, setBB := MakeCell(rt, b1)
	out := SwitchBB(rt, bb, nil)

	var received []int
	NotifyBCancel(out, func(v int) { received = append(received, v) })

	setBB(b2)
	setB1(100)

	assert.Equal(t, []int{2}, received, "switching away from b1 must stop its later mutations from reaching out")
}

func TestLift_AppliesFunctionToValue(t *testing.T) {
	rt := New()
	a := Constant(rt, 10)
	b := Lift(rt, func(n int) int { return n + 1 }, a, nil)
	assert.Equal(t, 11, Read(b))
}

func TestLift_PanicInFBecomesOutputFailure(t *testing.T) {
	rt := New()
	a, set := MakeCell(rt, 1)
	b := Lift(rt, func(n int) int {
		if n == 0 {
			panic(errors.New("division by zero"))
		}
		return 10 / n
	}, a, nil)

	assert.Equal(t, 10, Read(b))

	set(0)
	res := ReadResult(b)
	assert.True(t, res.IsFail(), "a panic inside f must surface as a Fail result instead of leaving the stale value in place")
	assert.EqualError(t, res.Err, "division by zero")
	assert.Panics(t, func() { Read(b) })
}

func TestBLift_IsLiftWithSwappedArguments(t *testing.T) {
	rt := New()
	a := Constant(rt, 10)
	b := BLift(rt, a, func(n int) int { return n + 1 }, nil)
	assert.Equal(t, 11, Read(b))
}

func TestTryBind_SplitsOkAndErrBranches(t *testing.T) {
	rt := New()
	a, setA := MakeCell(rt, 1)
	out := TryBind(rt, func() int {
		v := Read(a)
		if v == 0 {
			panic(errors.New("div by zero"))
		}
		return 10 / v
	}, func(v int) string {
		return "ok"
	}, func(err error) string {
		return "err: " + err.Error()
	}, nil)

	assert.Equal(t, "ok", Read(out))
	setA(0)
	assert.Equal(t, "err: div by zero", Read(out))
}

func TestCatch_SubstitutesHandlerValueOnFailure(t *testing.T) {
	rt := New()
	ch, sender := MakeEvent[int](rt)
	a := HoldResult(rt, Ok(1), ch, nil)

	out := Catch(rt, func() int {
		res := ReadResult(a)
		if res.IsFail() {
			panic(res.Err)
		}
		return 10 / res.Value
	}, func(error) int { return -1 }, nil)

	assert.Equal(t, 10, Read(out))
	sender.SendErr(errors.New("nope"))
	assert.Equal(t, -1, Read(out))
}
