package frp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_TickAdvancesAndOrders(t *testing.T) {
	tl := NewTimeline()
	head := tl.Now()

	t1, err := tl.Tick()
	require.NoError(t, err)
	assert.Equal(t, -1, tl.Compare(head, t1), "tick's result must be later than the preceding now")

	t2, err := tl.Tick()
	require.NoError(t, err)
	assert.Equal(t, -1, tl.Compare(t1, t2))
	assert.Equal(t, 1, tl.Compare(t2, t1))
	assert.Equal(t, 0, tl.Compare(t1, t1))
	assert.True(t, tl.Equal(t1, t1))
	assert.False(t, tl.Equal(t1, t2))
}

func TestTimeline_SpliceOutFiresCleanupsAndMarks(t *testing.T) {
	tl := NewTimeline()
	t1, _ := tl.Tick()
	var fired []string
	mid1, _ := tl.Tick()
	require.NoError(t, tl.AddCleanup(mid1, func() { fired = append(fired, "mid1") }))
	mid2, _ := tl.Tick()
	require.NoError(t, tl.AddCleanup(mid2, func() { fired = append(fired, "mid2") }))
	t2, _ := tl.Tick()

	require.NoError(t, tl.SpliceOut(t1, t2))

	assert.Equal(t, []string{"mid1", "mid2"}, fired, "timestamps in a spliced range fire their cleanups in forward timeline order")
	assert.True(t, mid1.IsSplicedOut())
	assert.True(t, mid2.IsSplicedOut())
	assert.False(t, t1.IsSplicedOut(), "splice endpoints are not themselves spliced out")
	assert.False(t, t2.IsSplicedOut())
}

func TestTimeline_SpliceOutRejectsOutOfOrderTarget(t *testing.T) {
	tl := NewTimeline()
	t1, _ := tl.Tick()
	t2, _ := tl.Tick()

	err := tl.SpliceOut(t2, t1)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.False(t, t1.IsSplicedOut(), "a rejected splice must leave the timeline untouched")
	assert.False(t, t2.IsSplicedOut())
}

func TestTimeline_OperationsOnSplicedTimestampFail(t *testing.T) {
	tl := NewTimeline()
	t1, _ := tl.Tick()
	mid, _ := tl.Tick()
	t2, _ := tl.Tick()
	require.NoError(t, tl.SpliceOut(t1, t2))

	assert.ErrorIs(t, tl.SetNow(mid), ErrInvalidTimestamp)
	assert.ErrorIs(t, tl.AddCleanup(mid, func() {}), ErrInvalidTimestamp)
	require.NoError(t, tl.SetNow(t1))
	_, err := tl.Tick()
	require.NoError(t, err, "now (t1) is still live, so ticking from it must succeed")
}

func TestTimeline_ResetFiresAllCleanupsAndStartsFresh(t *testing.T) {
	tl := NewTimeline()
	var fired int
	n1, _ := tl.Tick()
	require.NoError(t, tl.AddCleanup(n1, func() { fired++ }))
	n2, _ := tl.Tick()
	require.NoError(t, tl.AddCleanup(n2, func() { fired++ }))

	tl.Reset()

	assert.Equal(t, 2, fired)
	assert.Equal(t, 1, tl.Len())
	assert.True(t, n1.IsSplicedOut())
	assert.True(t, n2.IsSplicedOut())
}

func TestTimeline_Len(t *testing.T) {
	tl := NewTimeline()
	assert.Equal(t, 1, tl.Len())
	tl.Tick()
	tl.Tick()
	assert.Equal(t, 3, tl.Len())
}
