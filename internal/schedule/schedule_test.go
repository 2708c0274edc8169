package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealSchedulerFiresAndCancels(t *testing.T) {
	s := New()

	var fired atomic.Int32
	s.After(5*time.Millisecond, func() { fired.Add(1) })
	cancel := s.After(5*time.Millisecond, func() { fired.Add(10) })
	assert.True(t, cancel(), "cancel before the deadline prevents the call")
	assert.False(t, cancel(), "second cancel reports nothing left to stop")

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestFakeRunsDueCallbacksInOrder(t *testing.T) {
	f := NewFake()
	var order []string
	f.After(300*time.Millisecond, func() { order = append(order, "b") })
	f.After(100*time.Millisecond, func() { order = append(order, "a") })
	f.After(300*time.Millisecond, func() { order = append(order, "c") })

	f.Advance(200 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)
	assert.Equal(t, 2, f.Pending())

	f.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 300*time.Millisecond, f.Elapsed())
}

func TestFakeCancel(t *testing.T) {
	f := NewFake()
	fired := false
	cancel := f.After(time.Second, func() { fired = true })

	assert.True(t, cancel())
	assert.False(t, cancel())
	f.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Zero(t, f.Pending())
}

func TestFakeChainedCallbacks(t *testing.T) {
	f := NewFake()
	var fired []time.Duration
	f.After(100*time.Millisecond, func() {
		fired = append(fired, f.Elapsed())
		f.After(100*time.Millisecond, func() { fired = append(fired, f.Elapsed()) })
	})

	f.Advance(250 * time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, fired)
}
