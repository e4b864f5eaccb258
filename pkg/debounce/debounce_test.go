package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRunsAfterQuietPeriod(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	done := make(chan struct{})
	s.Schedule("k", 20*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled fn never ran")
	}
	assert.False(t, s.Pending("k"))
}

func TestRescheduleSameKeyCancelsPrior(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var calls int32
	done := make(chan int, 2)

	s.Schedule("k", 30*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
		done <- 1
	})
	s.Schedule("k", 30*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
		done <- 2
	})

	select {
	case winner := <-done:
		assert.Equal(t, 2, winner, "only the most recently scheduled call survives")
	case <-time.After(time.Second):
		t.Fatal("scheduled fn never ran")
	}

	// Give the first timer a chance to misfire.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDifferentKeysDoNotInterfere(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var calls int32
	for _, key := range []string{"a", "b", "c"} {
		s.Schedule(key, 10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 3
	}, time.Second, 5*time.Millisecond)
}

func TestFlushRunsImmediately(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	done := make(chan struct{})
	s.Schedule("k", time.Hour, func() { close(done) })
	s.Flush("k")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flushed fn never ran")
	}
}

func TestCancel(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var calls int32
	s.Schedule("k", 20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	assert.True(t, s.Cancel("k"))
	assert.False(t, s.Cancel("k"), "second cancel has nothing to cancel")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestStopDropsEverything(t *testing.T) {
	s := NewScheduler()

	var calls int32
	s.Schedule("a", 20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	s.Schedule("b", 20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	s.Stop()

	// Scheduling after Stop is a no-op.
	s.Schedule("c", time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
