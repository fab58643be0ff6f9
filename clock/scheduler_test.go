package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() (*Scheduler, *Mock) {
	mock := NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewScheduler(mock), mock
}

func TestSchedulerRunsOnlyDueTasks(t *testing.T) {
	s, mock := newTestScheduler()

	var fired []string
	s.After(400*time.Millisecond, func() { fired = append(fired, "a") })
	s.After(100*time.Millisecond, func() { fired = append(fired, "b") })

	assert.Equal(t, 0, s.Poll())
	assert.Equal(t, 2, s.Pending())

	mock.Advance(399 * time.Millisecond)
	assert.Equal(t, 1, s.Poll())
	assert.Equal(t, []string{"b"}, fired)

	mock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Poll())
	assert.Equal(t, []string{"b", "a"}, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerOrdersByDueThenInsertion(t *testing.T) {
	s, mock := newTestScheduler()

	var fired []int
	s.After(200*time.Millisecond, func() { fired = append(fired, 3) })
	s.After(100*time.Millisecond, func() { fired = append(fired, 1) })
	s.After(100*time.Millisecond, func() { fired = append(fired, 2) })

	mock.Advance(time.Second)
	assert.Equal(t, 3, s.Poll())
	assert.Equal(t, []int{1, 2, 3}, fired)
}

func TestSchedulerNestedScheduling(t *testing.T) {
	s, mock := newTestScheduler()

	var fired []string
	s.After(100*time.Millisecond, func() {
		fired = append(fired, "outer")
		s.After(0, func() { fired = append(fired, "immediate") })
		s.After(time.Second, func() { fired = append(fired, "later") })
	})

	mock.Advance(100 * time.Millisecond)
	assert.Equal(t, 2, s.Poll())
	assert.Equal(t, []string{"outer", "immediate"}, fired)

	mock.Advance(time.Second)
	s.Poll()
	assert.Equal(t, []string{"outer", "immediate", "later"}, fired)
}

func TestSchedulerCancel(t *testing.T) {
	s, mock := newTestScheduler()

	fired := false
	id := s.After(50*time.Millisecond, func() { fired = true })
	require.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id))

	mock.Advance(time.Second)
	s.Poll()
	assert.False(t, fired)
}

func TestSchedulerNextDue(t *testing.T) {
	s, mock := newTestScheduler()

	_, ok := s.NextDue()
	assert.False(t, ok)

	s.After(300*time.Millisecond, func() {})
	s.After(100*time.Millisecond, func() {})
	due, ok := s.NextDue()
	require.True(t, ok)
	assert.Equal(t, mock.Now().Add(100*time.Millisecond), due)
}
