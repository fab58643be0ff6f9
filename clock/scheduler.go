package clock

import "time"

// TaskID identifies a scheduled deferred callback
type TaskID uint64

type task struct {
	id  TaskID
	due time.Time
	fn  func()
}

// Scheduler queues deferred callbacks against a Clock
// Nothing runs on its own: the tick loop calls Poll, which keeps every effect on the
// loop goroutine and lets tests drive virtual time with a Mock clock
type Scheduler struct {
	clock  Clock
	nextID TaskID
	tasks  []task
}

// NewScheduler creates a scheduler reading time from c
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{clock: c}
}

// Clock returns the time source the scheduler was built on
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// After schedules fn to run once at least d has elapsed
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, task{
		id:  s.nextID,
		due: s.clock.Now().Add(d),
		fn:  fn,
	})
	return s.nextID
}

// Cancel drops a pending callback, returns false if it already ran or never existed
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of callbacks not yet run
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Poll runs every due callback in due order, ties broken by scheduling order
// Callbacks scheduled from inside a callback run in the same Poll if already due
// Returns the number of callbacks executed
func (s *Scheduler) Poll() int {
	ran := 0
	for {
		now := s.clock.Now()
		idx := -1
		for i, t := range s.tasks {
			if t.due.After(now) {
				continue
			}
			if idx < 0 || t.due.Before(s.tasks[idx].due) ||
				(t.due.Equal(s.tasks[idx].due) && t.id < s.tasks[idx].id) {
				idx = i
			}
		}
		if idx < 0 {
			return ran
		}

		t := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		t.fn()
		ran++
	}
}

// NextDue returns the earliest pending due time
func (s *Scheduler) NextDue() (time.Time, bool) {
	if len(s.tasks) == 0 {
		return time.Time{}, false
	}
	earliest := s.tasks[0].due
	for _, t := range s.tasks[1:] {
		if t.due.Before(earliest) {
			earliest = t.due
		}
	}
	return earliest, true
}
