package puzzle

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/lockdown/clock"
	"github.com/lixenwraith/lockdown/feedback"
)

type harness struct {
	clock *clock.Mock
	sched *clock.Scheduler
	rec   *feedback.Recorder
	deps  Deps
}

func newHarness() *harness {
	mock := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := clock.NewScheduler(mock)
	rec := feedback.NewRecorder()
	return &harness{
		clock: mock,
		sched: sched,
		rec:   rec,
		deps:  Deps{Sink: rec, Scheduler: sched, Log: zerolog.Nop()},
	}
}

// advance moves virtual time and runs whatever became due
func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Poll()
}

func (h *harness) lastMessage() string {
	fb, _ := h.rec.Last()
	return fb.Message
}

// solvedCounter counts solved callbacks per id
type solvedCounter map[string]int

func (s solvedCounter) hook(id string) { s[id]++ }
