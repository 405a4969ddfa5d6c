package animation

import (
	"sort"
	"time"
)

// Timeline runs a Controller against a virtual clock. Scheduled frames are
// delivered in due order, ties in scheduling order, so a whole request
// cycle can be replayed without sleeping.
type Timeline struct {
	ctrl      *Controller
	state     State
	now       time.Duration
	seq       int
	pending   []scheduledFrame
	submitted []Submit
	observers []func(time.Duration, State)
}

type scheduledFrame struct {
	due   time.Duration
	seq   int
	frame Frame
}

// NewTimeline starts a timeline at time zero from ctrl.Init().
func NewTimeline(ctrl *Controller) *Timeline {
	return &Timeline{ctrl: ctrl, state: ctrl.Init()}
}

// Observe registers fn to be called after every transition.
func (t *Timeline) Observe(fn func(now time.Duration, s State)) {
	t.observers = append(t.observers, fn)
}

// State returns the current state.
func (t *Timeline) State() State { return t.state }

// Now returns the virtual time elapsed since the timeline started.
func (t *Timeline) Now() time.Duration { return t.now }

// Submitted returns every Submit effect issued so far.
func (t *Timeline) Submitted() []Submit {
	out := make([]Submit, len(t.submitted))
	copy(out, t.submitted)
	return out
}

// Pending returns the number of frames waiting to be delivered.
func (t *Timeline) Pending() int { return len(t.pending) }

// SelectPrompt forwards a prompt selection to the controller.
func (t *Timeline) SelectPrompt(option PromptOption) {
	s, effects := t.ctrl.SelectPrompt(t.state, option)
	t.apply(s, effects)
}

// Resolve delivers a request result to the controller.
func (t *Timeline) Resolve(r Result) {
	s, effects := t.ctrl.Resolve(t.state, r)
	t.apply(s, effects)
}

// Reset forwards a reset request to the controller.
func (t *Timeline) Reset() {
	s, effects := t.ctrl.Reset(t.state)
	t.apply(s, effects)
}

// DismissNotice closes the current notice.
func (t *Timeline) DismissNotice() {
	t.apply(t.ctrl.DismissNotice(t.state), nil)
}

// Advance moves the clock forward by d, delivering every frame that falls
// due on the way.
func (t *Timeline) Advance(d time.Duration) {
	until := t.now + d
	for len(t.pending) > 0 && t.pending[0].due <= until {
		next := t.pending[0]
		t.pending = t.pending[1:]
		t.now = next.due
		s, effects := t.ctrl.Advance(t.state, next.frame)
		t.apply(s, effects)
	}
	t.now = until
}

// RunUntilIdle delivers frames until none are pending or limit virtual
// time has passed.
func (t *Timeline) RunUntilIdle(limit time.Duration) {
	deadline := t.now + limit
	for len(t.pending) > 0 && t.pending[0].due <= deadline {
		t.Advance(t.pending[0].due - t.now)
	}
}

func (t *Timeline) apply(s State, effects []Effect) {
	t.state = s
	for _, e := range effects {
		switch e := e.(type) {
		case Schedule:
			t.seq++
			t.pending = append(t.pending, scheduledFrame{due: t.now + e.After, seq: t.seq, frame: e.Frame})
		case Submit:
			t.submitted = append(t.submitted, e)
		}
	}
	sort.SliceStable(t.pending, func(i, j int) bool {
		if t.pending[i].due == t.pending[j].due {
			return t.pending[i].seq < t.pending[j].seq
		}
		return t.pending[i].due < t.pending[j].due
	})
	for _, fn := range t.observers {
		fn(t.now, t.state)
	}
}
