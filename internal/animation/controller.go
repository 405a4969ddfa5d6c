package animation

import (
	"fmt"
	"net/http"

	"github.com/castrovroberto/prophet/internal/textutils"
)

// Controller holds the immutable configuration and the random source. All
// presentation state lives in State values passed through its methods.
type Controller struct {
	settings Settings
	rnd      Rand
}

// NewController creates a controller. Missing timings are filled with
// defaults.
func NewController(settings Settings, rnd Rand) *Controller {
	if rnd == nil {
		rnd = NewRand(0)
	}
	return &Controller{settings: settings.normalized(), rnd: rnd}
}

// Settings returns the effective settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// WithSettings returns a controller with new settings sharing the random
// source. States produced by c stay valid.
func (c *Controller) WithSettings(settings Settings) *Controller {
	return &Controller{settings: settings.normalized(), rnd: c.rnd}
}

// Init returns the starting state with a first sample of prompt options.
func (c *Controller) Init() State {
	return State{
		Phase:               PhaseIdle,
		LastResponseSettled: true,
		Options:             sampleOptions(c.rnd, c.settings.OptionPool, c.settings.OptionCount),
	}
}

// CanSelect reports whether a prompt selection would start a new cycle.
func (c *Controller) CanSelect(s State) bool {
	return !s.InputLocked && s.LastResponseSettled && s.Notice == "" && s.Phase == PhaseIdle
}

// SelectPrompt starts a request cycle for option. It is a no-op while a
// cycle is running or a notice is open.
func (c *Controller) SelectPrompt(s State, option PromptOption) (State, []Effect) {
	if !c.CanSelect(s) {
		return s, nil
	}

	s.Cycle++
	s.Phase = PhaseAwaitingResponse
	s.InputLocked = true
	s.LastResponseSettled = false
	s.ResetAvailable = false
	s.LastError = ""
	s.NextSide = pickSide(c.rnd)
	s.Panel = ResponsePanel{}
	s.Carousel = newCarousel(buildQueue(c.rnd, c.settings.CarouselPool, c.settings.CarouselLength, c.settings.FinalMessage))

	effects := make([]Effect, 0, 2)
	if s.Carousel.Active() {
		effects = append(effects, Schedule{After: 0, Frame: Frame{Cycle: s.Cycle, Target: TargetCarousel}})
	}
	effects = append(effects, Submit{Cycle: s.Cycle, Prompt: option.Label})
	return s, effects
}

// Advance applies one animation frame. Frames of an older cycle or of a
// chain that already finished are ignored.
func (c *Controller) Advance(s State, f Frame) (State, []Effect) {
	if f.Cycle != s.Cycle {
		return s, nil
	}

	switch f.Target {
	case TargetCarousel:
		if !s.Carousel.Active() {
			return s, nil
		}
		next, delay, more := s.Carousel.advance(c.settings)
		s.Carousel = next
		if !more {
			return s, nil
		}
		return s, []Effect{Schedule{After: delay, Frame: f}}

	case TargetPanel:
		if s.Phase != PhaseResponseVisible || !s.Panel.Active {
			return s, nil
		}
		s.Panel.Fading = true
		s.Panel.Opacity -= c.settings.fadeStep(c.settings.ResponseFade)
		if s.Panel.Opacity > opacityEpsilon {
			return s, []Effect{Schedule{After: c.settings.FrameInterval, Frame: f}}
		}
		return c.settle(s), nil
	}

	return s, nil
}

// Resolve handles the completion of the request submitted for r.Cycle.
func (c *Controller) Resolve(s State, r Result) (State, []Effect) {
	if r.Cycle != s.Cycle || s.Phase != PhaseAwaitingResponse {
		return s, nil
	}

	switch {
	case r.Status == http.StatusTooManyRequests:
		s = c.abort(s)
		s.Notice = c.settings.RateLimitNotice
		return s, nil

	case r.Err != nil || r.Status != http.StatusOK:
		s = c.abort(s)
		s.LastError = describeFailure(r)
		return s, nil
	}

	s.Phase = PhaseResponseVisible
	s.Panel = ResponsePanel{
		Active:  true,
		Text:    textutils.Truncate(r.Text, c.settings.Truncate),
		Side:    s.NextSide,
		Opacity: 1,
	}
	return s, []Effect{Schedule{
		After: c.settings.ResponseVisible,
		Frame: Frame{Cycle: s.Cycle, Target: TargetPanel},
	}}
}

// Reset resamples the prompt options after a settled cycle.
func (c *Controller) Reset(s State) (State, []Effect) {
	if s.Phase != PhaseIdle || s.InputLocked || !s.LastResponseSettled {
		return s, nil
	}
	s.Options = sampleOptions(c.rnd, c.settings.OptionPool, c.settings.OptionCount)
	return s, nil
}

// DismissNotice closes the blocking notice.
func (c *Controller) DismissNotice(s State) State {
	s.Notice = ""
	return s
}

// settle ends the cycle once the response panel has faded out.
func (c *Controller) settle(s State) State {
	s.Phase = PhaseIdle
	s.InputLocked = false
	s.LastResponseSettled = true
	s.ResetAvailable = true
	s.Panel = ResponsePanel{Side: s.Panel.Side}
	s.Carousel = Carousel{}
	return s
}

// abort drops the visual cycle of a failed request and releases the lock.
func (c *Controller) abort(s State) State {
	s.Phase = PhaseIdle
	s.InputLocked = false
	s.LastResponseSettled = true
	s.Panel = ResponsePanel{}
	s.Carousel = Carousel{}
	return s
}

func describeFailure(r Result) string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return fmt.Sprintf("request failed with status %d", r.Status)
}
