package animation

import "time"

// CarouselStep is the sub-state of the message currently on screen.
type CarouselStep int

const (
	StepDone CarouselStep = iota
	StepFadeIn
	StepHold
	StepFadeOut
)

// opacityEpsilon absorbs float drift from repeated linear increments.
const opacityEpsilon = 1e-9

// Carousel is the queue of loading messages shown while a request is
// pending. Only Queue[Index] can have a non-zero opacity.
type Carousel struct {
	Queue   []string
	Index   int
	Opacity float64
	Step    CarouselStep
}

// Active reports whether the carousel still has frames to run.
func (c Carousel) Active() bool {
	return c.Step != StepDone && c.Index < len(c.Queue)
}

// Message returns the message on screen and its opacity.
func (c Carousel) Message() (string, float64) {
	if !c.Active() {
		return "", 0
	}
	return c.Queue[c.Index], c.Opacity
}

func newCarousel(queue []string) Carousel {
	if len(queue) == 0 {
		return Carousel{}
	}
	return Carousel{Queue: queue, Step: StepFadeIn}
}

// advance runs one carousel frame and returns the delay until the next
// one, or false when the queue is exhausted.
func (c Carousel) advance(s Settings) (Carousel, time.Duration, bool) {
	switch c.Step {
	case StepFadeIn:
		c.Opacity += s.fadeStep(s.CarouselFade)
		if c.Opacity >= 1-opacityEpsilon {
			c.Opacity = 1
			c.Step = StepHold
			return c, s.CarouselHold, true
		}
		return c, s.FrameInterval, true

	case StepHold:
		c.Step = StepFadeOut
		fallthrough

	case StepFadeOut:
		c.Opacity -= s.fadeStep(s.CarouselFade)
		if c.Opacity > opacityEpsilon {
			return c, s.FrameInterval, true
		}
		c.Opacity = 0
		c.Index++
		if c.Index >= len(c.Queue) {
			c.Step = StepDone
			return c, 0, false
		}
		c.Step = StepFadeIn
		return c, s.FrameInterval, true
	}
	return c, 0, false
}
