package animation

import (
	"time"

	"github.com/castrovroberto/prophet/internal/textutils"
)

// MinResponseVisible is the shortest time a response panel stays fully
// opaque before it starts fading.
const MinResponseVisible = 10 * time.Second

// Settings configures timings, pools and truncation for a Controller.
type Settings struct {
	FrameInterval   time.Duration
	CarouselFade    time.Duration
	CarouselHold    time.Duration
	ResponseVisible time.Duration
	ResponseFade    time.Duration

	// CarouselPool is sampled to build the loading-message queue. A non-empty
	// FinalMessage is always appended as the last entry.
	CarouselPool   []string
	CarouselLength int
	FinalMessage   string

	OptionPool  []PromptOption
	OptionCount int

	RateLimitNotice string
	Truncate        textutils.TruncateOptions
}

// DefaultSettings returns the timings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		FrameInterval:   50 * time.Millisecond,
		CarouselFade:    500 * time.Millisecond,
		CarouselHold:    1500 * time.Millisecond,
		ResponseVisible: MinResponseVisible,
		ResponseFade:    2 * time.Second,
		CarouselLength:  3,
		OptionCount:     3,
		RateLimitNotice: "You have reached your request limit for the day.",
		Truncate:        textutils.DefaultTruncateOptions(),
	}
}

// normalized fills zero values from DefaultSettings and enforces the
// minimum response visibility.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.FrameInterval <= 0 {
		s.FrameInterval = def.FrameInterval
	}
	if s.CarouselFade <= 0 {
		s.CarouselFade = def.CarouselFade
	}
	if s.CarouselHold < 0 {
		s.CarouselHold = 0
	}
	if s.ResponseVisible < MinResponseVisible {
		s.ResponseVisible = MinResponseVisible
	}
	if s.ResponseFade <= 0 {
		s.ResponseFade = def.ResponseFade
	}
	if s.CarouselLength < 0 {
		s.CarouselLength = 0
	}
	if s.OptionCount <= 0 {
		s.OptionCount = def.OptionCount
	}
	if s.RateLimitNotice == "" {
		s.RateLimitNotice = def.RateLimitNotice
	}
	if s.Truncate.MaxChars <= 0 {
		s.Truncate = def.Truncate
	}
	return s
}

// fadeStep is the opacity change per frame for a fade of duration d.
func (s Settings) fadeStep(d time.Duration) float64 {
	if d <= s.FrameInterval {
		return 1
	}
	return float64(s.FrameInterval) / float64(d)
}
