package config

import "github.com/castrovroberto/prophet/internal/animation"

// AnimationSettings combines the timings, the truncation limits and the
// persona pools into controller settings.
func (ac *AppConfig) AnimationSettings() animation.Settings {
	p := ac.Persona()
	return animation.Settings{
		FrameInterval:   ac.Animation.FrameInterval,
		CarouselFade:    ac.Animation.CarouselFade,
		CarouselHold:    ac.Animation.CarouselHold,
		ResponseVisible: ac.Animation.ResponseVisible,
		ResponseFade:    ac.Animation.ResponseFade,
		CarouselPool:    p.CarouselMessages,
		CarouselLength:  ac.Animation.CarouselLength,
		FinalMessage:    p.FinalMessage,
		OptionPool:      p.PromptOptions,
		OptionCount:     p.OptionCount,
		RateLimitNotice: p.RateLimitNotice,
		Truncate:        ac.Truncate,
	}
}
