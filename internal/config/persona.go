package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/castrovroberto/prophet/internal/animation"
)

// Persona describes who the user is talking to: the welcome card, the
// system prompt and the pools the presentation draws from.
type Persona struct {
	Name             string                   `yaml:"name"`
	Welcome          string                   `yaml:"welcome"`
	WelcomeImage     string                   `yaml:"welcome_image"`
	SystemPrompt     string                   `yaml:"system_prompt"`
	RateLimitNotice  string                   `yaml:"rate_limit_notice"`
	OptionCount      int                      `yaml:"option_count"`
	PromptOptions    []animation.PromptOption `yaml:"prompt_options"`
	CarouselMessages []string                 `yaml:"carousel_messages"`
	FinalMessage     string                   `yaml:"final_message"`
}

var (
	ErrPersonaRead    = errors.New("config: failed to read persona file")
	ErrPersonaInvalid = errors.New("config: invalid persona")
)

// DefaultPersona is used when no persona_file is configured.
func DefaultPersona() *Persona {
	return &Persona{
		Name:            "The Prophet",
		Welcome:         "Hi, I'm a fine tuned LLM. Pick a question below and I will answer it.",
		WelcomeImage:    "/sample-image.png",
		SystemPrompt:    "You are the prophet, a calm and slightly cryptic oracle. Answer in a few sentences.",
		RateLimitNotice: "You have reached your request limit for the day.",
		OptionCount:     3,
		PromptOptions: []animation.PromptOption{
			{Label: "Tell me about AI", Image: "/prompts/ai.png"},
			{Label: "Share an interesting fact", Image: "/prompts/fact.png"},
			{Label: "Give me a coding tip", Image: "/prompts/code.png"},
			{Label: "What does the future hold?", Image: "/prompts/future.png"},
			{Label: "Tell me a prophecy", Image: "/prompts/prophecy.png"},
			{Label: "What should I learn next?", Image: "/prompts/learn.png"},
		},
		CarouselMessages: []string{
			"Consulting the stars...",
			"Reading the tea leaves...",
			"Listening to the wind...",
			"Counting grains of sand...",
			"Asking the ancient scrolls...",
			"Polishing the crystal ball...",
		},
		FinalMessage: "The prophet is about to speak.",
	}
}

// LoadPersona reads a YAML persona file. Fields missing from the file keep
// the built-in values.
func LoadPersona(path string) (*Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersonaRead, err)
	}

	persona := DefaultPersona()
	if err := yaml.Unmarshal(data, persona); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPersonaRead, path, err)
	}
	if err := persona.Validate(); err != nil {
		return nil, err
	}
	return persona, nil
}

// Validate checks that the persona can drive a session.
func (p *Persona) Validate() error {
	if len(p.PromptOptions) == 0 {
		return fmt.Errorf("%w: at least one prompt option is required", ErrPersonaInvalid)
	}
	for i, opt := range p.PromptOptions {
		if opt.Label == "" {
			return fmt.Errorf("%w: prompt option %d has an empty label", ErrPersonaInvalid, i)
		}
	}
	if p.OptionCount < 0 {
		return fmt.Errorf("%w: option_count must not be negative", ErrPersonaInvalid)
	}
	return nil
}
