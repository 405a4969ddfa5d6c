// Package animation drives the transient visual feedback around a single
// chat request: the loading-message carousel, the response panel fade and
// the input lock that keeps two request cycles from overlapping.
//
// The controller never touches a clock. Every transition takes a State and
// returns the next State plus the Effects the host has to carry out, so the
// same logic runs under bubbletea ticks and under the virtual Timeline used
// in tests.
package animation

import "time"

// Phase is the position of the controller in the request cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingResponse
	PhaseResponseVisible
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingResponse:
		return "awaiting_response"
	case PhaseResponseVisible:
		return "response_visible"
	default:
		return "unknown"
	}
}

// Side is where the response panel is placed.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// PromptOption is a preset suggestion the user can send with one key press.
type PromptOption struct {
	Label string `yaml:"label" mapstructure:"label"`
	Image string `yaml:"image" mapstructure:"image"`
}

// ResponsePanel is the floating panel showing the latest assistant answer.
type ResponsePanel struct {
	Active  bool
	Text    string
	Side    Side
	Opacity float64
	Fading  bool
}

// State is the complete presentation state. It is a value: transitions
// return a modified copy and never mutate the slices they were given.
type State struct {
	Phase Phase
	Cycle uint64

	InputLocked         bool
	LastResponseSettled bool
	ResetAvailable      bool

	NextSide Side
	Carousel Carousel
	Panel    ResponsePanel
	Options  []PromptOption

	// Notice is a blocking message (rate limit) that must be dismissed.
	Notice string
	// LastError describes the most recent failed request, if any.
	LastError string
}

// Target identifies which animation chain a frame belongs to.
type Target int

const (
	TargetCarousel Target = iota
	TargetPanel
)

// Frame is one discrete animation step for a chain of a given cycle.
type Frame struct {
	Cycle  uint64
	Target Target
}

// Effect is work the host performs on behalf of the controller.
type Effect interface {
	effect()
}

// Schedule asks the host to deliver Frame after the given delay.
type Schedule struct {
	After time.Duration
	Frame Frame
}

// Submit asks the host to send Prompt to the chat session service and to
// report the outcome through Controller.Resolve with the same Cycle.
type Submit struct {
	Cycle  uint64
	Prompt string
}

func (Schedule) effect() {}
func (Submit) effect()   {}

// Result is the completion of a submitted request.
type Result struct {
	Cycle  uint64
	Status int
	Text   string
	Err    error
}
