package controller

import (
	"time"

	"github.com/vscj1234/content-agent-langgraph/internal/attachment"
	"github.com/vscj1234/content-agent-langgraph/internal/generation"
	"github.com/vscj1234/content-agent-langgraph/internal/schedule"
)

// State is the panel the controller is currently showing
type State int

const (
	// Idle shows the form
	Idle State = iota
	// Loading hides the form and shows the progress stages
	Loading
	// Results shows the generated caption, content and image
	Results
	// Error shows the form again with the failure message
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Results:
		return "results"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// FormState is the raw user input
type FormState struct {
	Topic          string
	Platforms      []string
	ScheduleOption schedule.Option
	ScheduleTime   string
	Attachment     string
}

// ResultsPanel is the content of the results view
type ResultsPanel struct {
	Caption      string
	Content      string
	ImageURL     string
	ImageVisible bool
	Message      string
}

// Snapshot is everything a View needs to draw the controller
type Snapshot struct {
	State   State
	Attempt string

	// Submitted is the request of the current attempt
	Submitted generation.Request

	// Stage is the active progress stage while loading
	Stage      string
	StageIndex int
	StageCount int

	Results      ResultsPanel
	ErrorMessage string

	Form            FormState
	ScheduleVisible bool
	MinScheduleTime time.Time
	Preview         attachment.Preview
}

// FormVisible reports whether the input form is on screen
func (s Snapshot) FormVisible() bool {
	return s.State == Idle || s.State == Error
}

// LoadingVisible reports whether the progress indicator is on screen
func (s Snapshot) LoadingVisible() bool {
	return s.State == Loading
}

// ResultsVisible reports whether the results panel is on screen
func (s Snapshot) ResultsVisible() bool {
	return s.State == Results
}

// ImageVisible reports whether the image panel is on screen
func (s Snapshot) ImageVisible() bool {
	return s.State == Results && s.Results.ImageVisible
}
