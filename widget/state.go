package widget

import (
	"github.com/fhsmendes/weather-widget/models"
	"github.com/goccy/go-json"
)

// NotFoundMessage is shown for every failed lookup.
const NotFoundMessage = "City not found"

// State is one of Idle, Success or Failure.
type State interface {
	status() string
}

type Idle struct{}

type Success struct {
	Result models.WeatherResult
}

type Failure struct {
	Message string
}

func (Idle) status() string    { return "idle" }
func (Success) status() string { return "success" }
func (Failure) status() string { return "failure" }

// Status names the state: "idle", "success" or "failure". A nil state is idle.
func Status(s State) string {
	if s == nil {
		return Idle{}.status()
	}
	return s.status()
}

// Snapshot is what a view renders: the input text and the display state.
type Snapshot struct {
	Input string
	State State
}

// Result returns the weather result when the snapshot is in the success state.
func (s Snapshot) Result() (models.WeatherResult, bool) {
	if st, ok := s.State.(Success); ok {
		return st.Result, true
	}
	return models.WeatherResult{}, false
}

// ErrorMessage returns the failure message, or "" outside the failure state.
func (s Snapshot) ErrorMessage() string {
	if st, ok := s.State.(Failure); ok {
		return st.Message
	}
	return ""
}

type snapshotJSON struct {
	Input  string                `json:"input"`
	Status string                `json:"status"`
	Result *models.WeatherResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{Input: s.Input, Status: Status(s.State), Error: s.ErrorMessage()}
	if r, ok := s.Result(); ok {
		out.Result = &r
	}
	return json.Marshal(out)
}
