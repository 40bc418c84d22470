package session

import (
	"errors"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// ErrInvalidTransition reports an event that is not legal in the current
// panel state.
var ErrInvalidTransition = errors.New("invalid panel state transition")

// PanelState is the visibility state of the generation panel. Exactly one of
// the four is active at a time.
type PanelState int

const (
	PanelIdle PanelState = iota
	PanelLoading
	PanelError
	PanelResult
)

func (s PanelState) String() string {
	switch s {
	case PanelIdle:
		return "idle"
	case PanelLoading:
		return "loading"
	case PanelError:
		return "error"
	case PanelResult:
		return "result"
	default:
		return "unknown"
	}
}

// Event drives panel transitions.
type Event int

const (
	EventSubmit Event = iota
	EventSucceed
	EventFail
)

// Transition applies an event to the panel state.
//
//	idle/error/result --submit--> loading
//	loading --succeed--> result
//	loading --fail--> error
//
// A submit while loading is rejected with ErrGenerationInFlight: this is the
// server-side equivalent of disabling the trigger control while a request is
// in flight, so no second generation can run concurrently for a session. All
// other pairs are invalid and leave the state unchanged.
func (s PanelState) Transition(ev Event) (PanelState, error) {
	switch ev {
	case EventSubmit:
		if s == PanelLoading {
			return s, models.ErrGenerationInFlight
		}
		return PanelLoading, nil
	case EventSucceed:
		if s != PanelLoading {
			return s, ErrInvalidTransition
		}
		return PanelResult, nil
	case EventFail:
		if s != PanelLoading {
			return s, ErrInvalidTransition
		}
		return PanelError, nil
	default:
		return s, ErrInvalidTransition
	}
}
