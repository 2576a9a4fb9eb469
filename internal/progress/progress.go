// Package progress carries generation stage events from the orchestrator to
// whichever transport the caller wires in (CLI logging, WebSocket streaming).
package progress

// Stage identifies a phase of app generation.
type Stage string

const (
	StageFrontend   Stage = "frontend"
	StageBackend    Stage = "backend"
	StageConfig     Stage = "config"
	StageDeployment Stage = "deployment"
	StageDone       Stage = "done"
)

// Event is one progress notification. Files counts the paths produced by the
// completed stage, when known.
type Event struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Files   int    `json:"files,omitempty"`
}

// Sink consumes progress events. Implementations must tolerate being called
// from the generation goroutine.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }

// Discard swallows all events.
var Discard Sink = SinkFunc(func(Event) {})
