// Package session implements the whack-a-mole session controller: the play-through
// lifecycle, spawn scheduling, scoring and input dispatch.
//
// The controller knows nothing about rendering. A Host receives spawn, despawn and
// effect requests and draws them however it likes; the controller is driven by one
// OnTick and one TrySpawn call per rendered frame, with input delivered on the same
// goroutine. Calls that arrive in the wrong state are ignored rather than reported,
// so duplicate taps from the host's input layer are harmless.
package session

// State is the lifecycle phase of a session.
type State int

const (
	Idle State = iota
	Placing
	CountingDown
	Running
	Finished
	Restarting
)

// String returns the lowercase phase name used in logs and events.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Placing:
		return "placing"
	case CountingDown:
		return "counting-down"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Restarting:
		return "restarting"
	default:
		return "unknown"
	}
}
