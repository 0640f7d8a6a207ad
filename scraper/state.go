package scraper

// State is a step of one balance lookup run.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateLocating
	StateFilling
	StateSubmitting
	StateWaiting
	StateExtracting
	StateRetrying
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateLocating:
		return "locating"
	case StateFilling:
		return "filling"
	case StateSubmitting:
		return "submitting"
	case StateWaiting:
		return "waiting"
	case StateExtracting:
		return "extracting"
	case StateRetrying:
		return "retrying"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
