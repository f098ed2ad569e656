package pipeline

// State is the controller's position in a run.
type State int32

const (
	StateIdle State = iota
	StateDiscovering
	StateNoFiles
	StateProcessing
	StateSummarizing
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDiscovering:
		return "discovering"
	case StateNoFiles:
		return "no_files"
	case StateProcessing:
		return "processing"
	case StateSummarizing:
		return "summarizing"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
