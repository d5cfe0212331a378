package broker

// State is a step of a single acquisition.
type State int

const (
	Idle State = iota
	AwaitingClient
	CacheHit
	SilentRequest
	InteractiveRequest
	Resolved
)

func (s State) String() string {
	switch s {
	case AwaitingClient:
		return "awaitingClient"
	case CacheHit:
		return "cacheHit"
	case SilentRequest:
		return "silentRequest"
	case InteractiveRequest:
		return "interactiveRequest"
	case Resolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Observer receives every state an acquisition passes through.
type Observer func(state State)
