package core

// Event is a notification emitted by the Engine.
// Payload slices are copies owned by the receiver.
type Event interface {
	engineEvent()
}

// Listener receives engine events synchronously, in emission order.
type Listener func(Event)

// PossibleSwapsUpdatedEvent is emitted after every InitializeBoard/UpdateBoard.
type PossibleSwapsUpdatedEvent struct {
	Swaps []Swap
}

func (PossibleSwapsUpdatedEvent) engineEvent() {}

// MatchesFoundEvent is emitted when ProcessMatches finds at least one match.
type MatchesFoundEvent struct {
	Matches []Match
}

func (MatchesFoundEvent) engineEvent() {}

// ValidSwapExecutedEvent is emitted when a swap passes validation and is applied.
type ValidSwapExecutedEvent struct {
	Swap Swap
}

func (ValidSwapExecutedEvent) engineEvent() {}

// InvalidSwapAttemptedEvent is emitted whenever ValidateAndExecuteSwap rejects a swap.
type InvalidSwapAttemptedEvent struct {
	Swap   Swap
	Reason RejectReason
}

func (InvalidSwapAttemptedEvent) engineEvent() {}

// RejectReason describes why a swap was refused.
type RejectReason int

const (
	RejectBusy        RejectReason = iota // Engine is mid-operation
	RejectDegenerate                      // Both coordinates are the same cell
	RejectNotAdjacent                     // Cells do not share an edge
	RejectNotLegal                        // Swap is not in the legal-swap cache
	RejectStale                           // Board changed since the cache was computed
)

func (r RejectReason) String() string {
	switch r {
	case RejectBusy:
		return "engine busy"
	case RejectDegenerate:
		return "same cell"
	case RejectNotAdjacent:
		return "not adjacent"
	case RejectNotLegal:
		return "no match"
	case RejectStale:
		return "board not resolved"
	default:
		return "unknown"
	}
}

// State is the engine's reentrancy guard.
type State int

const (
	StateIdle State = iota
	StateSwapping
	StateProcessingMatches
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSwapping:
		return "Swapping"
	case StateProcessingMatches:
		return "ProcessingMatches"
	default:
		return "Unknown"
	}
}
