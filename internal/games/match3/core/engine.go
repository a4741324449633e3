package core

import (
	"fmt"
	"math/rand"
)

// Engine owns the active grid and the cached list of legal swaps.
//
// The engine is single-threaded: the state guard only protects against
// reentrant calls made from listeners while an operation is in progress.
// Callers sharing an Engine between goroutines must serialize access themselves.
type Engine struct {
	grid  Grid
	swaps []Swap
	state State
	stale bool // Grid changed by a swap; cache is out of date until UpdateBoard

	rng       *rand.Rand
	listeners []subscription
	nextSubID int
}

type subscription struct {
	id int
	fn Listener
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the RNG used by RandomHint.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithListener subscribes fn at construction time.
func WithListener(fn Listener) Option {
	return func(e *Engine) {
		e.Subscribe(fn)
	}
}

// NewEngine creates an idle engine with no board.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers a listener and returns a function that removes it.
func (e *Engine) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	e.nextSubID++
	id := e.nextSubID
	e.listeners = append(e.listeners, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range e.listeners {
			if sub.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// emit delivers ev to a snapshot of the current listeners.
func (e *Engine) emit(ev Event) {
	subs := make([]subscription, len(e.listeners))
	copy(subs, e.listeners)
	for _, sub := range subs {
		sub.fn(ev)
	}
}

// InitializeBoard sets the active grid, recomputes the legal-swap cache and
// resets the guard to Idle.
func (e *Engine) InitializeBoard(g Grid) error {
	if g.IsZero() {
		return fmt.Errorf("initialize board: nil grid: %w", ErrInvalidArgument)
	}
	e.setBoard(g)
	return nil
}

// UpdateBoard re-synchronizes the engine after an external change such as a
// refill. It has the same cost and failure contract as InitializeBoard.
func (e *Engine) UpdateBoard(g Grid) error {
	if g.IsZero() {
		return fmt.Errorf("update board: nil grid: %w", ErrInvalidArgument)
	}
	e.setBoard(g)
	return nil
}

func (e *Engine) setBoard(g Grid) {
	e.grid = g
	e.swaps = DetectPossibleSwaps(g)
	e.state = StateIdle
	e.stale = false
	e.emit(PossibleSwapsUpdatedEvent{Swaps: e.PossibleSwaps()})
}

// Grid returns the active grid.
func (e *Engine) Grid() Grid {
	return e.grid
}

// State returns the current guard state.
func (e *Engine) State() State {
	return e.state
}

// Busy returns true while a swap or match processing is in progress.
func (e *Engine) Busy() bool {
	return e.state != StateIdle
}

// NeedsResolution returns true after a successful swap until the next UpdateBoard.
func (e *Engine) NeedsResolution() bool {
	return e.stale
}

// PossibleSwaps returns a copy of the cached legal swaps.
func (e *Engine) PossibleSwaps() []Swap {
	out := make([]Swap, len(e.swaps))
	copy(out, e.swaps)
	return out
}

// HasPossibleMoves returns false when the board is deadlocked.
// The engine only reports the condition; reshuffling is up to the caller.
func (e *Engine) HasPossibleMoves() bool {
	return len(e.swaps) > 0
}

// RandomHint returns a uniformly chosen legal swap.
// ok is false when no legal swap exists.
func (e *Engine) RandomHint() (hint Swap, ok bool) {
	if len(e.swaps) == 0 {
		return Swap{}, false
	}
	return e.swaps[e.rng.Intn(len(e.swaps))], true
}

// IsLegal reports whether s is in the legal-swap cache.
func (e *Engine) IsLegal(s Swap) bool {
	for _, legal := range e.swaps {
		if legal.Equal(s) {
			return true
		}
	}
	return false
}

// ValidateAndExecuteSwap applies s if it is legal for the active grid.
//
// Legality is decided by membership in the cached swap list, not by a fresh
// match check. Rejections return false and emit InvalidSwapAttemptedEvent.
// After a successful swap the grid contains matches and the cache is stale:
// further swaps are refused until UpdateBoard installs the resolved board.
func (e *Engine) ValidateAndExecuteSwap(s Swap) bool {
	if reason, ok := e.validate(s); !ok {
		e.emit(InvalidSwapAttemptedEvent{Swap: s, Reason: reason})
		return false
	}

	e.state = StateSwapping
	defer func() { e.state = StateIdle }()

	// Cached swaps are in bounds for the active grid.
	next, err := e.grid.Swap(s.A, s.B)
	if err != nil {
		return false
	}

	e.grid = next
	e.stale = true
	e.emit(ValidSwapExecutedEvent{Swap: s})
	return true
}

// validate runs the rejection checks in order.
func (e *Engine) validate(s Swap) (RejectReason, bool) {
	switch {
	case e.Busy():
		return RejectBusy, false
	case s.Degenerate():
		return RejectDegenerate, false
	case !s.Adjacent():
		return RejectNotAdjacent, false
	case e.stale:
		return RejectStale, false
	case !e.IsLegal(s):
		return RejectNotLegal, false
	}
	return 0, true
}

// ProcessMatches reports every match on the active grid.
// It returns nil without side effects if the engine is busy. The engine does
// not clear tiles; removal and refill are left to the caller.
func (e *Engine) ProcessMatches() []Match {
	if e.Busy() {
		return nil
	}

	e.state = StateProcessingMatches
	defer func() { e.state = StateIdle }()

	matches := FindAllMatches(e.grid)
	if len(matches) > 0 {
		e.emit(MatchesFoundEvent{Matches: cloneMatches(matches)})
	}
	return matches
}

// DetectPossibleSwaps returns every adjacent pair whose exchange produces at
// least one match in the rows and columns of the two cells.
// Each cell is paired with its right and lower neighbour, so every edge is
// tested once. Cost is O(w*h*(w+h)).
func DetectPossibleSwaps(g Grid) []Swap {
	if g.IsZero() {
		return nil
	}

	swaps := make([]Swap, 0)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			a := C(x, y)
			for _, b := range []Coord{a.Add(1, 0), a.Add(0, 1)} {
				if !g.InBounds(b) {
					continue
				}
				if wouldMatch(g, a, b) {
					swaps = append(swaps, NewSwap(a, b))
				}
			}
		}
	}
	return swaps
}

// wouldMatch simulates exchanging a and b.
func wouldMatch(g Grid, a, b Coord) bool {
	swapped, err := g.Swap(a, b)
	if err != nil {
		return false
	}
	return len(FindMatchesTouching(swapped, a, b)) > 0
}

func cloneMatches(matches []Match) []Match {
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = m.clone()
	}
	return out
}
