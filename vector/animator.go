package vector

import (
	"strings"

	"github.com/gogpu/cursor/internal/logx"
	"github.com/gogpu/cursor/theme"
)

// StateKind identifies the active [State] variant.
type StateKind uint8

const (
	// StateStatic means no vector cursor is active.
	StateStatic StateKind = iota
	// StateAnimated shows one cursor, advancing its playhead.
	StateAnimated
	// StateTransitioning blends from one cursor to another.
	StateTransitioning
)

func (k StateKind) String() string {
	switch k {
	case StateAnimated:
		return "animated"
	case StateTransitioning:
		return "transitioning"
	default:
		return "static"
	}
}

// LoopMode controls playback once the last frame is reached.
type LoopMode uint8

const (
	Loop LoopMode = iota
	Once
	Bounce
)

// ParseLoopMode parses a loop_mode value. Anything unrecognised is [Loop].
func ParseLoopMode(s string) LoopMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once":
		return Once
	case "bounce":
		return Bounce
	default:
		return Loop
	}
}

func (m LoopMode) String() string {
	switch m {
	case Once:
		return "once"
	case Bounce:
		return "bounce"
	default:
		return "loop"
	}
}

// State is a snapshot of the animator. Only the fields of the active Kind
// are meaningful.
type State struct {
	Kind StateKind

	// Animated
	CursorID   string
	PlayheadMs uint64
	Loop       LoopMode

	// Transitioning
	FromID string
	ToID   string
	// Progress is the eased transition progress in [0, 1].
	Progress float64
	// ElapsedMs is the raw time spent in the transition.
	ElapsedMs uint32
}

// Target returns the cursor being shown, or transitioned to.
func (s State) Target() (string, bool) {
	switch s.Kind {
	case StateAnimated:
		return s.CursorID, true
	case StateTransitioning:
		return s.ToID, true
	default:
		return "", false
	}
}

// Animator is the vector cursor state machine. It is advanced only by
// [Animator.SetCursor] and [Animator.Update].
type Animator struct {
	cfg      *theme.Config
	baseSize int
	state    State
}

// NewAnimator starts on the cursor named "default" when the theme defines
// one, and in [StateStatic] otherwise.
func NewAnimator(cfg *theme.Config, baseSize int) *Animator {
	a := &Animator{cfg: cfg, baseSize: baseSize}
	if def, ok := cfg.Cursor("default"); ok {
		a.state = animated("default", ParseLoopMode(def.LoopMode))
	}
	return a
}

func animated(id string, loop LoopMode) State {
	return State{Kind: StateAnimated, CursorID: id, Loop: loop}
}

// State returns the current state.
func (a *Animator) State() State { return a.state }

// Target returns the cursor being shown, or transitioned to.
func (a *Animator) Target() (string, bool) { return a.state.Target() }

// BaseSize returns the logical cursor size.
func (a *Animator) BaseSize() int { return a.baseSize }

// Config returns the theme the animator runs against.
func (a *Animator) Config() *theme.Config { return a.cfg }

// SetCursor selects the cursor id.
//
// Selecting the current target is a no-op. Otherwise a configured transition
// from the current target is started, else the cursor is shown directly.
// An id the theme does not define, with no transition to it, leaves the
// animator static.
func (a *Animator) SetCursor(id string) {
	from, ok := a.state.Target()
	if ok {
		if from == id {
			return
		}
		if _, ok := a.cfg.Transition(from, id); ok {
			a.set(State{Kind: StateTransitioning, FromID: from, ToID: id})
			return
		}
	}

	if def, ok := a.cfg.Cursor(id); ok {
		a.set(animated(id, ParseLoopMode(def.LoopMode)))
		return
	}
	a.set(State{})
}

// Update advances the animator by elapsedMs.
//
// A transition finishes once its accumulated time reaches the configured
// duration and always lands on the target in [Loop] mode. A transition whose
// entry has left the theme snaps to [StateStatic]. Keyframe cursors advance
// their playhead; everything else is unaffected.
func (a *Animator) Update(elapsedMs uint32) {
	switch a.state.Kind {
	case StateTransitioning:
		tc, ok := a.cfg.Transition(a.state.FromID, a.state.ToID)
		if !ok {
			a.set(State{})
			return
		}

		elapsed := uint64(a.state.ElapsedMs) + uint64(elapsedMs)
		if elapsed >= uint64(tc.DurationMs) {
			a.set(animated(a.state.ToID, Loop))
			return
		}
		a.state.ElapsedMs = uint32(elapsed)
		a.state.Progress = Ease(tc.Easing, float64(elapsed)/float64(tc.DurationMs))

	case StateAnimated:
		def, ok := a.cfg.Cursor(a.state.CursorID)
		if !ok || def.Format != theme.FormatKeyframe {
			return
		}
		a.state.PlayheadMs += uint64(elapsedMs)
	}
}

// SetConfig swaps the theme after a reload. An animated cursor the new theme
// no longer defines drops the animator to [StateStatic]; a vanished
// transition is handled by the next Update.
func (a *Animator) SetConfig(cfg *theme.Config) {
	a.cfg = cfg
	if a.state.Kind != StateAnimated {
		return
	}
	if _, ok := cfg.Cursor(a.state.CursorID); !ok {
		a.set(State{})
	}
}

func (a *Animator) set(s State) {
	if s.Kind != a.state.Kind || s.CursorID != a.state.CursorID || s.ToID != a.state.ToID {
		logx.Logger().Debug("vector: animator state",
			"kind", s.Kind.String(), "cursor", s.CursorID, "from", s.FromID, "to", s.ToID)
	}
	a.state = s
}
