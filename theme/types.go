package theme

import (
	"image"
	"strings"

	"github.com/pkg/errors"
)

// Format is the source document format of a vector cursor.
type Format uint8

const (
	// FormatPathScene is a scalable path scene document (SVG), one static frame.
	FormatPathScene Format = iota

	// FormatKeyframe is a keyframed composition document (Lottie JSON).
	FormatKeyframe
)

// String returns the descriptor name of the format.
func (f Format) String() string {
	switch f {
	case FormatPathScene:
		return "svg"
	case FormatKeyframe:
		return "lottie"
	default:
		return "unknown"
	}
}

// ParseFormat parses a descriptor format name.
func ParseFormat(s string) (Format, error) {
	switch normalize(s) {
	case "svg":
		return FormatPathScene, nil
	case "lottie":
		return FormatKeyframe, nil
	}
	return 0, errors.Errorf("unknown cursor format %q", s)
}

// TransitionKind selects how the compositor blends two cursors during a transition.
type TransitionKind uint8

const (
	TransitionMorph TransitionKind = iota
	TransitionCrossFade
	TransitionTransform
	TransitionLottie
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionMorph:
		return "morph"
	case TransitionCrossFade:
		return "crossfade"
	case TransitionTransform:
		return "transform"
	case TransitionLottie:
		return "lottie"
	default:
		return "unknown"
	}
}

// ParseTransitionKind parses a transition type name. Empty selects morph.
func ParseTransitionKind(s string) (TransitionKind, error) {
	switch normalize(s) {
	case "", "morph":
		return TransitionMorph, nil
	case "crossfade":
		return TransitionCrossFade, nil
	case "transform":
		return TransitionTransform, nil
	case "lottie":
		return TransitionLottie, nil
	}
	return 0, errors.Errorf("unknown transition type %q", s)
}

// Easing names a progress remapping curve.
type Easing uint8

const (
	EaseInOut Easing = iota
	Linear
	EaseIn
	EaseOut
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	Elastic
)

var easingNames = map[string]Easing{
	"linear":        Linear,
	"easein":        EaseIn,
	"easeout":       EaseOut,
	"easeinout":     EaseInOut,
	"easeinquad":    EaseInQuad,
	"easeoutquad":   EaseOutQuad,
	"easeinoutquad": EaseInOutQuad,
	"elastic":       Elastic,
}

var easingStrings = [...]string{
	EaseInOut:     "easeinout",
	Linear:        "linear",
	EaseIn:        "easein",
	EaseOut:       "easeout",
	EaseInQuad:    "easeinquad",
	EaseOutQuad:   "easeoutquad",
	EaseInOutQuad: "easeinoutquad",
	Elastic:       "elastic",
}

func (e Easing) String() string {
	if int(e) < len(easingStrings) {
		return easingStrings[e]
	}
	return "unknown"
}

// ParseEasing parses an easing name. Case and '-'/'_' separators are
// ignored, so "ease-in-out" and "EaseInOut" both select [EaseInOut].
// Empty selects EaseInOut.
func ParseEasing(s string) (Easing, error) {
	n := normalize(s)
	if n == "" {
		return EaseInOut, nil
	}
	if e, ok := easingNames[n]; ok {
		return e, nil
	}
	return 0, errors.Errorf("unknown easing %q", s)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// CursorDefinition describes one vector cursor.
type CursorDefinition struct {
	Format Format
	// File is the source document path, relative to the theme directory.
	File string
	// Hotspot in logical pixels; nil means the origin.
	Hotspot *image.Point
	// LoopMode is the raw loop_mode value ("once", "loop", "bounce" or empty).
	LoopMode string
}

// DefaultTransitionDuration is used when a transition omits duration_ms.
const DefaultTransitionDuration = 200

// TransitionConfig describes a transition between two cursors.
type TransitionConfig struct {
	Kind TransitionKind
	// DurationMs is the transition length; 0 completes on the next update.
	DurationMs uint32
	Easing     Easing
	// File is an optional transition document, relative to the theme directory.
	File string
}
