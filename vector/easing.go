package vector

import (
	"math"

	"github.com/gogpu/cursor/theme"
)

// Ease maps linear progress t onto the easing curve e. t is clamped to [0, 1]
// first, and every curve maps 0 to 0 and 1 to 1.
func Ease(e theme.Easing, t float64) float64 {
	t = min(max(t, 0), 1)

	switch e {
	case theme.Linear:
		return t
	case theme.EaseIn, theme.EaseInQuad:
		return t * t
	case theme.EaseOut, theme.EaseOutQuad:
		return 1 - (1-t)*(1-t)
	case theme.Elastic:
		if t == 0 || t == 1 {
			return t
		}
		const c4 = 2 * math.Pi / 3
		return math.Pow(2, -10*t)*math.Sin((10*t-0.75)*c4) + 1
	default: // EaseInOut, EaseInOutQuad
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - 2*(1-t)*(1-t)
	}
}
