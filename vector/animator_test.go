package vector

import (
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/cursor/theme"
)

const animatorTheme = `
[cursors.default]
format = "svg"
file = "default.svg"
hotspot = [4, 4]

[cursors.wait]
format = "lottie"
file = "wait.json"
loop_mode = "bounce"

[cursors.pointer]
format = "svg"
file = "pointer.svg"
loop_mode = "once"

[transitions."default->wait"]
type = "crossfade"
duration_ms = 300
easing = "linear"

[transitions."pointer->default"]
duration_ms = 0
`

func parseTheme(t *testing.T, doc string) *theme.Config {
	t.Helper()
	cfg, err := theme.Parse([]byte(doc), theme.TOML)
	require.NoError(t, err)
	return cfg
}

func TestNewAnimator(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)
	assert.Equal(t, State{Kind: StateAnimated, CursorID: "default", Loop: Loop}, a.State())
	assert.Equal(t, 24, a.BaseSize())

	a = NewAnimator(parseTheme(t, "[cursors.wait]\nformat = \"lottie\"\nfile = \"wait.json\"\n"), 24)
	assert.Equal(t, StateStatic, a.State().Kind)
	_, ok := a.Target()
	assert.False(t, ok)
}

func TestAnimatorTransitionCompletes(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)

	a.SetCursor("wait")
	st := a.State()
	assert.Equal(t, StateTransitioning, st.Kind)
	assert.Equal(t, "default", st.FromID)
	assert.Equal(t, "wait", st.ToID)
	assert.Zero(t, st.Progress)

	a.Update(100)
	assert.InDelta(t, 1.0/3, a.State().Progress, 1e-9)
	a.Update(100)
	assert.InDelta(t, 2.0/3, a.State().Progress, 1e-9)
	a.Update(100)

	// the target's own loop mode is not applied after a transition
	assert.Equal(t, State{Kind: StateAnimated, CursorID: "wait", Loop: Loop}, a.State())
}

func TestAnimatorSetCursorIdempotent(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)

	a.SetCursor("default")
	assert.Equal(t, State{Kind: StateAnimated, CursorID: "default", Loop: Loop}, a.State())

	a.SetCursor("wait")
	a.Update(120)
	before := a.State()
	a.SetCursor("wait")
	assert.Equal(t, before, a.State(), "re-selecting the transition target")
	assert.Equal(t, uint32(120), a.State().ElapsedMs)
}

func TestAnimatorSetCursorWithoutTransition(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)

	a.SetCursor("pointer")
	assert.Equal(t, State{Kind: StateAnimated, CursorID: "pointer", Loop: Once}, a.State())

	a.SetCursor("nonexistent")
	assert.Equal(t, StateStatic, a.State().Kind)

	a.SetCursor("wait")
	assert.Equal(t, State{Kind: StateAnimated, CursorID: "wait", Loop: Bounce}, a.State(),
		"static has no transition source")
}

func TestAnimatorZeroDurationTransition(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)
	a.SetCursor("pointer")
	a.SetCursor("default")
	require.Equal(t, StateTransitioning, a.State().Kind)

	a.Update(0)
	assert.Equal(t, State{Kind: StateAnimated, CursorID: "default", Loop: Loop}, a.State())
}

func TestAnimatorTransitionVanishes(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)
	a.SetCursor("wait")
	a.Update(50)

	a.SetConfig(parseTheme(t, "[cursors.wait]\nformat = \"lottie\"\nfile = \"wait.json\"\n"))
	assert.Equal(t, StateTransitioning, a.State().Kind)

	a.Update(10)
	assert.Equal(t, StateStatic, a.State().Kind)
}

func TestAnimatorSetConfigDropsVanishedCursor(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)
	a.SetConfig(parseTheme(t, "[cursors.wait]\nformat = \"lottie\"\nfile = \"wait.json\"\n"))
	assert.Equal(t, StateStatic, a.State().Kind)
}

func TestAnimatorPlayhead(t *testing.T) {
	a := NewAnimator(parseTheme(t, animatorTheme), 24)

	a.Update(40)
	assert.Zero(t, a.State().PlayheadMs, "path scenes have no playhead")

	a.SetCursor("pointer")
	a.SetCursor("nonexistent")
	a.SetCursor("wait")
	a.Update(40)
	a.Update(25)
	assert.Equal(t, uint64(65), a.State().PlayheadMs)

	a.SetCursor("nonexistent")
	a.Update(40)
	assert.Equal(t, State{}, a.State())
}

func TestEaseEndpoints(t *testing.T) {
	for _, e := range []theme.Easing{
		theme.Linear, theme.EaseIn, theme.EaseOut, theme.EaseInOut,
		theme.EaseInQuad, theme.EaseOutQuad, theme.EaseInOutQuad, theme.Elastic,
	} {
		t.Run(e.String(), func(t *testing.T) {
			assert.Equal(t, 0.0, Ease(e, 0))
			assert.Equal(t, 1.0, Ease(e, 1))
			assert.Equal(t, 0.0, Ease(e, -3), "clamped below")
			assert.Equal(t, 1.0, Ease(e, 7), "clamped above")
		})
	}
}

func TestEaseCurves(t *testing.T) {
	tests := []struct {
		e    theme.Easing
		t    float64
		want float64
	}{
		{theme.Linear, 0.25, 0.25},
		{theme.EaseIn, 0.5, 0.25},
		{theme.EaseOut, 0.5, 0.75},
		{theme.EaseInOut, 0.25, 0.125},
		{theme.EaseInOut, 0.5, 0.5},
		{theme.EaseInOut, 0.75, 0.875},
		{theme.EaseInOutQuad, 0.75, 0.875},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%v", tc.e, tc.t), func(t *testing.T) {
			assert.InDelta(t, tc.want, Ease(tc.e, tc.t), 1e-12)
		})
	}
}

func TestEaseInOutContinuous(t *testing.T) {
	below := Ease(theme.EaseInOut, 0.5-1e-9)
	above := Ease(theme.EaseInOut, 0.5+1e-9)
	assert.InDelta(t, below, above, 1e-6)

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := Ease(theme.EaseInOut, float64(i)/100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

type fakeRenderer struct {
	frames   uint32
	duration uint32
}

func (f fakeRenderer) sealed()                                {}
func (f fakeRenderer) ID() string                             { return "fake" }
func (f fakeRenderer) Format() theme.Format                   { return theme.FormatKeyframe }
func (f fakeRenderer) Hotspot() image.Point                   { return image.Point{} }
func (f fakeRenderer) TotalFrames() uint32                    { return f.frames }
func (f fakeRenderer) FrameDuration() uint32                  { return f.duration }
func (f fakeRenderer) RenderFrame(uint32, int) (Frame, error) { return Frame{}, nil }

func TestSampleFrame(t *testing.T) {
	r := fakeRenderer{frames: 3, duration: 10}
	at := func(ms uint64, loop LoopMode) State {
		return State{Kind: StateAnimated, CursorID: "fake", PlayheadMs: ms, Loop: loop}
	}

	tests := []struct {
		name string
		st   State
		want uint32
	}{
		{"loop start", at(0, Loop), 0},
		{"loop mid", at(25, Loop), 2},
		{"loop wraps", at(35, Loop), 0},
		{"once holds last", at(500, Once), 2},
		{"bounce forward", at(20, Bounce), 2},
		{"bounce back", at(30, Bounce), 1},
		{"bounce cycle", at(40, Bounce), 0},
		{"transitioning", State{Kind: StateTransitioning, PlayheadMs: 25}, 0},
		{"static", State{PlayheadMs: 25}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SampleFrame(tc.st, r))
		})
	}

	assert.Zero(t, SampleFrame(at(25, Loop), fakeRenderer{frames: 30}), "zero frame duration")
	assert.Zero(t, SampleFrame(at(25, Loop), fakeRenderer{frames: 1, duration: 10}))
}
