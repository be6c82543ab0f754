package vector

// SampleFrame returns the frame index r should draw for st.
//
// The index is PlayheadMs / FrameDuration. [Loop] wraps it, [Once] holds the
// last frame and [Bounce] plays forward then backward over 2(n-1) frames.
// Static renderers, and every state other than [StateAnimated], sample 0.
func SampleFrame(st State, r Renderer) uint32 {
	n := uint64(r.TotalFrames())
	d := uint64(r.FrameDuration())
	if st.Kind != StateAnimated || n <= 1 || d == 0 {
		return 0
	}

	i := st.PlayheadMs / d
	switch st.Loop {
	case Once:
		return uint32(min(i, n-1))
	case Bounce:
		period := 2 * (n - 1)
		i %= period
		if i >= n {
			i = period - i
		}
		return uint32(i)
	default:
		return uint32(i % n)
	}
}
