package animation

import "time"

// Tween interpolates between two values over a fixed duration.
type Tween struct {
	Duration time.Duration
	Curve    Curve
}

// DefaultTween is the 300ms decelerating tween used for content size and
// rotation changes.
var DefaultTween = Tween{Duration: 300 * time.Millisecond, Curve: LinearOutSlowIn}

// Progress returns eased progress for the elapsed time, clamped to [0, 1].
func (t Tween) Progress(elapsed time.Duration) float64 {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	linear := float64(elapsed) / float64(t.Duration)
	if t.Curve == nil {
		return linear
	}
	return t.Curve(linear)
}

// Lerp returns the value between from and to after elapsed time.
func (t Tween) Lerp(from, to float64, elapsed time.Duration) float64 {
	if t.Done(elapsed) {
		return to
	}
	return from + (to-from)*t.Progress(elapsed)
}

// Done reports whether the tween has reached its end.
func (t Tween) Done(elapsed time.Duration) bool {
	return t.Duration <= 0 || elapsed >= t.Duration
}
