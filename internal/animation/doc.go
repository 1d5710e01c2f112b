// Package animation provides easing curves and time-based tweens used by
// the compose runtime to animate sizes and rotations.
package animation
