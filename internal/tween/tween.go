// Package tween drives a gween tween from a frame clock. Callers advance
// it with Update on every frame, passing a monotonically increasing
// timestamp; the time since the previous frame is fed to gween.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing is a gween easing function.
type Easing = ease.TweenFunc

// DefaultEasing is the curve used when none is named.
var DefaultEasing Easing = ease.OutQuad

// ByName returns the easing registered under name, or nil.
func ByName(name string) Easing {
	switch name {
	case "linear":
		return ease.Linear
	case "quad-out", "":
		return ease.OutQuad
	case "quad-in-out":
		return ease.InOutQuad
	case "cubic-out":
		return ease.OutCubic
	}
	return nil
}

// Tween is a single from→to interpolation.
type Tween struct {
	tw       *gween.Tween
	from, to float64
	duration time.Duration

	last    time.Time
	started bool
	elapsed time.Duration
	value   float64
	done    bool
}

// New creates a tween. A nil easing means linear.
func New(from, to float64, duration time.Duration, easing Easing) *Tween {
	if easing == nil {
		easing = ease.Linear
	}
	return &Tween{
		tw:       gween.New(float32(from), float32(to), float32(duration.Seconds()), easing),
		from:     from,
		to:       to,
		duration: duration,
		value:    from,
	}
}

// Update advances the tween to now and returns the current value and
// whether the end has been reached. The first call fixes the start time
// and a clock going backwards does not move the tween. Once done, the
// value is exactly `to`.
func (t *Tween) Update(now time.Time) (float64, bool) {
	if t.done {
		return t.value, true
	}

	var dt time.Duration
	if t.started {
		dt = now.Sub(t.last)
	}
	if dt < 0 {
		dt = 0
	} else {
		t.last = now
	}
	t.started = true
	t.elapsed += dt

	if t.duration <= 0 || t.elapsed >= t.duration {
		t.Finish()
		return t.value, true
	}

	v, done := t.tw.Update(float32(dt.Seconds()))
	if done {
		t.Finish()
		return t.value, true
	}
	t.value = float64(v)
	return t.value, false
}

// Finish jumps to the end value.
func (t *Tween) Finish() {
	t.tw.Set(float32(t.duration.Seconds()))
	t.elapsed = t.duration
	t.value = t.to
	t.done = true
}

// Value returns the last computed value.
func (t *Tween) Value() float64 { return t.value }

// Progress returns linear progress in [0,1].
func (t *Tween) Progress() float64 {
	if t.done {
		return 1
	}
	if t.duration <= 0 {
		return 0
	}
	return float64(t.elapsed) / float64(t.duration)
}

// Done reports whether the tween has finished.
func (t *Tween) Done() bool { return t.done }
