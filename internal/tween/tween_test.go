package tween

import (
	"math"
	"testing"
	"time"
)

// float32 precision inside gween
const eps = 1e-4

func TestEasingEndpoints(t *testing.T) {
	for _, name := range []string{"linear", "quad-out", "quad-in-out", "cubic-out"} {
		e := ByName(name)
		if e == nil {
			t.Fatalf("easing %q not found", name)
		}
		if v0, v1 := e(0, 0, 1, 1), e(1, 0, 1, 1); math.Abs(float64(v0)) > eps || math.Abs(float64(v1)-1) > eps {
			t.Errorf("%s: e(0)=%v e(1)=%v, want 0 and 1", name, v0, v1)
		}
	}
	if ByName("bounce") != nil {
		t.Error("unknown easing should return nil")
	}
}

func TestDefaultEasingDecelerates(t *testing.T) {
	// Ease-out covers more ground in the first half than the second.
	e := ByName("")
	first := e(0.5, 0, 1, 1) - e(0, 0, 1, 1)
	second := e(1, 0, 1, 1) - e(0.5, 0, 1, 1)
	if first <= second {
		t.Errorf("first half %v should exceed second half %v", first, second)
	}
}

func TestTweenUpdate(t *testing.T) {
	base := time.Unix(1000, 0)
	tw := New(0, 90, 300*time.Millisecond, ByName("linear"))

	v, done := tw.Update(base)
	if v != 0 || done {
		t.Fatalf("first update: v=%v done=%v", v, done)
	}

	v, done = tw.Update(base.Add(150 * time.Millisecond))
	if math.Abs(v-45) > eps || done {
		t.Errorf("halfway: v=%v done=%v, want 45 false", v, done)
	}
	if math.Abs(tw.Progress()-0.5) > 1e-9 {
		t.Errorf("progress = %v, want 0.5", tw.Progress())
	}

	v, done = tw.Update(base.Add(400 * time.Millisecond))
	if v != 90 || !done {
		t.Errorf("end: v=%v done=%v, want 90 true", v, done)
	}

	// Further updates are stable.
	v, done = tw.Update(base)
	if v != 90 || !done {
		t.Errorf("after done: v=%v done=%v", v, done)
	}
}

func TestTweenFrameSteps(t *testing.T) {
	// Many small frames land on the same curve as one large step.
	base := time.Unix(0, 0)
	stepped := New(0, math.Pi/2, 300*time.Millisecond, nil)
	jumped := New(0, math.Pi/2, 300*time.Millisecond, nil)
	stepped.Update(base)
	jumped.Update(base)

	now := base
	for i := 0; i < 10; i++ {
		now = now.Add(10 * time.Millisecond)
		stepped.Update(now)
	}
	v, _ := jumped.Update(now)
	if math.Abs(stepped.Value()-v) > eps {
		t.Errorf("stepped %v, jumped %v", stepped.Value(), v)
	}
}

func TestTweenEndsExactly(t *testing.T) {
	// The end value is the float64 target, not its float32 rounding.
	base := time.Unix(0, 0)
	tw := New(0, -math.Pi/2, 300*time.Millisecond, ByName("quad-out"))
	now := base
	for !tw.Done() {
		tw.Update(now)
		now = now.Add(time.Second / 60)
	}
	if tw.Value() != -math.Pi/2 || tw.Progress() != 1 {
		t.Errorf("final value %v progress %v", tw.Value(), tw.Progress())
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tw := New(0, -1, 0, nil)
	v, done := tw.Update(time.Unix(0, 0))
	if v != -1 || !done {
		t.Errorf("zero duration should finish at once, got v=%v done=%v", v, done)
	}
}

func TestTweenClockGoingBackwards(t *testing.T) {
	base := time.Unix(50, 0)
	tw := New(10, 20, time.Second, ByName("linear"))
	tw.Update(base)
	v, done := tw.Update(base.Add(-time.Second))
	if v != 10 || done {
		t.Errorf("negative elapsed should clamp to start, got v=%v done=%v", v, done)
	}
}
