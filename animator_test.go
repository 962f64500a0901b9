package cube3d

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var (
	testClock = time.Unix(1_700_000_000, 0)
	testFrame = time.Second / 60
)

func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func newTestQueue(c *Cube, opts ...Option) *Queue {
	return NewQueue(c, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

type transform struct {
	pos mgl64.Vec3
	rot mgl64.Quat
}

func snapshot(c *Cube) map[int]transform {
	out := make(map[int]transform)
	for _, cb := range c.Cubies() {
		out[cb.ID] = transform{cb.Position(), cb.Orientation()}
	}
	return out
}

func sameTransforms(t *testing.T, c *Cube, before map[int]transform) {
	t.Helper()
	for _, cb := range c.Cubies() {
		b := before[cb.ID]
		if !cb.Position().ApproxEqualThreshold(b.pos, DefaultTolerance) {
			t.Errorf("%v: position %v, want %v", cb, cb.Position(), b.pos)
		}
		if !cb.Orientation().OrientationEqualThreshold(b.rot, DefaultTolerance) {
			t.Errorf("%v: orientation %v, want %v", cb, cb.Orientation(), b.rot)
		}
	}
}

// runTurn animates a single turn to completion with the frame clock.
func runTurn(t *testing.T, c *Cube, r Rotation) *Turn {
	t.Helper()
	finished := false
	turn := StartTurn(c, r, func(*Turn) { finished = true }, WithLogger(quietLogger()))
	now := testClock
	for i := 0; !turn.Update(now); i++ {
		if i > 1000 {
			t.Fatal("turn never finished")
		}
		now = now.Add(testFrame)
	}
	if !finished {
		t.Fatal("completion callback not called")
	}
	return turn
}

func TestTurnLifecycle(t *testing.T) {
	c := Build()
	r := U.Rotations(c.Offset())[0]

	turn := StartTurn(c, r, nil, WithLogger(quietLogger()))
	if turn.State() != TurnIdle {
		t.Fatalf("new turn state = %v, want idle", turn.State())
	}
	if c.Group().Len() != 18 {
		t.Errorf("group should hold 18 cubies during a turn, got %d", c.Group().Len())
	}
	if c.Scene().Len() != 2 {
		t.Errorf("scene should hold the group and one pivot, got %d nodes", c.Scene().Len())
	}

	turn.Update(testClock)
	turn.Update(testClock.Add(DefaultDuration / 2))
	if turn.State() != TurnAnimating {
		t.Errorf("state = %v, want animating", turn.State())
	}
	angle := turn.Angle()
	if angle <= math.Pi/4 || angle >= math.Pi/2 {
		t.Errorf("ease-out angle at half time = %v, want between 45° and 90°", mgl64.RadToDeg(angle))
	}

	if !turn.Update(testClock.Add(DefaultDuration)) {
		t.Fatal("turn should be done after its duration")
	}
	if turn.Progress() != 1 {
		t.Errorf("progress = %v, want 1", turn.Progress())
	}
	if c.Group().Len() != 27 {
		t.Errorf("group should hold 27 cubies after the turn, got %d", c.Group().Len())
	}
	if c.Scene().Len() != 1 {
		t.Errorf("pivot should be removed, scene has %d nodes", c.Scene().Len())
	}
}

func TestTurnKeepsWorldTransformAcrossAttach(t *testing.T) {
	c := Build()
	before := snapshot(c)

	// Attaching to the pivot must not move anything.
	StartTurn(c, R.Rotations(c.Offset())[0], nil, WithLogger(quietLogger()))
	sameTransforms(t, c, before)
}

func TestTurnMovesLayerQuarterTurn(t *testing.T) {
	c := Build()
	off := c.Offset()
	runTurn(t, c, Rotation{Axis: AxisY, Layer: off, Direction: Clockwise})

	// +90° about Y maps (x, z) to (z, -x).
	for _, cb := range c.Cubies() {
		if cb.Home[1] != 1 {
			continue
		}
		want := mgl64.Vec3{float64(cb.Home[2]) * off, off, float64(-cb.Home[0]) * off}
		if !cb.Position().ApproxEqualThreshold(want, 1e-9) {
			t.Errorf("%v: position %v, want %v", cb, cb.Position(), want)
		}
	}
}

func TestTurnFourTimesIsIdentity(t *testing.T) {
	for _, face := range []Face{FaceU, FaceD, FaceL, FaceR, FaceF, FaceB, FaceM, FaceE, FaceS} {
		for _, turn := range []Amount{Plain, Modified} {
			c := Build()
			before := snapshot(c)
			r := Move{Face: face, Turn: turn}.Rotations(c.Offset())[0]
			for i := 0; i < 4; i++ {
				runTurn(t, c, r)
			}
			if !c.AtHome(DefaultTolerance) {
				t.Errorf("%s x 4 should return every cubie home", Move{Face: face, Turn: turn})
				t.Log(c.Net().String())
			}
			sameTransforms(t, c, before)
		}
	}
}

func TestTurnThenInverseIsIdentity(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		c := Build()
		for _, layer := range c.LayerCoordinates() {
			before := snapshot(c)
			r := Rotation{Axis: axis, Layer: layer, Direction: CounterClockwise}
			runTurn(t, c, r)
			runTurn(t, c, r.Inverse())
			sameTransforms(t, c, before)
		}
	}
}

func TestTurnSnapsOntoGrid(t *testing.T) {
	c := Build()
	// Hundreds of turns through fresh pivots; every idle cubie must still
	// sit exactly on the grid.
	moves := []Move{R, U, F, L, D, B, M, E, S, RPrime, UPrime, FPrime}
	for i := 0; i < 25; i++ {
		for _, m := range moves {
			runTurn(t, c, m.Rotations(c.Offset())[0])
		}
	}

	off := c.Offset()
	for _, cb := range c.Cubies() {
		p := cb.Node().Position
		for i := 0; i < 3; i++ {
			steps := p[i] / off
			if math.Abs(steps-math.Round(steps)) > 1e-12 {
				t.Errorf("%v: coordinate %d = %v is off grid", cb, i, p[i])
			}
		}
		m := cb.Node().Rotation.Mat4().Mat3()
		for i, v := range m {
			if math.Abs(v-math.Round(v)) > 1e-9 {
				t.Errorf("%v: rotation element %d = %v is not axis aligned", cb, i, v)
			}
		}
	}
}

func TestEmptyLayerCompletesImmediately(t *testing.T) {
	c := Build()
	logger, hook := test.NewNullLogger()

	called := 0
	turn := StartTurn(c, Rotation{Axis: AxisX, Layer: 7, Direction: Clockwise},
		func(*Turn) { called++ }, WithLogger(logger))

	if !turn.Done() {
		t.Error("turn over an empty layer should be done at once")
	}
	if called != 1 {
		t.Errorf("completion called %d times, want 1", called)
	}
	if c.Scene().Len() != 1 {
		t.Error("no pivot should be created for an empty layer")
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %v", entry)
	}
	if entry.Data["axis"] != "x" {
		t.Errorf("warning should carry the axis, got %v", entry.Data)
	}
}

func TestTurnFinishJumpsToEnd(t *testing.T) {
	c := Build()
	before := snapshot(c)
	r := F.Rotations(c.Offset())[0]

	turn := StartTurn(c, r, nil, WithLogger(quietLogger()))
	turn.Update(testClock)
	turn.Finish()
	turn.Finish()
	if !turn.Done() {
		t.Fatal("Finish should complete the turn")
	}

	runTurn(t, c, r.Inverse())
	sameTransforms(t, c, before)
}

func TestTurnWithRotatedGroup(t *testing.T) {
	c := Build()
	c.Group().Position = mgl64.Vec3{3, -1, 2}
	c.Group().Rotation = mgl64.QuatRotate(0.7, mgl64.Vec3{1, 2, 3}.Normalize())
	before := snapshot(c)

	r := U.Rotations(c.Offset())[0]
	runTurn(t, c, r)
	if got := len(c.Layer(AxisY, c.Offset())); got != 9 {
		t.Errorf("top layer has %d cubies after turn, want 9", got)
	}
	for i := 0; i < 3; i++ {
		runTurn(t, c, r)
	}
	sameTransforms(t, c, before)
}

func TestOnTurnCompleteObserver(t *testing.T) {
	c := Build()
	var got []int
	opt := WithOnTurnComplete(func(r Rotation, moved int) { got = append(got, moved) })

	turn := StartTurn(c, R.Rotations(c.Offset())[0], nil, opt, WithLogger(quietLogger()))
	turn.Finish()
	StartTurn(c, Rotation{Axis: AxisZ, Layer: -9}, nil, opt, WithLogger(quietLogger()))

	if len(got) != 2 || got[0] != 9 || got[1] != 0 {
		t.Errorf("observer saw %v, want [9 0]", got)
	}
}

func TestTurnEasingCurves(t *testing.T) {
	tests := []struct {
		easing string
		min    float64 // lower bound of the angle at half time
		max    float64
	}{
		{"linear", math.Pi/4 - 1e-4, math.Pi/4 + 1e-4},
		{"quad-out", math.Pi/4 + 1e-4, math.Pi / 2},
		{"quad-in-out", math.Pi/4 - 1e-4, math.Pi/4 + 1e-4},
		{"cubic-out", math.Pi/4 + 1e-4, math.Pi / 2},
	}

	for _, tt := range tests {
		c := Build()
		off := c.Offset()
		r := Rotation{Axis: AxisX, Layer: off, Direction: Clockwise}
		turn := StartTurn(c, r, nil, WithEasing(tt.easing), WithLogger(quietLogger()))

		now := testClock
		turn.Update(now)
		for now.Sub(testClock) < DefaultDuration/2 {
			now = now.Add(DefaultDuration / 10)
			turn.Update(now)
		}
		if a := turn.Angle(); a < tt.min || a > tt.max {
			t.Errorf("%s: angle at half time %v, want in [%v, %v]", tt.easing, a, tt.min, tt.max)
		}

		for !turn.Update(now) {
			now = now.Add(testFrame)
		}
		if turn.Angle() != r.Angle() {
			t.Errorf("%s: final angle %v, want exactly %v", tt.easing, turn.Angle(), r.Angle())
		}
		for _, cb := range c.Cubies() {
			for i := 0; i < 3; i++ {
				k := cb.Position()[i] / off
				if math.Abs(k-math.Round(k)) > 1e-12 {
					t.Errorf("%s: %v off the grid", tt.easing, cb)
				}
			}
		}
	}
}
