package cube3d

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cube3d/internal/scene"
	"github.com/SeamusWaldron/cube3d/internal/tween"
)

// TurnState is the lifecycle state of a Turn.
type TurnState int

const (
	TurnIdle      TurnState = iota // created, no frame seen yet
	TurnAnimating                  // pivot is rotating
	TurnDone                       // cubies are back in the group
)

func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "idle"
	case TurnAnimating:
		return "animating"
	case TurnDone:
		return "done"
	default:
		return "unknown"
	}
}

// Turn animates one layer of a cube through a quarter turn. It is the
// handle returned by StartTurn; callers advance it with Update once per
// frame until Done reports true.
type Turn struct {
	rotation Rotation
	cube     *Cube
	cfg      *config
	log      logrus.FieldLogger

	pivot  *scene.Node
	base   mgl64.Quat // pivot orientation at angle zero
	cubies []*Cubie
	tween  *tween.Tween
	state  TurnState

	onDone func(*Turn)
}

// StartTurn selects the layer described by r and attaches its cubies to
// a fresh pivot at the cube's center. The pivot does not move until the
// first Update. If the layer is empty the turn is already done when
// StartTurn returns and onDone has been called.
func StartTurn(cube *Cube, r Rotation, onDone func(*Turn), opts ...Option) *Turn {
	return startTurn(cube, r, newConfig(opts), onDone)
}

func startTurn(cube *Cube, r Rotation, cfg *config, onDone func(*Turn)) *Turn {
	t := &Turn{
		rotation: r,
		cube:     cube,
		cfg:      cfg,
		log: cfg.logger.WithFields(logrus.Fields{
			"axis":      r.Axis.String(),
			"layer":     r.Layer,
			"direction": int(r.Direction),
		}),
		onDone: onDone,
	}

	t.cubies = cube.layer(r.Axis, r.Layer, cfg.tolerance)
	if len(t.cubies) == 0 {
		t.log.Warn("no cubies found in layer")
		t.complete()
		return t
	}

	// The pivot shares the group's frame so that the turn axis is an
	// axis of the cube, whatever the group's own transform.
	t.pivot = scene.NewNode("pivot")
	cube.root.Add(t.pivot)
	t.pivot.SetWorld(cube.group.World())
	t.base = t.pivot.Rotation

	for _, cb := range t.cubies {
		scene.Attach(cb.node, t.pivot)
	}

	t.tween = tween.New(0, r.Angle(), cfg.duration, cfg.easing)
	t.log.WithField("cubies", len(t.cubies)).Debug("turn started")
	return t
}

// Update advances the animation to now. It returns true once the turn
// has completed; later calls are no-ops.
func (t *Turn) Update(now time.Time) bool {
	if t.state == TurnDone {
		return true
	}

	angle, done := t.tween.Update(now)
	t.state = TurnAnimating
	t.setAngle(angle)

	if done {
		t.finish()
		return true
	}
	return false
}

// Finish completes the turn immediately.
func (t *Turn) Finish() {
	if t.state == TurnDone {
		return
	}
	t.tween.Finish()
	t.finish()
}

func (t *Turn) setAngle(angle float64) {
	t.pivot.Rotation = t.base.Mul(mgl64.QuatRotate(angle, t.rotation.Axis.Vec())).Normalize()
}

// finish moves every cubie back to the group keeping the world transform
// reached at the final angle, snaps it to the grid and drops the pivot.
func (t *Turn) finish() {
	t.setAngle(t.rotation.Angle())
	for _, cb := range t.cubies {
		scene.Attach(cb.node, t.cube.group)
		t.cube.snap(cb)
	}
	t.cube.root.Remove(t.pivot)
	t.pivot = nil

	t.log.WithField("cubies", len(t.cubies)).Debug("turn finished")
	t.complete()
}

func (t *Turn) complete() {
	t.state = TurnDone
	for _, cb := range t.cfg.onComplete {
		cb(t.rotation, len(t.cubies))
	}
	if t.onDone != nil {
		t.onDone(t)
	}
}

// Rotation returns the request this turn executes.
func (t *Turn) Rotation() Rotation { return t.rotation }

// Cubies returns the cubies being turned.
func (t *Turn) Cubies() []*Cubie { return t.cubies }

// State returns the current lifecycle state.
func (t *Turn) State() TurnState { return t.state }

// Done reports whether the turn has completed.
func (t *Turn) Done() bool { return t.state == TurnDone }

// Angle returns the pivot's current angle in radians.
func (t *Turn) Angle() float64 {
	if t.tween == nil {
		return 0
	}
	return t.tween.Value()
}

// Progress returns linear progress through the animation in [0,1].
func (t *Turn) Progress() float64 {
	if t.state == TurnDone {
		return 1
	}
	if t.tween == nil {
		return 0
	}
	return t.tween.Progress()
}
