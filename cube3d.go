// Package cube3d models a 3x3x3 Rubik's Cube as 27 cubies in a scene
// graph and animates layer turns driven by an external frame clock.
//
// # Features
//
//   - Deterministic cube construction with per-face colors
//   - Layer selection by current coordinate, robust across many turns
//   - Pivot-based turn animation with ease-out interpolation
//   - Drift-free re-flattening: positions and orientations are snapped
//     back onto the grid after every turn
//   - A serial turn queue with cancellation and backpressure
//   - Optional GoCube smart cube input over Bluetooth Low Energy
//
// # Quick Start
//
//	cube := cube3d.Build()
//	q := cube3d.NewQueue(cube)
//
//	q.Enqueue(cube3d.U.Rotations(cube.Offset())...)
//
//	// Once per frame:
//	q.Update(time.Now())
//
// # Keys
//
// Each face letter maps to one quarter turn. Holding the modifier
// reverses the direction:
//
//	U, D, L, R, F, B   outer layers
//	M, E, S            middle slices
//
// Turns produced by a plain key are counter-clockwise when looking at
// the face from outside the cube; see FaceTurn for the mapping used by
// physical cubes.
//
// # Frame Clock
//
// Nothing in this package starts goroutines or timers. A Queue advances
// only when Update is called, which makes the engine easy to drive from a
// render loop, a terminal UI tick or a simulated clock in tests.
package cube3d
