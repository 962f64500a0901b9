package cube3d

import (
	"time"

	"github.com/sirupsen/logrus"
)

// EnqueueResult reports what Enqueue did with a request.
type EnqueueResult int

const (
	Queued    EnqueueResult = iota // appended to the pending list
	Coalesced                      // cancelled the last pending request
	Dropped                        // rejected by the pending cap
)

func (r EnqueueResult) String() string {
	switch r {
	case Queued:
		return "queued"
	case Coalesced:
		return "coalesced"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Queue serializes turns on a cube. It owns both the pending requests and
// the single turn in flight; nothing else should re-parent cubies while a
// queue is driving the cube.
//
// A Queue is not safe for concurrent use. Enqueue and Update are meant to
// be called from the same loop that renders frames.
type Queue struct {
	cube    *Cube
	cfg     *config
	log     logrus.FieldLogger
	pending []Rotation
	current *Turn

	completed int
	dropped   int
}

// NewQueue creates a queue driving cube.
func NewQueue(cube *Cube, opts ...Option) *Queue {
	cfg := newConfig(opts)
	return &Queue{
		cube: cube,
		cfg:  cfg,
		log:  cfg.logger,
	}
}

// Enqueue offers requests to the queue and returns one result per
// request. While a turn is in flight and the pending list is full,
// requests are dropped, inverses included. Otherwise a request that
// exactly undoes the most recent pending request removes it instead of
// being added.
//
// Enqueue never starts a turn; the next Update does.
func (q *Queue) Enqueue(rs ...Rotation) []EnqueueResult {
	results := make([]EnqueueResult, len(rs))
	for i, r := range rs {
		results[i] = q.enqueue(r)
	}
	return results
}

func (q *Queue) enqueue(r Rotation) EnqueueResult {
	if q.Full() {
		q.dropped++
		q.log.WithField("rotation", r.String()).Debug("queue full, rotation dropped")
		return Dropped
	}

	if n := len(q.pending); n > 0 && q.pending[n-1].Cancels(r, q.cfg.tolerance) {
		q.pending = q.pending[:n-1]
		q.log.WithField("rotation", r.String()).Debug("rotation cancelled pending request")
		return Coalesced
	}

	q.pending = append(q.pending, r)
	return Queued
}

// EnqueueMoves expands moves into rotations for this queue's cube and
// enqueues them. It returns how many rotations were admitted.
func (q *Queue) EnqueueMoves(moves ...Move) int {
	admitted := 0
	for _, m := range moves {
		for _, res := range q.Enqueue(m.Rotations(q.cube.Offset())...) {
			if res != Dropped {
				admitted++
			}
		}
	}
	return admitted
}

// Update advances the turn in flight and, whenever no turn is in flight,
// starts the next pending request. Requests that match no cubies
// complete at once, so several may be consumed in one call.
func (q *Queue) Update(now time.Time) {
	if q.current != nil {
		q.current.Update(now)
	}

	for q.current == nil && len(q.pending) > 0 {
		next := q.pending[0]
		q.pending = q.pending[1:]

		t := startTurn(q.cube, next, q.cfg, q.finished)
		if t.Done() {
			continue
		}
		q.current = t
		q.current.Update(now)
	}
}

// finished is the completion continuation of every turn started by q.
func (q *Queue) finished(t *Turn) {
	q.completed++
	if q.current == t {
		q.current = nil
	}
}

// Run drives the queue with a simulated clock until it is idle and
// returns the final timestamp. It is meant for headless use and tests.
func (q *Queue) Run(start time.Time, frame time.Duration) time.Time {
	if frame <= 0 {
		frame = time.Second / 60
	}
	now := start
	q.Update(now)
	for q.Busy() {
		now = now.Add(frame)
		q.Update(now)
	}
	return now
}

// Reset drops pending requests, abandons the turn in flight and returns
// the cube to its built state.
func (q *Queue) Reset() {
	q.pending = nil
	q.current = nil
	q.cube.Reset()
}

// Busy reports whether a turn is in flight or requests are pending.
func (q *Queue) Busy() bool {
	return q.current != nil || len(q.pending) > 0
}

// Animating reports whether a turn is in flight.
func (q *Queue) Animating() bool {
	return q.current != nil
}

// Full reports whether the next request would be dropped, unless it
// cancels the last pending one.
func (q *Queue) Full() bool {
	return q.current != nil && len(q.pending) >= q.cfg.maxPending
}

// Current returns the turn in flight, or nil.
func (q *Queue) Current() *Turn {
	return q.current
}

// Pending returns a copy of the requests waiting to start.
func (q *Queue) Pending() []Rotation {
	out := make([]Rotation, len(q.pending))
	copy(out, q.pending)
	return out
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Completed returns the number of turns finished so far, including
// requests that matched no cubies.
func (q *Queue) Completed() int {
	return q.completed
}

// Dropped returns the number of requests rejected by the pending cap.
func (q *Queue) Dropped() int {
	return q.dropped
}

// Cube returns the cube this queue drives.
func (q *Queue) Cube() *Cube {
	return q.cube
}
