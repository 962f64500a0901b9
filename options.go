package cube3d

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cube3d/internal/tween"
)

// Defaults for turn animation and queueing.
const (
	DefaultDuration   = 300 * time.Millisecond
	DefaultMaxPending = 5
	DefaultTolerance  = 0.01
)

// Option configures turns and queues.
type Option func(*config)

type config struct {
	duration   time.Duration
	maxPending int
	tolerance  float64
	easing     tween.Easing
	logger     logrus.FieldLogger
	onComplete []func(Rotation, int)
}

func defaultConfig() *config {
	return &config{
		duration:   DefaultDuration,
		maxPending: DefaultMaxPending,
		tolerance:  DefaultTolerance,
		easing:     tween.DefaultEasing,
		logger:     logrus.StandardLogger(),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithDuration sets how long a quarter turn animates.
// Zero completes turns on the first frame.
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.duration = d
		}
	}
}

// WithMaxPending caps how many requests may wait while a turn is in
// flight. Requests beyond the cap are dropped.
func WithMaxPending(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxPending = n
		}
	}
}

// WithTolerance sets the distance under which two layer coordinates are
// considered equal. It must stay well below the layer spacing.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithEasing sets the interpolation curve by name: linear, quad-out,
// quad-in-out or cubic-out. Unknown names are ignored.
func WithEasing(name string) Option {
	return func(c *config) {
		if e := tween.ByName(name); e != nil {
			c.easing = e
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnTurnComplete registers a callback fired after every finished
// turn with the rotation and the number of cubies it moved. Requests
// that matched no cubies report zero.
func WithOnTurnComplete(cb func(r Rotation, moved int)) Option {
	return func(c *config) {
		c.onComplete = append(c.onComplete, cb)
	}
}
