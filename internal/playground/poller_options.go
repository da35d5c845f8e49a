package playground

import (
	"fmt"
	"time"
)

// Option defines a functional option for configuring a Poller.
type Option func(*Options) error

// Options contains the tuning knobs for the adaptive polling policy.
// All intervals are clamped to [ThinkingFloor, ErrorCeiling] by construction.
type Options struct {
	// thinkingInterval is the interval used immediately after a message is sent.
	thinkingInterval time.Duration

	// baselineInterval is the interval used when a session starts idle.
	baselineInterval time.Duration

	// thinkingFloor is the fastest polling rate while a query is in flight.
	thinkingFloor time.Duration

	// thinkingCeiling is how slow polling may get while a query is in flight
	// but no new output is arriving.
	thinkingCeiling time.Duration

	// idleFloor is the fastest polling rate while no query is in flight.
	idleFloor time.Duration

	// idleCeiling is how slow polling may get while idle with no activity.
	idleCeiling time.Duration

	// errorCeiling is the backoff limit after fetch errors.
	errorCeiling time.Duration

	// step is the amount the interval tightens or loosens per tick.
	step time.Duration

	// activityThreshold is the number of new log lines per tick that counts
	// as high activity while a query is in flight.
	activityThreshold int
}

// NewOptions returns poller options with defaults applied, then user options on top.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		thinkingInterval:  250 * time.Millisecond,
		baselineInterval:  time.Second,
		thinkingFloor:     250 * time.Millisecond,
		thinkingCeiling:   2 * time.Second,
		idleFloor:         500 * time.Millisecond,
		idleCeiling:       5 * time.Second,
		errorCeiling:      10 * time.Second,
		step:              250 * time.Millisecond,
		activityThreshold: 5,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	if o.thinkingFloor > o.thinkingCeiling {
		return Options{}, fmt.Errorf("thinking floor (%v) exceeds thinking ceiling (%v)", o.thinkingFloor, o.thinkingCeiling)
	}
	if o.idleFloor > o.idleCeiling {
		return Options{}, fmt.Errorf("idle floor (%v) exceeds idle ceiling (%v)", o.idleFloor, o.idleCeiling)
	}

	return o, nil
}

// WithThinkingInterval sets the interval used right after a message is sent.
func WithThinkingInterval(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("thinking interval must be positive, got %v", d)
		}
		o.thinkingInterval = d
		o.thinkingFloor = d
		return nil
	}
}

// WithBaselineInterval sets the interval used when a session starts idle.
func WithBaselineInterval(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("baseline interval must be positive, got %v", d)
		}
		o.baselineInterval = d
		return nil
	}
}

// WithStep sets the per-tick interval adjustment.
func WithStep(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("step must be positive, got %v", d)
		}
		o.step = d
		return nil
	}
}

// WithActivityThreshold sets how many new log lines per tick count as high activity.
func WithActivityThreshold(n int) Option {
	return func(o *Options) error {
		if n < 0 {
			return fmt.Errorf("activity threshold cannot be negative, got %d", n)
		}
		o.activityThreshold = n
		return nil
	}
}

// WithBounds overrides the idle floor/ceiling and the error backoff ceiling.
func WithBounds(idleFloor, idleCeiling, errorCeiling time.Duration) Option {
	return func(o *Options) error {
		if idleFloor <= 0 || idleCeiling <= 0 || errorCeiling <= 0 {
			return fmt.Errorf("bounds must be positive")
		}
		o.idleFloor = idleFloor
		o.idleCeiling = idleCeiling
		o.errorCeiling = errorCeiling
		return nil
	}
}
