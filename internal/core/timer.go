package core

import "time"

const (
	// SpeedMin and SpeedMax bound the tick speed control.
	SpeedMin = 10
	SpeedMax = 1000

	speedMultiplier = 4.0
	minDelay        = 5 * time.Millisecond
	maxDelay        = time.Duration(float64(time.Second) / speedMultiplier)
)

// DelayForSpeed maps a speed control value onto the pause between ticks.
// Higher settings tick faster; the result stays within [5ms, 250ms].
func DelayForSpeed(setting int) time.Duration {
	base := float64(SpeedMax+SpeedMin-setting) / speedMultiplier
	d := time.Duration(base * float64(time.Millisecond))
	if d < minDelay {
		return minDelay
	}
	if d > maxDelay {
		return maxDelay
	}
	return d
}

// FixedStep helps run simulation updates with a steady delay between ticks.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given delay.
func NewFixedStep(delay time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetDelay(delay)
	fs.accumulator = fs.step
	return fs
}

// SetDelay changes the tick interval. It is safe to call from the main loop.
func (f *FixedStep) SetDelay(delay time.Duration) {
	if delay <= 0 {
		delay = minDelay
	}
	f.step = delay
}

// Delay returns the current tick interval.
func (f *FixedStep) Delay() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick at now.
// At most one tick is granted per call so a stalled caller never bursts.
func (f *FixedStep) ShouldStep(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
