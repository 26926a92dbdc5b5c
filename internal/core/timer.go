package core

import "time"

// FixedStep paces automatic generation steps independently of the frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given steps per second.
func NewFixedStep(sps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(sps)
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 10/s.
func (f *FixedStep) SetRate(sps int) {
	if sps <= 0 {
		sps = 10
	}
	f.step = time.Second / time.Duration(sps)
}

// Restart discards accumulated time so the next step waits a full interval.
func (f *FixedStep) Restart() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether another generation is due.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
