// Package clock turns real frame deltas into the scaled and unscaled time
// streams that per-frame behaviours read.
package clock

// Frame is a snapshot of both time streams for one tick
type Frame struct {
	Time              float64
	DeltaTime         float64
	UnscaledTime      float64
	UnscaledDeltaTime float64
	Count             uint64
}

// Select returns the unscaled or scaled (time, delta) pair. Callers must use
// one pair for everything they compute in a frame.
func (f Frame) Select(unscaled bool) (float64, float64) {
	if unscaled {
		return f.UnscaledTime, f.UnscaledDeltaTime
	}
	return f.Time, f.DeltaTime
}

// Clock accumulates time. TimeScale and Paused only affect the scaled stream.
type Clock struct {
	TimeScale float64
	Paused    bool

	frame Frame
}

func New() *Clock {
	return &Clock{TimeScale: 1.0}
}

// Tick advances both streams by realDelta seconds. Negative deltas are
// treated as zero so time never runs backwards.
func (c *Clock) Tick(realDelta float64) Frame {
	if realDelta < 0 {
		realDelta = 0
	}
	scaled := realDelta * c.TimeScale
	if c.Paused || scaled < 0 {
		scaled = 0
	}

	c.frame.UnscaledDeltaTime = realDelta
	c.frame.UnscaledTime += realDelta
	c.frame.DeltaTime = scaled
	c.frame.Time += scaled
	c.frame.Count++
	return c.frame
}

// Now returns the last frame produced by Tick
func (c *Clock) Now() Frame {
	return c.frame
}

// Reset rewinds both streams to zero
func (c *Clock) Reset() {
	c.frame = Frame{}
}

// FixedStep accumulates scaled time and reports how many fixed-length
// steps are due. The remainder carries into the next call.
type FixedStep struct {
	Step     float64
	MaxSteps int

	acc float64
}

func NewFixedStep(step float64, maxSteps int) *FixedStep {
	return &FixedStep{Step: step, MaxSteps: maxSteps}
}

// Advance adds delta and returns the number of whole steps to run. When more
// than MaxSteps are due the backlog is dropped to avoid a spiral of death.
func (s *FixedStep) Advance(delta float64) int {
	if s.Step <= 0 {
		return 0
	}
	s.acc += delta
	n := 0
	for s.acc >= s.Step {
		s.acc -= s.Step
		n++
		if s.MaxSteps > 0 && n >= s.MaxSteps {
			s.acc = 0
			break
		}
	}
	return n
}
