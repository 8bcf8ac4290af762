package behaviour

import (
	"ProcMotion/internal/clock"
)

// DefaultFixedStep is the FixedUpdate interval in scaled seconds
const DefaultFixedStep = 1.0 / 50.0

// BehaviourManager is the frame loop: it advances the clock, runs whatever
// fixed steps are due and then the variable-rate update.
type BehaviourManager struct {
	Clock      *clock.Clock
	Fixed      *clock.FixedStep
	Components *ComponentManager
}

func NewBehaviourManager(components *ComponentManager) *BehaviourManager {
	return &BehaviourManager{
		Clock:      clock.New(),
		Fixed:      clock.NewFixedStep(DefaultFixedStep, 5),
		Components: components,
	}
}

// Step advances one frame by realDelta seconds and returns the frame that
// was dispatched to Update.
func (m *BehaviourManager) Step(realDelta float64) clock.Frame {
	frame := m.Clock.Tick(realDelta)

	if n := m.Fixed.Advance(frame.DeltaTime); n > 0 {
		fixed := frame
		fixed.DeltaTime = m.Fixed.Step
		for i := 0; i < n; i++ {
			m.Components.FixedUpdateAll(fixed)
		}
	}

	m.Components.UpdateAll(frame)
	return frame
}

// Run steps n frames of a constant delta, for headless playback
func (m *BehaviourManager) Run(frames int, delta float64, after func(frame clock.Frame)) {
	for i := 0; i < frames; i++ {
		frame := m.Step(delta)
		if after != nil {
			after(frame)
		}
	}
}
