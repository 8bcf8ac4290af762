package scripts

import (
	"ProcMotion/internal/oscillator"

	"github.com/go-gl/mathgl/mgl32"
)

// MoveConfig is a plain sine along local up, without noise or rotation
func MoveConfig() oscillator.Config {
	return oscillator.Config{
		Axis:           mgl32.Vec3{0, 1, 0},
		Amplitude:      0.1,
		Frequency:      1.0,
		Space:          oscillator.SpaceLocal,
		RandomizePhase: true,
	}
}
