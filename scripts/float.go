package scripts

import (
	"ProcMotion/internal/oscillator"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatConfig is a small vertical bob with amplitude noise and a slow spin
// about the object's own Y axis, for pickups and buoys.
func FloatConfig() oscillator.Config {
	return oscillator.Config{
		Axis:           mgl32.Vec3{0, 1, 0},
		Amplitude:      0.1,
		Frequency:      0.8,
		NoiseAmount:    0.25,
		NoiseSpeed:     0.25,
		AngularRate:    mgl32.Vec3{0, 30, 0},
		Space:          oscillator.SpaceLocal,
		RotationSpace:  oscillator.SpaceLocal,
		RandomizePhase: true,
	}
}
