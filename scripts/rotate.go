package scripts

import (
	"ProcMotion/internal/oscillator"

	"github.com/go-gl/mathgl/mgl32"
)

// RotateConfig spins about the object's own Y axis at 30 degrees per second.
// It never moves the object.
func RotateConfig() oscillator.Config {
	return oscillator.Config{
		AngularRate:    mgl32.Vec3{0, 30, 0},
		RotationSpace:  oscillator.SpaceLocal,
		RandomizePhase: true,
	}
}
