package transition

import "math"

// Ease maps normalized time in [0,1] to normalized progress
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func SmoothStep(t float64) float64 { return t * t * (3 - 2*t) }

func InOutSine(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

func OutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

// EaseByName resolves the names used in scene files. Unknown names are linear.
func EaseByName(name string) Ease {
	switch name {
	case "smoothstep":
		return SmoothStep
	case "in_out_sine":
		return InOutSine
	case "out_quad":
		return OutQuad
	default:
		return Linear
	}
}
