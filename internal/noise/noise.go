// Package noise provides smooth, deterministic 2D noise fields normalized to
// [0,1]. Callers that need a signed sample use Signed.
package noise

import (
	"errors"
	"fmt"
)

// Source is a continuous, deterministic 2D noise field. Sample must return a
// value in [0,1] and must return the same value for the same coordinates.
type Source interface {
	Sample(x, y float64) float64
}

// Kinds accepted by New
const (
	KindImproved = "improved"
	KindPerlin   = "perlin"
	KindFractal  = "fractal"
)

var ErrUnknownKind = errors.New("unknown noise kind")

// New builds a noise source by name. An empty kind selects the improved
// Perlin implementation.
func New(kind string, seed int64) (Source, error) {
	switch kind {
	case "", KindImproved:
		return NewImprovedPerlin(seed), nil
	case KindPerlin:
		return NewLibrary(DefaultAlpha, DefaultBeta, DefaultOctaves, seed), nil
	case KindFractal:
		return NewFractal(NewImprovedPerlin(seed), DefaultOctaves, DefaultPersistence), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Signed maps a [0,1] sample to [-1,1]
func Signed(s Source, x, y float64) float64 {
	return s.Sample(x, y)*2 - 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
