package noise

import perlin "github.com/aquilax/go-perlin"

// Defaults used by New for the go-perlin backed source
const (
	DefaultAlpha   = 2.0
	DefaultBeta    = 2.0
	DefaultOctaves = 3
)

// Library adapts github.com/aquilax/go-perlin to Source. Its raw output is
// signed and only loosely bounded, so samples are clamped after remapping.
type Library struct {
	p *perlin.Perlin
}

// NewLibrary wraps a go-perlin generator. alpha is the weight divisor per
// octave, beta the frequency multiplier, octaves the number of iterations.
func NewLibrary(alpha, beta float64, octaves int32, seed int64) *Library {
	return &Library{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Sample implements Source
func (l *Library) Sample(x, y float64) float64 {
	return clamp01((l.p.Noise2D(x, y) + 1) * 0.5)
}
