package oscillator

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Space selects the frame offsets or rotation deltas compose in
type Space int

const (
	SpaceLocal Space = iota
	SpaceWorld
)

func (s Space) String() string {
	switch s {
	case SpaceLocal:
		return "local"
	case SpaceWorld:
		return "world"
	default:
		return fmt.Sprintf("Space(%d)", int(s))
	}
}

// ParseSpace accepts "local" and "world". Empty means local.
func ParseSpace(s string) (Space, error) {
	switch s {
	case "", "local":
		return SpaceLocal, nil
	case "world":
		return SpaceWorld, nil
	default:
		return SpaceLocal, fmt.Errorf("unknown space %q", s)
	}
}

// Config is fixed for the lifetime of an Oscillator
type Config struct {
	Axis        mgl32.Vec3 // displacement direction, normalized at construction
	Amplitude   float64    // peak offset
	Frequency   float64    // cycles per second
	NoiseAmount float64    // fractional amplitude modulation, [0,1]
	NoiseSpeed  float64    // noise field sampling rate

	AngularRate    mgl32.Vec3 // degrees per second per axis
	RotationJitter float64    // fractional rate modulation per axis, [0,1]

	Space           Space // position offsets
	RotationSpace   Space // rotation deltas, local is the object's own axes
	UseUnscaledTime bool
	RandomizePhase  bool
}

// DefaultConfig is a gentle vertical bob with randomized phase
func DefaultConfig() Config {
	return Config{
		Axis:           mgl32.Vec3{0, 1, 0},
		Amplitude:      0.5,
		Frequency:      1.0,
		NoiseAmount:    0,
		NoiseSpeed:     0.5,
		Space:          SpaceLocal,
		RotationSpace:  SpaceLocal,
		RandomizePhase: true,
	}
}

// Linear reports whether the config displaces position at all. Rotation-only
// configs leave the position to whatever else drives it.
func (c Config) Linear() bool {
	if c.Amplitude == 0 || math.IsNaN(c.Amplitude) {
		return false
	}
	return normalize(c.Axis) != [3]float64{}
}

var (
	ErrNegative   = errors.New("must not be negative")
	ErrOutOfRange = errors.New("must be within [0,1]")
	ErrNaN        = errors.New("must be a number")
)

// Validate reports every out-of-range field. The oscillator tolerates an
// invalid config, so hosts decide whether to reject it or Sanitize it.
func (c Config) Validate() error {
	var errs []error

	nonNegative := func(name string, v float64) {
		switch {
		case math.IsNaN(v):
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrNaN))
		case v < 0:
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrNegative))
		}
	}
	unit := func(name string, v float64) {
		switch {
		case math.IsNaN(v):
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrNaN))
		case v < 0 || v > 1:
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrOutOfRange))
		}
	}

	nonNegative("amplitude", c.Amplitude)
	nonNegative("frequency", c.Frequency)
	nonNegative("noise_speed", c.NoiseSpeed)
	unit("noise_amount", c.NoiseAmount)
	unit("rotation_jitter", c.RotationJitter)

	return errors.Join(errs...)
}

// Sanitize clamps every field into its valid range. NaN becomes zero.
func (c Config) Sanitize() Config {
	c.Amplitude = clampMin(c.Amplitude)
	c.Frequency = clampMin(c.Frequency)
	c.NoiseSpeed = clampMin(c.NoiseSpeed)
	c.NoiseAmount = clampUnit(c.NoiseAmount)
	c.RotationJitter = clampUnit(c.RotationJitter)
	return c
}

func clampMin(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
