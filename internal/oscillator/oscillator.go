// Package oscillator computes procedural bob, sway and spin for a rigid
// transform. An Oscillator is a pure function of its Config, the seeds drawn
// at Activate and the clock time passed to Update; it never touches the
// transform itself.
//
// Call order per instance is Activate, any number of Update calls, then
// Deactivate. Separate instances share nothing and may be updated from
// different goroutines.
package oscillator

import (
	"math"

	"ProcMotion/internal/noise"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxNoiseSeed bounds the per-instance offset into the noise field
const MaxNoiseSeed = 999.0

// State is captured by Activate and owned by a single Oscillator
type State struct {
	BasePosition mgl32.Vec3
	PhaseOffset  float64
	NoiseSeed    float64
}

// Sample is the output of one Update call
type Sample struct {
	// Position is the absolute target, BasePosition + Offset
	Position mgl32.Vec3
	Offset   mgl32.Vec3
	// RotationDelta is in degrees, to be composed onto the current
	// orientation. Summing deltas frame by frame is Euler integration, so
	// with jitter the accumulated rotation only approximates the rate curve.
	RotationDelta      mgl32.Vec3
	EffectiveAmplitude float64
}

type Oscillator struct {
	cfg   Config
	dir   [3]float64
	noise noise.Source
	rand  RandomSource

	state  State
	active bool
}

// New builds an inactive oscillator. A nil noise source falls back to
// improved Perlin noise seeded with 0, a nil random source to a shared
// mutex-guarded generator.
func New(cfg Config, src noise.Source, rnd RandomSource) *Oscillator {
	if src == nil {
		src = noise.NewImprovedPerlin(0)
	}
	if rnd == nil {
		rnd = defaultRand
	}
	return &Oscillator{
		cfg:   cfg,
		dir:   normalize(cfg.Axis),
		noise: src,
		rand:  rnd,
	}
}

// normalize returns the unit direction, or zero for a degenerate axis
func normalize(v mgl32.Vec3) [3]float64 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return [3]float64{}
	}
	return [3]float64{x / l, y / l, z / l}
}

func (o *Oscillator) Config() Config { return o.cfg }
func (o *Oscillator) Active() bool   { return o.active }
func (o *Oscillator) State() State   { return o.state }

// Activate stores initialPose as the reference every later offset is added
// to and draws the per-instance phase and noise seed.
func (o *Oscillator) Activate(initialPose mgl32.Vec3) State {
	o.state = State{BasePosition: initialPose}
	if o.cfg.RandomizePhase {
		o.state.PhaseOffset = o.rand.Float64() * 2 * math.Pi
		o.state.NoiseSeed = o.rand.Float64() * MaxNoiseSeed
	}
	o.active = true
	return o.state
}

// Update evaluates the oscillator at clockTime. deltaTime only scales the
// rotation delta. Both values must come from the same time stream.
func (o *Oscillator) Update(clockTime, deltaTime float64) Sample {
	if !o.active {
		panic("oscillator: Update called before Activate")
	}

	n := noise.Signed(o.noise, o.state.NoiseSeed, clockTime*o.cfg.NoiseSpeed)
	effAmp := o.cfg.Amplitude * (1 + n*o.cfg.NoiseAmount)
	sine := math.Sin(2 * math.Pi * o.cfg.Frequency * (clockTime + o.state.PhaseOffset))
	scale := sine * effAmp

	offset := mgl32.Vec3{
		float32(o.dir[0] * scale),
		float32(o.dir[1] * scale),
		float32(o.dir[2] * scale),
	}

	return Sample{
		Position:           o.state.BasePosition.Add(offset),
		Offset:             offset,
		RotationDelta:      o.rotationDelta(clockTime, deltaTime),
		EffectiveAmplitude: effAmp,
	}
}

func (o *Oscillator) rotationDelta(clockTime, deltaTime float64) mgl32.Vec3 {
	rate := [3]float64{
		float64(o.cfg.AngularRate[0]),
		float64(o.cfg.AngularRate[1]),
		float64(o.cfg.AngularRate[2]),
	}

	if j := o.cfg.RotationJitter; j > 0 {
		t := clockTime + o.state.NoiseSeed
		// Distinct coordinates per axis keep the three samples decorrelated
		rate[0] *= 1 + noise.Signed(o.noise, t, 0)*j
		rate[1] *= 1 + noise.Signed(o.noise, 0, t)*j
		rate[2] *= 1 + noise.Signed(o.noise, t, t)*j
	}

	return mgl32.Vec3{
		float32(rate[0] * deltaTime),
		float32(rate[1] * deltaTime),
		float32(rate[2] * deltaTime),
	}
}

// Deactivate returns the pose captured at Activate so the caller can snap
// the transform back. Update is invalid again until the next Activate.
func (o *Oscillator) Deactivate() mgl32.Vec3 {
	o.active = false
	return o.state.BasePosition
}
