// Package scripts holds the motion and UI behaviours scenes are built from.
package scripts

import (
	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/clock"
	"ProcMotion/internal/logger"
	"ProcMotion/internal/noise"
	"ProcMotion/internal/oscillator"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// OscillatorScript drives its GameObject's transform from an oscillator.
// Enabling the script captures the current pose, disabling it snaps the
// transform back to that pose.
type OscillatorScript struct {
	behaviour.BaseComponent
	Config oscillator.Config
	Noise  noise.Source
	Rand   oscillator.RandomSource
	// OnSample, if set, sees every sample after it is applied
	OnSample func(obj *behaviour.GameObject, sample oscillator.Sample)

	osc  *oscillator.Oscillator
	last oscillator.Sample
}

func NewOscillatorScript(cfg oscillator.Config, src noise.Source, rnd oscillator.RandomSource) *OscillatorScript {
	return &OscillatorScript{Config: cfg, Noise: src, Rand: rnd}
}

func (s *OscillatorScript) ensure() *oscillator.Oscillator {
	if s.osc == nil {
		s.osc = oscillator.New(s.Config, s.Noise, s.Rand)
	}
	return s.osc
}

func (s *OscillatorScript) rotationSpace() behaviour.Space {
	if s.Config.RotationSpace == oscillator.SpaceWorld {
		return behaviour.SpaceWorld
	}
	return behaviour.SpaceSelf
}

func (s *OscillatorScript) Awake() {
	s.ensure()
}

func (s *OscillatorScript) OnEnable() {
	t := s.GetGameObject().Transform
	pose := t.Position
	if s.Config.Space == oscillator.SpaceWorld {
		pose = t.WorldPosition()
	}
	st := s.ensure().Activate(pose)

	logger.Log.Debug("Oscillator activated",
		zap.String("object", s.GetGameObject().Name),
		zap.Stringer("space", s.Config.Space),
		zap.Float64("phase", st.PhaseOffset),
		zap.Float64("noiseSeed", st.NoiseSeed))
}

func (s *OscillatorScript) Update(frame clock.Frame) {
	tm, dt := frame.Select(s.Config.UseUnscaledTime)
	sample := s.ensure().Update(tm, dt)
	s.last = sample

	t := s.GetGameObject().Transform
	if s.Config.Linear() {
		s.setPosition(sample.Position)
	}
	if sample.RotationDelta != (mgl32.Vec3{}) {
		t.RotateEuler(sample.RotationDelta, s.rotationSpace())
	}
	if s.OnSample != nil {
		s.OnSample(s.GetGameObject(), sample)
	}
}

func (s *OscillatorScript) OnDisable() {
	if s.osc == nil || !s.osc.Active() {
		return
	}
	pose := s.osc.Deactivate()
	if s.Config.Linear() {
		s.setPosition(pose)
	}
}

func (s *OscillatorScript) setPosition(pos mgl32.Vec3) {
	t := s.GetGameObject().Transform
	if s.Config.Space == oscillator.SpaceWorld {
		t.SetWorldPosition(pos)
	} else {
		t.Position = pos
	}
}

// LastSample is the output of the most recent Update
func (s *OscillatorScript) LastSample() oscillator.Sample {
	return s.last
}
