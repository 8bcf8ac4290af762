package scripts

import (
	"fmt"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/logger"
	"ProcMotion/internal/noise"
	"ProcMotion/internal/oscillator"
	"ProcMotion/internal/transition"

	"go.uber.org/zap"
)

// Dependencies are shared by every script a registry creates. Noise sources
// are read-only and Rand must be safe for concurrent use when scenes update
// in parallel.
type Dependencies struct {
	Noise noise.Source
	Rand  oscillator.RandomSource
	// OnSample is installed on every oscillator script, may be nil
	OnSample func(obj *behaviour.GameObject, sample oscillator.Sample)
}

// Register adds every script in this package to reg
func Register(reg *behaviour.ScriptRegistry, deps Dependencies) {
	oscillatorPreset := func(base func() oscillator.Config) behaviour.ScriptConstructor {
		return func(props behaviour.Props) (behaviour.Component, error) {
			cfg, err := ConfigFromProps(props, base())
			if err != nil {
				return nil, err
			}
			s := NewOscillatorScript(cfg, deps.Noise, deps.Rand)
			s.OnSample = deps.OnSample
			return s, nil
		}
	}

	reg.Register("OscillatorScript", oscillatorPreset(oscillator.DefaultConfig))
	reg.Register("FloatScript", oscillatorPreset(FloatConfig))
	reg.Register("MoveScript", oscillatorPreset(MoveConfig))
	reg.Register("RotateScript", oscillatorPreset(RotateConfig))
	reg.Register("FaderScript", func(props behaviour.Props) (behaviour.Component, error) {
		kind := props.String("kind", KindFade)
		if kind == KindAnimation {
			return nil, fmt.Errorf("fader cannot play %q transitions", kind)
		}
		fade, err := TransitionFromProps(kind, props)
		if err != nil {
			return nil, err
		}
		f := NewFaderScript(fade)
		f.UseUnscaledTime = props.Bool("unscaled_time", false)
		f.PlayOnStart = props.Bool("play_on_start", true)
		return f, nil
	})
}

// ConfigFromProps overlays scene properties on base. Out-of-range values
// are clamped with a warning rather than rejected.
func ConfigFromProps(props behaviour.Props, base oscillator.Config) (oscillator.Config, error) {
	cfg := base
	cfg.Axis = props.Vec3("axis", cfg.Axis)
	cfg.Amplitude = props.Float("amplitude", cfg.Amplitude)
	cfg.Frequency = props.Float("frequency", cfg.Frequency)
	cfg.NoiseAmount = props.Float("noise_amount", cfg.NoiseAmount)
	cfg.NoiseSpeed = props.Float("noise_speed", cfg.NoiseSpeed)
	cfg.AngularRate = props.Vec3("angular_rate", cfg.AngularRate)
	cfg.RotationJitter = props.Float("rotation_jitter", cfg.RotationJitter)
	cfg.UseUnscaledTime = props.Bool("unscaled_time", cfg.UseUnscaledTime)
	cfg.RandomizePhase = props.Bool("randomize_phase", cfg.RandomizePhase)

	if s, ok := props["space"].(string); ok {
		space, err := oscillator.ParseSpace(s)
		if err != nil {
			return cfg, err
		}
		cfg.Space = space
	}
	if s, ok := props["rotation_space"].(string); ok {
		space, err := oscillator.ParseSpace(s)
		if err != nil {
			return cfg, err
		}
		cfg.RotationSpace = space
	}

	if err := cfg.Validate(); err != nil {
		logger.Log.Warn("Clamping oscillator config", zap.Error(err))
		cfg = cfg.Sanitize()
	}
	return cfg, nil
}

// FadeFromProps builds a fade. Without properties it is a one second fade in.
func FadeFromProps(props behaviour.Props) (*transition.FadeTransition, error) {
	fade := &transition.FadeTransition{
		From:     float32(props.Float("from", 0)),
		To:       float32(props.Float("to", 1)),
		Duration: props.Float("duration", 1),
		Delay:    props.Float("delay", 0),
		Loops:    int(props.Float("loops", 0)),
		Ease:     transition.EaseByName(props.String("ease", "linear")),

		// interaction comes back only when a finite fade ends visible
		LockInteraction: props.Bool("lock_interaction", true),
	}

	mode, err := loopModeFromProps(props)
	if err != nil {
		return nil, err
	}
	fade.Mode = mode
	if fade.Duration < 0 {
		return nil, fmt.Errorf("fade duration must not be negative, got %v", fade.Duration)
	}
	return fade, nil
}

func loopModeFromProps(props behaviour.Props) (transition.LoopMode, error) {
	switch mode := props.String("mode", "restart"); mode {
	case "restart":
		return transition.LoopRestart, nil
	case "yoyo":
		return transition.LoopYoyo, nil
	default:
		return transition.LoopRestart, fmt.Errorf("unknown loop mode %q", mode)
	}
}

// Transition kinds accepted by TransitionFromProps
const (
	KindFade      = "fade"
	KindBlink     = "blink"
	KindAnimation = "animation"
)

// TransitionFromProps builds a transition of the given kind. An empty kind
// is a fade.
func TransitionFromProps(kind string, props behaviour.Props) (transition.Transition, error) {
	switch kind {
	case "", KindFade:
		return FadeFromProps(props)
	case KindBlink:
		return BlinkFromProps(props)
	case KindAnimation:
		state := props.String("state", "")
		if state == "" {
			return nil, fmt.Errorf("animation transition needs a state")
		}
		return &transition.AnimationTransition{
			State:    state,
			Duration: props.Float("duration", 0),
			Then:     props.String("then", ""),
		}, nil
	default:
		return nil, fmt.Errorf("unknown transition kind %q", kind)
	}
}

// BlinkFromProps builds a fade in then out, each leg lasting duration with
// its own ease. It loops forever unless loops says otherwise.
func BlinkFromProps(props behaviour.Props) (*transition.FadeSequence, error) {
	duration := props.Float("duration", 0.25)
	if duration < 0 {
		return nil, fmt.Errorf("blink duration must not be negative, got %v", duration)
	}
	blink := transition.Blink(duration,
		transition.EaseByName(props.String("ease_in", "out_quad")),
		transition.EaseByName(props.String("ease_out", "linear")))
	blink.Delay = props.Float("delay", 0)
	blink.Loops = int(props.Float("loops", -1))
	blink.LockInteraction = props.Bool("lock_interaction", true)

	mode, err := loopModeFromProps(props)
	if err != nil {
		return nil, err
	}
	blink.Mode = mode
	return blink, nil
}
