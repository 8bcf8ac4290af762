package scripts

import (
	"errors"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/clock"
	"ProcMotion/internal/logger"
	"ProcMotion/internal/transition"
	"ProcMotion/internal/ui"

	"go.uber.org/zap"
)

var ErrNoFade = errors.New("fader has no fade")

// FaderScript plays a fade on the CanvasGroup of its own GameObject. Fade
// is usually a FadeTransition or FadeSequence.
type FaderScript struct {
	behaviour.BaseComponent
	Fade            transition.Transition
	UseUnscaledTime bool
	PlayOnStart     bool

	player   *transition.Player
	playback *transition.Playback
}

func NewFaderScript(fade transition.Transition) *FaderScript {
	return &FaderScript{Fade: fade, PlayOnStart: true, player: transition.NewPlayer()}
}

func (f *FaderScript) Start() {
	if f.PlayOnStart {
		if err := f.Play(); err != nil {
			logger.Log.Warn("Fader could not start",
				zap.String("object", f.GetGameObject().Name),
				zap.Error(err))
		}
	}
}

// Play restarts the fade from its first frame
func (f *FaderScript) Play() error {
	group, ok := behaviour.FindComponent[*ui.CanvasGroup](f.GetGameObject())
	if !ok {
		return ui.ErrNoCanvas
	}
	if f.Fade == nil {
		return ErrNoFade
	}
	if f.player == nil {
		f.player = transition.NewPlayer()
	}
	f.player.StopAll()

	pb, err := f.player.Start(f.Fade, group)
	if err != nil {
		return err
	}
	f.playback = pb
	return nil
}

func (f *FaderScript) Update(frame clock.Frame) {
	if f.player == nil {
		return
	}
	_, dt := frame.Select(f.UseUnscaledTime)
	f.player.Update(dt)
}

func (f *FaderScript) OnDisable() {
	if f.player != nil {
		f.player.StopAll()
	}
}

// Playback is the current fade, nil before the first Play
func (f *FaderScript) Playback() *transition.Playback {
	return f.playback
}
