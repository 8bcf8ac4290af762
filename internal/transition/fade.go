package transition

import "math"

// LoopMode decides how a looping fade restarts
type LoopMode int

const (
	LoopRestart LoopMode = iota // jump back to From
	LoopYoyo                    // play backwards on odd cycles
)

// FadeTransition drives an AlphaTarget from From to To over Duration after
// an initial Delay. Loops is the number of extra cycles, -1 for endless.
type FadeTransition struct {
	From, To float32
	Duration float64
	Delay    float64
	Loops    int
	Mode     LoopMode
	Ease     Ease
	// LockInteraction turns interaction off on targets that support it
	// while the fade plays; it comes back on completion only if the fade
	// ends visible.
	LockInteraction bool
}

func FadeIn(duration float64) *FadeTransition {
	return &FadeTransition{From: 0, To: 1, Duration: duration, Ease: Linear, LockInteraction: true}
}

func FadeOut(duration float64) *FadeTransition {
	return &FadeTransition{From: 1, To: 0, Duration: duration, Ease: Linear, LockInteraction: true}
}

// Pulse fades between low and high forever
func Pulse(low, high float32, halfPeriod float64) *FadeTransition {
	return &FadeTransition{From: high, To: low, Duration: halfPeriod, Loops: -1, Mode: LoopYoyo, Ease: InOutSine}
}

func (f *FadeTransition) Name() string { return "fade" }

// totalDuration is negative for endless fades
func (f *FadeTransition) totalDuration() float64 {
	return loopedDuration(f.Delay, f.Duration, f.Loops)
}

func loopedDuration(delay, cycle float64, loops int) float64 {
	if loops < 0 {
		return -1
	}
	return delay + cycle*float64(loops+1)
}

// cyclePosition maps time since the delay onto [0, cycle], reversing odd
// cycles for yoyo loops
func cyclePosition(t, cycle float64, loops int, mode LoopMode) float64 {
	n := math.Floor(t / cycle)
	if loops >= 0 && n > float64(loops) {
		n = float64(loops)
	}
	local := t - n*cycle
	if local > cycle {
		local = cycle
	}
	if mode == LoopYoyo && int64(n)%2 == 1 {
		local = cycle - local
	}
	return local
}

func interpolate(from, to float32, u float64, ease Ease) float32 {
	if ease == nil {
		ease = Linear
	}
	return from + (to-from)*float32(ease(u))
}

// AlphaAt evaluates the fade elapsed seconds after Play
func (f *FadeTransition) AlphaAt(elapsed float64) float32 {
	t := elapsed - f.Delay
	if t < 0 {
		return f.From
	}
	if f.Duration <= 0 {
		return f.To
	}
	u := cyclePosition(t, f.Duration, f.Loops, f.Mode) / f.Duration
	return interpolate(f.From, f.To, u, f.Ease)
}

// Play sets the start alpha immediately. target must be an AlphaTarget.
func (f *FadeTransition) Play(target any) (*Playback, error) {
	return playAlpha(f, target, f.From, f.totalDuration(), f.AlphaAt, f.LockInteraction)
}

// FadeStep is one leg of a FadeSequence
type FadeStep struct {
	To       float32
	Duration float64
	Ease     Ease
}

// FadeSequence plays its steps back to back starting from From, each with
// its own ease. Loops and Mode apply to the whole sequence.
type FadeSequence struct {
	From            float32
	Steps           []FadeStep
	Delay           float64
	Loops           int
	Mode            LoopMode
	LockInteraction bool
}

// Blink fades in with easeIn and back out with easeOut, stepDuration each,
// forever. The target stays non-interactive throughout.
func Blink(stepDuration float64, easeIn, easeOut Ease) *FadeSequence {
	return &FadeSequence{
		From: 0,
		Steps: []FadeStep{
			{To: 1, Duration: stepDuration, Ease: easeIn},
			{To: 0, Duration: stepDuration, Ease: easeOut},
		},
		Loops:           -1,
		LockInteraction: true,
	}
}

func (s *FadeSequence) Name() string { return "fade-sequence" }

func (s *FadeSequence) cycleDuration() float64 {
	var d float64
	for _, st := range s.Steps {
		if st.Duration > 0 {
			d += st.Duration
		}
	}
	return d
}

func (s *FadeSequence) final() float32 {
	if len(s.Steps) == 0 {
		return s.From
	}
	return s.Steps[len(s.Steps)-1].To
}

// AlphaAt evaluates the sequence elapsed seconds after Play
func (s *FadeSequence) AlphaAt(elapsed float64) float32 {
	t := elapsed - s.Delay
	if t < 0 {
		return s.From
	}
	cycle := s.cycleDuration()
	if cycle <= 0 {
		return s.final()
	}
	local := cyclePosition(t, cycle, s.Loops, s.Mode)

	from := s.From
	for i, st := range s.Steps {
		if st.Duration <= 0 {
			from = st.To
			continue
		}
		if local <= st.Duration || i == len(s.Steps)-1 {
			u := math.Min(local/st.Duration, 1)
			return interpolate(from, st.To, u, st.Ease)
		}
		local -= st.Duration
		from = st.To
	}
	return from
}

func (s *FadeSequence) Play(target any) (*Playback, error) {
	total := loopedDuration(s.Delay, s.cycleDuration(), s.Loops)
	return playAlpha(s, target, s.From, total, s.AlphaAt, s.LockInteraction)
}

// playAlpha is the shared Play of alpha-driven transitions
func playAlpha(tr Transition, target any, from float32, total float64, alphaAt func(float64) float32, lock bool) (*Playback, error) {
	at, ok := target.(AlphaTarget)
	if !ok {
		return nil, unsupported(tr, target)
	}
	at.SetAlpha(from)

	var finish func()
	if it, ok := target.(InteractableTarget); ok && lock {
		it.SetInteractable(false)
		finish = func() { it.SetInteractable(at.Alpha() > 0) }
	}

	return newPlayback(tr.Name(), total,
		func(elapsed float64) { at.SetAlpha(alphaAt(elapsed)) },
		finish,
	), nil
}
