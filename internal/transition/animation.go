package transition

// AnimationTransition switches an animator to State and reports completion
// after Duration seconds. The clip itself is played by the animator.
type AnimationTransition struct {
	State    string
	Duration float64
	// Then, if set, is played when the transition completes
	Then string
}

func (a *AnimationTransition) Name() string { return "animation:" + a.State }

func (a *AnimationTransition) Play(target any) (*Playback, error) {
	anim, ok := target.(AnimatorTarget)
	if !ok {
		return nil, unsupported(a, target)
	}
	anim.Play(a.State)

	var finish func()
	if a.Then != "" {
		finish = func() { anim.Play(a.Then) }
	}
	duration := a.Duration
	if duration < 0 {
		duration = 0
	}
	return newPlayback(a.Name(), duration, nil, finish), nil
}
