// Package transition plays short timed effects, fades and animator state
// changes, behind one capability: Play a Transition on a target and get
// back a Playback that the host ticks every frame until it is Done.
package transition

import (
	"errors"
	"fmt"
	"sync"
)

var ErrUnsupportedTarget = errors.New("target does not support transition")

// AlphaTarget is anything with an opacity
type AlphaTarget interface {
	Alpha() float32
	SetAlpha(alpha float32)
}

// InteractableTarget can accept or refuse input, independent of its alpha
type InteractableTarget interface {
	SetInteractable(interactable bool)
}

// AnimatorTarget switches between named animation states
type AnimatorTarget interface {
	Play(state string)
}

type Transition interface {
	Name() string
	Play(target any) (*Playback, error)
}

func unsupported(tr Transition, target any) error {
	return fmt.Errorf("%w: %s on %T", ErrUnsupportedTarget, tr.Name(), target)
}

// Playback is one running transition. It is advanced with Update from the
// host loop; Done is closed exactly once, on completion or Stop.
type Playback struct {
	name     string
	elapsed  float64
	duration float64 // total, negative when it never ends on its own
	step     func(elapsed float64)
	finish   func()

	finished bool
	done     chan struct{}
	once     sync.Once
}

func newPlayback(name string, duration float64, step func(float64), finish func()) *Playback {
	return &Playback{
		name:     name,
		duration: duration,
		step:     step,
		finish:   finish,
		done:     make(chan struct{}),
	}
}

func (p *Playback) Name() string { return p.name }

// Update advances by dt seconds and reports whether the playback is over
func (p *Playback) Update(dt float64) bool {
	if p.finished {
		return true
	}
	if dt > 0 {
		p.elapsed += dt
	}
	if p.duration >= 0 && p.elapsed >= p.duration {
		p.elapsed = p.duration
		if p.step != nil {
			p.step(p.elapsed)
		}
		p.complete(true)
		return true
	}
	if p.step != nil {
		p.step(p.elapsed)
	}
	return false
}

// Stop ends the playback where it is
func (p *Playback) Stop() {
	p.complete(false)
}

func (p *Playback) complete(natural bool) {
	p.once.Do(func() {
		p.finished = true
		if natural && p.finish != nil {
			p.finish()
		}
		close(p.done)
	})
}

func (p *Playback) Done() <-chan struct{} { return p.done }
func (p *Playback) Finished() bool        { return p.finished }
func (p *Playback) Elapsed() float64      { return p.elapsed }

// Progress is elapsed over total duration, 0 for endless playbacks
func (p *Playback) Progress() float64 {
	switch {
	case p.duration == 0:
		return 1
	case p.duration < 0:
		return 0
	}
	return p.elapsed / p.duration
}

// Player ticks a set of playbacks and drops them as they finish
type Player struct {
	playing []*Playback
}

func NewPlayer() *Player {
	return &Player{}
}

// Start plays tr on target and tracks the playback
func (pl *Player) Start(tr Transition, target any) (*Playback, error) {
	pb, err := tr.Play(target)
	if err != nil {
		return nil, err
	}
	pl.playing = append(pl.playing, pb)
	return pb, nil
}

func (pl *Player) Update(dt float64) {
	kept := pl.playing[:0]
	for _, pb := range pl.playing {
		if !pb.Update(dt) {
			kept = append(kept, pb)
		}
	}
	for i := len(kept); i < len(pl.playing); i++ {
		pl.playing[i] = nil
	}
	pl.playing = kept
}

func (pl *Player) StopAll() {
	for _, pb := range pl.playing {
		pb.Stop()
	}
	pl.playing = pl.playing[:0]
}

func (pl *Player) Len() int {
	return len(pl.playing)
}
