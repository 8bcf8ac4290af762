package ui

import (
	"sort"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/clock"
)

// Animator is a minimal state machine for UI animation clips. States are
// plain names; Triggers maps a trigger to the state it switches to. A set
// trigger stays pending until an Update consumes it.
type Animator struct {
	behaviour.BaseComponent
	Triggers map[string]string

	state     string
	stateTime float64
	pending   map[string]bool
}

func NewAnimator(initial string, triggers map[string]string) *Animator {
	if triggers == nil {
		triggers = map[string]string{}
	}
	return &Animator{Triggers: triggers, state: initial, pending: map[string]bool{}}
}

// Play jumps to state and restarts its clock
func (a *Animator) Play(state string) {
	a.state = state
	a.stateTime = 0
}

func (a *Animator) State() string      { return a.state }
func (a *Animator) StateTime() float64 { return a.stateTime }

func (a *Animator) SetTrigger(name string) {
	if a.pending == nil {
		a.pending = map[string]bool{}
	}
	a.pending[name] = true
}

func (a *Animator) ResetTrigger(name string) {
	delete(a.pending, name)
}

func (a *Animator) IsTriggerSet(name string) bool {
	return a.pending[name]
}

// Update advances the state clock, then takes at most one pending trigger
// that has a mapped state. Unmapped triggers stay set.
func (a *Animator) Update(frame clock.Frame) {
	a.stateTime += frame.DeltaTime

	if len(a.pending) == 0 {
		return
	}
	names := make([]string, 0, len(a.pending))
	for name := range a.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if state, ok := a.Triggers[name]; ok {
			delete(a.pending, name)
			a.Play(state)
			return
		}
	}
}
