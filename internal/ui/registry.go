// Package ui holds the UI-side state motion and transitions act on: canvas
// groups, animators and a registry to find UI objects and play named
// transitions on them.
package ui

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/logger"
	"ProcMotion/internal/transition"

	"go.uber.org/zap"
)

var (
	ErrDuplicate  = errors.New("ui object already registered")
	ErrNotFound   = errors.New("ui object not found")
	ErrNoCanvas   = errors.New("ui object has no canvas group")
	ErrNoAnimator = errors.New("ui object has no animator")
)

// Registry maps names to UI objects. Construct one per scene and pass it to
// whatever needs lookups; it is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	objects map[string]*behaviour.GameObject

	transitions *transition.Library
	playMu      sync.Mutex
	player      *transition.Player
}

func NewRegistry() *Registry {
	return NewRegistryWithTransitions(transition.NewLibrary())
}

func NewRegistryWithTransitions(lib *transition.Library) *Registry {
	if lib == nil {
		lib = transition.NewLibrary()
	}
	return &Registry{
		objects:     make(map[string]*behaviour.GameObject),
		transitions: lib,
		player:      transition.NewPlayer(),
	}
}

// Transitions is the named transition library PlayByName resolves against
func (r *Registry) Transitions() *transition.Library {
	return r.transitions
}

func (r *Registry) Register(name string, obj *behaviour.GameObject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.objects[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.objects[name] = obj
	return nil
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.objects, name)
}

func (r *Registry) Lookup(name string) (*behaviour.GameObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, ok := r.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return obj, nil
}

// CanvasGroup returns the canvas group of the named object
func (r *Registry) CanvasGroup(name string) (*CanvasGroup, error) {
	obj, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	g, ok := behaviour.FindComponent[*CanvasGroup](obj)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCanvas, name)
	}
	return g, nil
}

// Names returns the registered names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.objects))
	for name := range r.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlayByName plays a library transition on the named UI object. The first
// component of the object that the transition supports becomes the target.
// Registry.Update drives the returned playback.
func (r *Registry) PlayByName(uiName, transitionName string) (*transition.Playback, error) {
	obj, err := r.Lookup(uiName)
	if err != nil {
		logger.Log.Warn("UI object not found", zap.String("ui", uiName))
		return nil, err
	}
	tr, err := r.transitions.Get(transitionName)
	if err != nil {
		logger.Log.Warn("Transition not found",
			zap.String("ui", uiName),
			zap.String("transition", transitionName))
		return nil, err
	}

	r.playMu.Lock()
	defer r.playMu.Unlock()

	for _, c := range obj.Components {
		pb, err := r.player.Start(tr, c)
		if errors.Is(err, transition.ErrUnsupportedTarget) {
			continue
		}
		if err != nil {
			return nil, err
		}
		logger.Log.Debug("Transition started",
			zap.String("ui", uiName),
			zap.String("transition", transitionName))
		return pb, nil
	}
	return nil, fmt.Errorf("%w: %s has no target for %s", transition.ErrUnsupportedTarget, uiName, tr.Name())
}

// PlayByTrigger sets trigger on the Animator of the named UI object
func (r *Registry) PlayByTrigger(uiName, trigger string) error {
	obj, err := r.Lookup(uiName)
	if err != nil {
		logger.Log.Warn("UI object not found", zap.String("ui", uiName))
		return err
	}
	anim, ok := behaviour.FindComponent[*Animator](obj)
	if !ok {
		logger.Log.Warn("No animator for trigger",
			zap.String("ui", uiName),
			zap.String("trigger", trigger))
		return fmt.Errorf("%w: %s", ErrNoAnimator, uiName)
	}
	anim.SetTrigger(trigger)
	return nil
}

// Update advances transitions started through PlayByName
func (r *Registry) Update(dt float64) {
	r.playMu.Lock()
	defer r.playMu.Unlock()
	r.player.Update(dt)
}

// Playing is the number of unfinished PlayByName playbacks
func (r *Registry) Playing() int {
	r.playMu.Lock()
	defer r.playMu.Unlock()
	return r.player.Len()
}
