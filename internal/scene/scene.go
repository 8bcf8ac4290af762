// Package scene instantiates a configured set of GameObjects and scripts.
package scene

import (
	"fmt"
	"sort"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/clock"
	"ProcMotion/internal/config"
	"ProcMotion/internal/logger"
	"ProcMotion/internal/transition"
	"ProcMotion/internal/ui"
	"ProcMotion/scripts"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Scene is what Build produced, in declaration order
type Scene struct {
	Objects []*behaviour.GameObject
	UI      *ui.Registry

	events []config.EventConfig // sorted by At
	next   int
}

func vec3(v []float32, fallback mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return fallback
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Build creates every object in cfg, registers it with cm and attaches its
// scripts. Poses and parents are set before scripts are added, so scripts
// capture their base pose from the configured transform.
func Build(cfg *config.Config, reg *behaviour.ScriptRegistry, cm *behaviour.ComponentManager) (*Scene, error) {
	lib := transition.NewLibrary()
	for _, tc := range cfg.Transitions {
		tr, err := scripts.TransitionFromProps(tc.Kind, behaviour.Props(tc.Props))
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", tc.Name, err)
		}
		if err := lib.Add(tc.Name, tr); err != nil {
			return nil, err
		}
	}

	sc := &Scene{UI: ui.NewRegistryWithTransitions(lib)}
	sc.events = append(sc.events, cfg.Events...)
	sort.SliceStable(sc.events, func(i, j int) bool { return sc.events[i].At < sc.events[j].At })

	byName := make(map[string]*behaviour.GameObject, len(cfg.Objects))

	for _, oc := range cfg.Objects {
		obj := behaviour.NewGameObject(oc.Name)
		obj.Tag = oc.Tag
		obj.Active = !oc.Inactive

		if oc.Parent != "" {
			parent, ok := byName[oc.Parent]
			if !ok {
				return nil, fmt.Errorf("object %s: unknown parent %s", oc.Name, oc.Parent)
			}
			obj.Transform.SetParent(parent.Transform)
		}
		obj.Transform.Position = vec3(oc.Position, obj.Transform.Position)
		obj.Transform.Scale = vec3(oc.Scale, obj.Transform.Scale)
		if len(oc.Rotation) == 3 {
			obj.Transform.Rotation = behaviour.EulerQuat(vec3(oc.Rotation, mgl32.Vec3{}))
		}

		if oc.UI {
			alpha := float32(1)
			if oc.Alpha != nil {
				alpha = *oc.Alpha
			}
			obj.AddComponent(ui.NewCanvasGroup(alpha))
			if oc.Animator != nil {
				obj.AddComponent(ui.NewAnimator(oc.Animator.State, oc.Animator.Triggers))
			}
			if err := sc.UI.Register(oc.Name, obj); err != nil {
				return nil, err
			}
		}

		for _, s := range oc.Scripts {
			comp, err := reg.Create(s.Name, behaviour.Props(s.Props))
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", oc.Name, err)
			}
			obj.AddComponent(comp)
			if s.Disabled {
				obj.SetComponentEnabled(comp, false)
			}
		}

		cm.RegisterGameObject(obj)
		byName[oc.Name] = obj
		sc.Objects = append(sc.Objects, obj)

		logger.Log.Debug("Scene object built",
			zap.String("name", oc.Name),
			zap.String("parent", oc.Parent),
			zap.Int("scripts", len(oc.Scripts)))
	}

	logger.Log.Info("Scene built",
		zap.Int("objects", len(sc.Objects)),
		zap.Strings("ui", sc.UI.Names()),
		zap.Strings("transitions", lib.Names()),
		zap.Int("events", len(sc.events)))
	return sc, nil
}

// Update runs after each frame. It advances running UI transitions on
// unscaled time, then fires the events that have come due. A failed event
// is logged and skipped.
func (sc *Scene) Update(frame clock.Frame) {
	sc.UI.Update(frame.UnscaledDeltaTime)

	for sc.next < len(sc.events) && sc.events[sc.next].At <= frame.UnscaledTime {
		ev := sc.events[sc.next]
		sc.next++

		var err error
		if ev.Transition != "" {
			_, err = sc.UI.PlayByName(ev.Object, ev.Transition)
		} else {
			err = sc.UI.PlayByTrigger(ev.Object, ev.Trigger)
		}
		if err != nil {
			logger.Log.Warn("Scene event failed",
				zap.Float64("at", ev.At),
				zap.String("object", ev.Object),
				zap.Error(err))
			continue
		}
		logger.Log.Debug("Scene event fired",
			zap.Float64("at", ev.At),
			zap.String("object", ev.Object),
			zap.String("transition", ev.Transition),
			zap.String("trigger", ev.Trigger))
	}
}

// Pending is the number of events that have not fired yet
func (sc *Scene) Pending() int {
	return len(sc.events) - sc.next
}
