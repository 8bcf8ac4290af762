package behaviour

import (
	"ProcMotion/internal/clock"

	"github.com/go-gl/mathgl/mgl32"
)

// Component is the base interface for everything attached to a GameObject
type Component interface {
	// Lifecycle methods
	Awake()                   // Called once when the component is added
	OnEnable()                // Called each time the component becomes live
	Start()                   // Called before the first Update
	Update(frame clock.Frame) // Called every frame
	FixedUpdate(frame clock.Frame)
	OnDisable() // Called each time the component stops being live
	OnDestroy() // Called when the component or its object is destroyed

	GetEnabled() bool
	SetEnabled(bool)
	GetGameObject() *GameObject
	SetGameObject(*GameObject)
}

// BaseComponent provides no-op lifecycle methods.
// Scripts embed it and override only what they need.
type BaseComponent struct {
	enabled    bool
	gameObject *GameObject
}

func (c *BaseComponent) Awake()                        {}
func (c *BaseComponent) OnEnable()                     {}
func (c *BaseComponent) Start()                        {}
func (c *BaseComponent) Update(frame clock.Frame)      {}
func (c *BaseComponent) FixedUpdate(frame clock.Frame) {}
func (c *BaseComponent) OnDisable()                    {}
func (c *BaseComponent) OnDestroy()                    {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetGameObject() *GameObject {
	return c.gameObject
}

func (c *BaseComponent) SetGameObject(obj *GameObject) {
	c.gameObject = obj
}

// Sink receives the local pose of a GameObject after every update. It is
// the boundary to whatever actually draws or records the object.
type Sink interface {
	Pose() (position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3)
	SetPose(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3)
}

// GameObject is a named transform with components attached
type GameObject struct {
	Name       string
	Tag        string
	Active     bool
	Transform  *Transform
	Components []Component

	sink    Sink
	started map[Component]bool
}

func NewGameObject(name string) *GameObject {
	obj := &GameObject{
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		Transform:  NewTransform(),
		started:    make(map[Component]bool),
	}
	obj.Transform.SetGameObject(obj)
	return obj
}

// live reports whether c should receive frame callbacks
func (obj *GameObject) live(c Component) bool {
	return obj.Active && c.GetEnabled()
}

// AddComponent attaches and enables component, then runs Awake and, if the
// object is active, OnEnable.
func (obj *GameObject) AddComponent(component Component) {
	component.SetGameObject(obj)
	component.SetEnabled(true)
	obj.Components = append(obj.Components, component)
	component.Awake()
	if obj.Active {
		component.OnEnable()
	}
}

func (obj *GameObject) RemoveComponent(component Component) {
	for i, comp := range obj.Components {
		if comp == component {
			if obj.live(comp) {
				comp.OnDisable()
			}
			comp.OnDestroy()
			delete(obj.started, comp)
			obj.Components = append(obj.Components[:i], obj.Components[i+1:]...)
			return
		}
	}
}

// SetComponentEnabled toggles one component, firing OnEnable or OnDisable
// when its live state changes.
func (obj *GameObject) SetComponentEnabled(component Component, enabled bool) {
	if component.GetEnabled() == enabled {
		return
	}
	component.SetEnabled(enabled)
	if !obj.Active {
		return
	}
	if enabled {
		component.OnEnable()
	} else {
		component.OnDisable()
	}
}

// SetActive toggles the whole object. Children keep their own flag.
func (obj *GameObject) SetActive(active bool) {
	if obj.Active == active {
		return
	}
	obj.Active = active
	for _, comp := range obj.Components {
		if !comp.GetEnabled() {
			continue
		}
		if active {
			comp.OnEnable()
		} else {
			comp.OnDisable()
		}
	}
}

// GetComponent returns the first component matching the predicate
func (obj *GameObject) GetComponent(match func(Component) bool) Component {
	for _, comp := range obj.Components {
		if comp != nil && match(comp) {
			return comp
		}
	}
	return nil
}

// FindComponent returns the first component of type T
func FindComponent[T Component](obj *GameObject) (T, bool) {
	for _, comp := range obj.Components {
		if c, ok := comp.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// SetSink attaches a pose sink and pushes the current pose to it
func (obj *GameObject) SetSink(sink Sink) {
	obj.sink = sink
	if sink != nil {
		sink.SetPose(obj.Transform.Position, obj.Transform.Rotation, obj.Transform.Scale)
	}
}

func (obj *GameObject) GetSink() Sink {
	return obj.sink
}

// pullSink adopts a pose changed on the sink side since the last push
func (obj *GameObject) pullSink() {
	if obj.sink == nil {
		return
	}
	pos, rot, scale := obj.sink.Pose()
	t := obj.Transform
	if pos != t.Position || rot != t.Rotation || scale != t.Scale {
		t.Position, t.Rotation, t.Scale = pos, rot, scale
	}
}

func (obj *GameObject) pushSink() {
	if obj.sink == nil {
		return
	}
	obj.sink.SetPose(obj.Transform.Position, obj.Transform.Rotation, obj.Transform.Scale)
}

func (obj *GameObject) internalStart() {
	if !obj.Active {
		return
	}
	for _, comp := range obj.Components {
		if comp.GetEnabled() && !obj.started[comp] {
			obj.started[comp] = true
			comp.Start()
		}
	}
}

func (obj *GameObject) internalUpdate(frame clock.Frame) {
	if !obj.Active {
		return
	}
	obj.internalStart()
	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.Update(frame)
		}
	}
}

func (obj *GameObject) internalFixedUpdate(frame clock.Frame) {
	if !obj.Active {
		return
	}
	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.FixedUpdate(frame)
		}
	}
}

// Destroy disables and destroys every component and deactivates the object
func (obj *GameObject) Destroy() {
	for _, comp := range obj.Components {
		if obj.live(comp) {
			comp.OnDisable()
		}
		comp.OnDestroy()
	}
	obj.Active = false
}
