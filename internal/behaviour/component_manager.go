package behaviour

import (
	"ProcMotion/internal/clock"
	"ProcMotion/internal/logger"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
)

// ComponentManager owns the GameObjects of one scene and drives their
// per-frame callbacks. With workers > 1 independent hierarchies update
// concurrently; objects under the same root always update on one goroutine.
type ComponentManager struct {
	gameObjects []*GameObject
	toDestroy   []*GameObject
	pool        pond.Pool
}

type ManagerOption func(*ComponentManager)

// WithWorkers enables parallel updates on a pool of n goroutines.
// n <= 1 keeps updates on the calling goroutine.
func WithWorkers(n int) ManagerOption {
	return func(cm *ComponentManager) {
		if n > 1 {
			cm.pool = pond.NewPool(n)
		}
	}
}

func NewComponentManager(opts ...ManagerOption) *ComponentManager {
	cm := &ComponentManager{
		gameObjects: make([]*GameObject, 0),
		toDestroy:   make([]*GameObject, 0),
	}
	for _, opt := range opts {
		opt(cm)
	}
	return cm
}

// Parallel reports whether updates run on a worker pool
func (cm *ComponentManager) Parallel() bool {
	return cm.pool != nil
}

// RegisterGameObject adds a GameObject to the manager
func (cm *ComponentManager) RegisterGameObject(obj *GameObject) {
	cm.gameObjects = append(cm.gameObjects, obj)
	logger.Log.Debug("GameObject registered",
		zap.String("name", obj.Name),
		zap.Int("components", len(obj.Components)))
}

func (cm *ComponentManager) UnregisterGameObject(obj *GameObject) {
	for i, o := range cm.gameObjects {
		if o == obj {
			cm.gameObjects = append(cm.gameObjects[:i], cm.gameObjects[i+1:]...)
			obj.Destroy()
			return
		}
	}
}

// FindGameObject finds a GameObject by name
func (cm *ComponentManager) FindGameObject(name string) *GameObject {
	for _, obj := range cm.gameObjects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// FindGameObjectsWithTag finds all GameObjects with a specific tag
func (cm *ComponentManager) FindGameObjectsWithTag(tag string) []*GameObject {
	var result []*GameObject
	for _, obj := range cm.gameObjects {
		if obj.Tag == tag {
			result = append(result, obj)
		}
	}
	return result
}

func (cm *ComponentManager) flushDestroyed() {
	if len(cm.toDestroy) == 0 {
		return
	}
	for _, obj := range cm.toDestroy {
		cm.UnregisterGameObject(obj)
	}
	cm.toDestroy = cm.toDestroy[:0]
}

func updateObject(obj *GameObject, frame clock.Frame) {
	if !obj.Active {
		return
	}
	obj.pullSink()
	obj.internalUpdate(frame)
	obj.pushSink()
}

// UpdateAll runs Start (once) and Update on every active GameObject
func (cm *ComponentManager) UpdateAll(frame clock.Frame) {
	cm.flushDestroyed()

	if cm.pool == nil {
		for _, obj := range cm.gameObjects {
			updateObject(obj, frame)
		}
		return
	}
	cm.runParallel(func(obj *GameObject) { updateObject(obj, frame) })
}

// FixedUpdateAll calls FixedUpdate on all active GameObjects
func (cm *ComponentManager) FixedUpdateAll(frame clock.Frame) {
	if cm.pool == nil {
		for _, obj := range cm.gameObjects {
			obj.internalFixedUpdate(frame)
		}
		return
	}
	cm.runParallel(func(obj *GameObject) { obj.internalFixedUpdate(frame) })
}

// hierarchies groups registered objects by root transform, keeping
// registration order inside each group.
func (cm *ComponentManager) hierarchies() [][]*GameObject {
	index := make(map[*Transform]int)
	var groups [][]*GameObject
	for _, obj := range cm.gameObjects {
		root := obj.Transform.Root()
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], obj)
	}
	return groups
}

func (cm *ComponentManager) runParallel(fn func(obj *GameObject)) {
	group := cm.pool.NewGroup()
	for _, objs := range cm.hierarchies() {
		objs := objs
		group.Submit(func() {
			for _, obj := range objs {
				fn(obj)
			}
		})
	}
	if err := group.Wait(); err != nil {
		logger.Log.Error("Parallel update failed", zap.Error(err))
	}
}

// DestroyGameObject marks a GameObject for destruction (will be removed next frame)
func (cm *ComponentManager) DestroyGameObject(obj *GameObject) {
	cm.toDestroy = append(cm.toDestroy, obj)
}

// GetAllGameObjects returns all registered GameObjects
func (cm *ComponentManager) GetAllGameObjects() []*GameObject {
	return cm.gameObjects
}

// Clear removes all GameObjects
func (cm *ComponentManager) Clear() {
	for _, obj := range cm.gameObjects {
		obj.Destroy()
	}
	cm.gameObjects = cm.gameObjects[:0]
	cm.toDestroy = cm.toDestroy[:0]
}

// Close stops the worker pool, if any
func (cm *ComponentManager) Close() {
	if cm.pool != nil {
		cm.pool.StopAndWait()
		cm.pool = nil
	}
}
