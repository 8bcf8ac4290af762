package behaviour

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnknownScript = errors.New("unknown script")

// Props are the parameters a script is created with, as decoded from a
// scene file. Numeric values may arrive as int, float32 or float64.
type Props map[string]any

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (p Props) Float(key string, fallback float64) float64 {
	if f, ok := toFloat(p[key]); ok {
		return f
	}
	return fallback
}

func (p Props) Bool(key string, fallback bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return fallback
}

func (p Props) String(key string, fallback string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return fallback
}

// Vec3 accepts an mgl32.Vec3 or a three element list of numbers
func (p Props) Vec3(key string, fallback mgl32.Vec3) mgl32.Vec3 {
	switch v := p[key].(type) {
	case mgl32.Vec3:
		return v
	case []float64:
		if len(v) == 3 {
			return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
		}
	case []any:
		if len(v) != 3 {
			return fallback
		}
		var out mgl32.Vec3
		for i, e := range v {
			f, ok := toFloat(e)
			if !ok {
				return fallback
			}
			out[i] = float32(f)
		}
		return out
	}
	return fallback
}

type ScriptConstructor func(props Props) (Component, error)

// ScriptRegistry maps script names to constructors. Each scene or tool
// builds its own registry.
type ScriptRegistry struct {
	mu      sync.RWMutex
	scripts map[string]ScriptConstructor
}

func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{scripts: make(map[string]ScriptConstructor)}
}

// Register adds or replaces a constructor
func (r *ScriptRegistry) Register(name string, constructor ScriptConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[name] = constructor
}

// Available returns the registered names, sorted
func (r *ScriptRegistry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ScriptRegistry) Create(name string, props Props) (Component, error) {
	r.mu.RLock()
	constructor, exists := r.scripts[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}
	if props == nil {
		props = Props{}
	}
	comp, err := constructor(props)
	if err != nil {
		return nil, fmt.Errorf("creating script %s: %w", name, err)
	}
	return comp, nil
}
