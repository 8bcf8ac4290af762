// Package config loads scene and run settings from YAML, layered over the
// embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalid = errors.New("invalid config")

// Config is a complete headless run: how long to play and what to play
type Config struct {
	Run         RunConfig          `yaml:"run"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
	Objects     []ObjectConfig     `yaml:"objects"`
	Events      []EventConfig      `yaml:"events,omitempty"`

	Derived DerivedConfig `yaml:"-"`
}

// RunConfig controls the frame loop
type RunConfig struct {
	Frames    int     `yaml:"frames"`     // number of frames to step
	Delta     float64 `yaml:"delta"`      // real seconds per frame
	TimeScale float64 `yaml:"time_scale"` // scaled/unscaled ratio
	Seed      int64   `yaml:"seed"`       // phase randomization seed, 0 = time-based
	Workers   int     `yaml:"workers"`    // > 1 updates hierarchies in parallel
	Noise     string  `yaml:"noise"`      // improved | perlin
	NoiseSeed int64   `yaml:"noise_seed"` // noise permutation seed
	LogEvery  int     `yaml:"log_every"`  // frames between progress logs, 0 = off
}

// ObjectConfig is one GameObject
type ObjectConfig struct {
	Name     string          `yaml:"name"`
	Tag      string          `yaml:"tag,omitempty"`
	Parent   string          `yaml:"parent,omitempty"`
	Position []float32       `yaml:"position,omitempty"`
	Rotation []float32       `yaml:"rotation,omitempty"` // Euler degrees
	Scale    []float32       `yaml:"scale,omitempty"`
	Inactive bool            `yaml:"inactive,omitempty"`
	UI       bool            `yaml:"ui,omitempty"`    // adds a CanvasGroup and registers the object by name
	Alpha    *float32        `yaml:"alpha,omitempty"` // initial CanvasGroup alpha, default 1
	Animator *AnimatorConfig `yaml:"animator,omitempty"`
	Scripts  []ScriptConfig  `yaml:"scripts,omitempty"`
}

// AnimatorConfig adds an Animator to a UI object
type AnimatorConfig struct {
	State    string            `yaml:"state"`              // initial state
	Triggers map[string]string `yaml:"triggers,omitempty"` // trigger -> state
}

// TransitionConfig is a named entry of the scene's transition library.
// Kind is fade, blink or animation; Props are read like script props.
type TransitionConfig struct {
	Name  string         `yaml:"name"`
	Kind  string         `yaml:"kind,omitempty"`
	Props map[string]any `yaml:"props,omitempty"`
}

// EventConfig plays a library transition or sets an animator trigger on a
// UI object once unscaled time reaches At
type EventConfig struct {
	At         float64 `yaml:"at"`
	Object     string  `yaml:"object"`
	Transition string  `yaml:"transition,omitempty"`
	Trigger    string  `yaml:"trigger,omitempty"`
}

type ScriptConfig struct {
	Name     string         `yaml:"name"`
	Disabled bool           `yaml:"disabled,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
}

// DerivedConfig holds values computed after loading
type DerivedConfig struct {
	Duration    float64        // Frames * Delta
	ObjectIndex map[string]int // name -> index into Objects
}

// Load reads path over the embedded defaults. An empty path returns the
// defaults alone. A user file that lists objects replaces the default scene,
// including its events.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		defaultEvents := cfg.Events
		cfg.Events = nil
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
		if cfg.Events == nil && !definesObjects(data) {
			cfg.Events = defaultEvents
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Parse decodes data into cfg, overwriting only the fields present
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func definesObjects(data []byte) bool {
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		return false
	}
	_, ok := top["objects"]
	return ok
}

// Validate checks run settings and the object graph. Parents must be
// declared before their children, which also rules out cycles.
func (c *Config) Validate() error {
	var errs []error
	if c.Run.Frames < 0 {
		errs = append(errs, fmt.Errorf("run.frames must not be negative, got %d", c.Run.Frames))
	}
	if c.Run.Delta <= 0 {
		errs = append(errs, fmt.Errorf("run.delta must be positive, got %v", c.Run.Delta))
	}
	if c.Run.TimeScale < 0 {
		errs = append(errs, fmt.Errorf("run.time_scale must not be negative, got %v", c.Run.TimeScale))
	}

	transitions := make(map[string]bool, len(c.Transitions))
	for i, tr := range c.Transitions {
		switch {
		case tr.Name == "":
			errs = append(errs, fmt.Errorf("transitions[%d]: name is required", i))
		case transitions[tr.Name]:
			errs = append(errs, fmt.Errorf("transitions[%d]: duplicate name %q", i, tr.Name))
		}
		transitions[tr.Name] = true
	}

	seen := make(map[string]bool, len(c.Objects))
	for i, obj := range c.Objects {
		switch {
		case obj.Name == "":
			errs = append(errs, fmt.Errorf("objects[%d]: name is required", i))
		case seen[obj.Name]:
			errs = append(errs, fmt.Errorf("objects[%d]: duplicate name %q", i, obj.Name))
		}
		if obj.Parent != "" && !seen[obj.Parent] {
			errs = append(errs, fmt.Errorf("objects[%d]: parent %q must be declared earlier", i, obj.Parent))
		}
		for _, v := range []struct {
			field string
			vals  []float32
		}{{"position", obj.Position}, {"rotation", obj.Rotation}, {"scale", obj.Scale}} {
			if v.vals != nil && len(v.vals) != 3 {
				errs = append(errs, fmt.Errorf("objects[%d].%s: expected 3 values, got %d", i, v.field, len(v.vals)))
			}
		}
		for j, s := range obj.Scripts {
			if s.Name == "" {
				errs = append(errs, fmt.Errorf("objects[%d].scripts[%d]: name is required", i, j))
			}
		}
		if obj.Animator != nil && !obj.UI {
			errs = append(errs, fmt.Errorf("objects[%d]: animator requires ui", i))
		}
		seen[obj.Name] = true
	}

	for i, ev := range c.Events {
		if ev.At < 0 {
			errs = append(errs, fmt.Errorf("events[%d]: at must not be negative, got %v", i, ev.At))
		}
		if (ev.Transition == "") == (ev.Trigger == "") {
			errs = append(errs, fmt.Errorf("events[%d]: exactly one of transition or trigger is required", i))
		}
		if ev.Transition != "" && !transitions[ev.Transition] {
			errs = append(errs, fmt.Errorf("events[%d]: unknown transition %q", i, ev.Transition))
		}
		idx := -1
		for j, obj := range c.Objects {
			if obj.Name == ev.Object {
				idx = j
				break
			}
		}
		switch {
		case idx < 0:
			errs = append(errs, fmt.Errorf("events[%d]: unknown object %q", i, ev.Object))
		case !c.Objects[idx].UI:
			errs = append(errs, fmt.Errorf("events[%d]: object %q is not ui", i, ev.Object))
		case ev.Trigger != "" && c.Objects[idx].Animator == nil:
			errs = append(errs, fmt.Errorf("events[%d]: object %q has no animator", i, ev.Object))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Overrides replace run settings after loading, typically from flags. Nil
// fields leave the loaded value alone.
type Overrides struct {
	Frames  *int
	Delta   *float64
	Seed    *int64
	Workers *int
}

// Apply sets every non-nil override, then re-validates and recomputes
// derived values.
func (c *Config) Apply(o Overrides) error {
	if o.Frames != nil {
		c.Run.Frames = *o.Frames
	}
	if o.Delta != nil {
		c.Run.Delta = *o.Delta
	}
	if o.Seed != nil {
		c.Run.Seed = *o.Seed
	}
	if o.Workers != nil {
		c.Run.Workers = *o.Workers
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.Duration = float64(c.Run.Frames) * c.Run.Delta
	c.Derived.ObjectIndex = make(map[string]int, len(c.Objects))
	for i, obj := range c.Objects {
		c.Derived.ObjectIndex[obj.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
