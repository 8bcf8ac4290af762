package transition

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownTransition   = errors.New("transition not found")
	ErrDuplicateTransition = errors.New("transition already registered")
)

// Library holds transitions by name so scenes and UI code can refer to
// them without holding the values. It is safe for concurrent use.
type Library struct {
	mu          sync.RWMutex
	transitions map[string]Transition
}

func NewLibrary() *Library {
	return &Library{transitions: make(map[string]Transition)}
}

func (l *Library) Add(name string, tr Transition) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.transitions[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTransition, name)
	}
	l.transitions[name] = tr
	return nil
}

func (l *Library) Get(name string) (Transition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tr, ok := l.transitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransition, name)
	}
	return tr, nil
}

// Names returns the registered names, sorted
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.transitions))
	for name := range l.transitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
