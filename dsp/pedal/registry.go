package pedal

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-pedal/dsp/effects"
)

var (
	// ErrUnknownEffect is returned when a pedal name is not registered.
	ErrUnknownEffect = errors.New("pedal: unknown effect")
	// ErrDuplicateEffect is returned when a name is registered twice.
	ErrDuplicateEffect = errors.New("pedal: duplicate effect")
)

// Factory builds one unconfigured topology.
type Factory func() (effects.Topology, error)

// Entry describes one pedal.
type Entry struct {
	Name        string
	Description string
	New         Factory
	Limits      effects.Limits
	Defaults    effects.Params
}

// Registry maps pedal names to their entries.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a pedal. Its defaults must lie within its limits.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return errors.New("pedal: empty effect name")
	}
	if e.New == nil {
		return fmt.Errorf("pedal: nil factory for %s", e.Name)
	}
	if err := e.Defaults.Validate(e.Limits); err != nil {
		return fmt.Errorf("pedal %s defaults: %w", e.Name, err)
	}
	if _, exists := r.entries[e.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEffect, e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return e, nil
}

// Names returns the registered pedal names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
