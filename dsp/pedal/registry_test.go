package pedal

import (
	"errors"
	"slices"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/effects"
)

func stubEntry(name string) Entry {
	return Entry{
		Name: name,
		New: func() (effects.Topology, error) {
			return effects.NewDelay()
		},
		Limits:   effects.DelayLimits(),
		Defaults: effects.DelayDefaults(),
	}
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up entry", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		if err := r.Register(stubEntry("slap")); err != nil {
			t.Fatalf("Register returned unexpected error: %v", err)
		}
		e, err := r.Lookup("slap")
		if err != nil {
			t.Fatalf("Lookup returned unexpected error: %v", err)
		}
		if e.Name != "slap" {
			t.Fatalf("Lookup returned %q", e.Name)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register(stubEntry("")); err == nil {
			t.Fatal("expected error for empty name")
		}
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		e := stubEntry("slap")
		e.New = nil
		if err := NewRegistry().Register(e); err == nil {
			t.Fatal("expected error for nil factory")
		}
	})

	t.Run("rejects defaults outside limits", func(t *testing.T) {
		t.Parallel()

		e := stubEntry("slap")
		e.Defaults.Mix = 2
		if err := NewRegistry().Register(e); err == nil {
			t.Fatal("expected error for out-of-range defaults")
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		_ = r.Register(stubEntry("slap"))
		if err := r.Register(stubEntry("slap")); !errors.Is(err, ErrDuplicateEffect) {
			t.Fatalf("error = %v, want ErrDuplicateEffect", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		if _, err := NewRegistry().Lookup("wah"); !errors.Is(err, ErrUnknownEffect) {
			t.Fatalf("error = %v, want ErrUnknownEffect", err)
		}
	})
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister(stubEntry("slap"))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate MustRegister")
		}
	}()
	r.MustRegister(stubEntry("slap"))
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	want := []string{
		"chorus", "compressor", "delay", "distortion", "echo", "envelope",
		"flanger", "fuzz", "gain", "phaser", "reverb", "saturation", "tremolo",
	}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		e, err := r.Lookup(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		topo, err := e.New()
		if err != nil {
			t.Fatalf("%s: New() error = %v", name, err)
		}
		if topo.State() != effects.Unconfigured {
			t.Fatalf("%s: new topology is %v", name, topo.State())
		}
		if err := e.Defaults.Validate(e.Limits); err != nil {
			t.Fatalf("%s: defaults outside limits: %v", name, err)
		}
	}
}
