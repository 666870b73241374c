package stdlib

import (
	"fmt"
	"math/rand"

	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

// quantumRegistry is a thin, host-appropriate stand-in for the source
// language's "quantum/photonic" novelty builtins. None of these model
// actual quantum mechanics — qubit_measure is a coin flip, photon_count
// is a scaled random draw, and entangle is a pure deterministic pairing
// with no randomness at all.
func quantumRegistry() runtime.Registry {
	rng := rand.New(rand.NewSource(1))

	return runtime.Registry{
		"qubit_measure": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 0 {
				return nil, fmt.Errorf("qubit_measure() expects 0 arguments, got %d", len(args))
			}
			return runtime.NumberVal(rng.Intn(2)), nil
		},

		"photon_count": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("photon_count() expects 1 argument, got %d", len(args))
			}
			secs, err := toNumber(args[0])
			if err != nil {
				return nil, fmt.Errorf("photon_count() %s", err)
			}
			if secs < 0 {
				return nil, fmt.Errorf("photon_count() argument must be non-negative")
			}
			lambda := secs * 5.0
			count := 0
			for remaining := lambda; remaining > 0; remaining-- {
				if rng.Float64() < remaining-float64(int(remaining))+0.5 {
					count++
				}
			}
			return runtime.NumberVal(count), nil
		},

		"entangle": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("entangle() expects 2 arguments, got %d", len(args))
			}
			return &runtime.ArrayVal{Elements: []runtime.Value{args[1], args[0]}}, nil
		},
	}
}
