package stdlib

import (
	"fmt"
	"os"
	"time"

	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

// osRegistry exposes the host's environment, process arguments, and clock
// to scripts — stdlib os/time, mirroring the teacher's process-facing
// builtins at a coarser, read-only grain.
func osRegistry() runtime.Registry {
	return runtime.Registry{
		"env": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			name, err := oneString("env", args)
			if err != nil {
				return nil, err
			}
			return runtime.StringVal(os.Getenv(name)), nil
		},

		"args": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 0 {
				return nil, fmt.Errorf("args() expects 0 arguments, got %d", len(args))
			}
			elements := make([]runtime.Value, len(os.Args))
			for i, a := range os.Args {
				elements[i] = runtime.StringVal(a)
			}
			return &runtime.ArrayVal{Elements: elements}, nil
		},

		"now": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 0 {
				return nil, fmt.Errorf("now() expects 0 arguments, got %d", len(args))
			}
			return runtime.NumberVal(time.Now().UnixMilli()), nil
		},
	}
}
