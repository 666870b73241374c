package stdlib

import (
	"fmt"
	"os"

	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

// ioRegistry covers file reading/writing and existence checks — grounded
// on the teacher's host-facing builtins, here backed by stdlib os rather
// than an in-memory filesystem stub.
func ioRegistry() runtime.Registry {
	return runtime.Registry{
		"read_file": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			path, err := oneString("read_file", args)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read_file() %s", err)
			}
			return runtime.StringVal(data), nil
		},

		"write_file": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("write_file() expects 2 arguments, got %d", len(args))
			}
			path, ok := args[0].(runtime.StringVal)
			if !ok {
				return nil, fmt.Errorf("write_file() first argument must be a string")
			}
			contents, ok := args[1].(runtime.StringVal)
			if !ok {
				return nil, fmt.Errorf("write_file() second argument must be a string")
			}
			if err := os.WriteFile(string(path), []byte(contents), 0o644); err != nil {
				return nil, fmt.Errorf("write_file() %s", err)
			}
			return runtime.NilVal{}, nil
		},

		"file_exists": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			path, err := oneString("file_exists", args)
			if err != nil {
				return nil, err
			}
			_, statErr := os.Stat(path)
			return runtime.BoolVal(statErr == nil), nil
		},
	}
}
