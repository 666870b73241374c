package stdlib

import (
	"fmt"
	"sort"

	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

// arraysRegistry covers sort, reverse, slice, and concat — grounded on the
// teacher's callArrayMethod dispatch, generalised to free functions and
// using stdlib sort for the comparison-based sort builtin.
func arraysRegistry() runtime.Registry {
	return runtime.Registry{
		"sort": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("sort() expects 1 argument, got %d", len(args))
			}
			arr, ok := args[0].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("sort() argument must be an array, got '%s'", args[0].TypeName())
			}
			out := make([]runtime.Value, len(arr.Elements))
			copy(out, arr.Elements)
			var sortErr error
			sort.SliceStable(out, func(i, j int) bool {
				less, err := lessThan(out[i], out[j])
				if err != nil && sortErr == nil {
					sortErr = err
				}
				return less
			})
			if sortErr != nil {
				return nil, fmt.Errorf("sort() %s", sortErr)
			}
			return &runtime.ArrayVal{Elements: out}, nil
		},

		"reverse": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("reverse() expects 1 argument, got %d", len(args))
			}
			arr, ok := args[0].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("reverse() argument must be an array, got '%s'", args[0].TypeName())
			}
			n := len(arr.Elements)
			out := make([]runtime.Value, n)
			for i, elem := range arr.Elements {
				out[n-1-i] = elem
			}
			return &runtime.ArrayVal{Elements: out}, nil
		},

		"slice": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("slice() expects 3 arguments, got %d", len(args))
			}
			arr, ok := args[0].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("slice() first argument must be an array, got '%s'", args[0].TypeName())
			}
			start, err := toNumber(args[1])
			if err != nil {
				return nil, fmt.Errorf("slice() start must be a number")
			}
			end, err := toNumber(args[2])
			if err != nil {
				return nil, fmt.Errorf("slice() end must be a number")
			}
			si, ei := int(start), int(end)
			n := len(arr.Elements)
			if si < 0 {
				si = 0
			}
			if ei > n {
				ei = n
			}
			if si > ei {
				si, ei = ei, si
			}
			out := make([]runtime.Value, ei-si)
			copy(out, arr.Elements[si:ei])
			return &runtime.ArrayVal{Elements: out}, nil
		},

		"concat": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("concat() expects 2 arguments, got %d", len(args))
			}
			a, ok := args[0].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("concat() first argument must be an array, got '%s'", args[0].TypeName())
			}
			b, ok := args[1].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("concat() second argument must be an array, got '%s'", args[1].TypeName())
			}
			out := make([]runtime.Value, 0, len(a.Elements)+len(b.Elements))
			out = append(out, a.Elements...)
			out = append(out, b.Elements...)
			return &runtime.ArrayVal{Elements: out}, nil
		},
	}
}

func lessThan(a, b runtime.Value) (bool, error) {
	switch av := a.(type) {
	case runtime.NumberVal:
		bv, ok := b.(runtime.NumberVal)
		if !ok {
			return false, fmt.Errorf("cannot compare '%s' and '%s'", a.TypeName(), b.TypeName())
		}
		return av < bv, nil
	case runtime.StringVal:
		bv, ok := b.(runtime.StringVal)
		if !ok {
			return false, fmt.Errorf("cannot compare '%s' and '%s'", a.TypeName(), b.TypeName())
		}
		return av < bv, nil
	default:
		return false, fmt.Errorf("values of type '%s' are not orderable", a.TypeName())
	}
}
