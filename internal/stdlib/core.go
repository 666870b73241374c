package stdlib

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

// coreRegistry covers printing, type introspection, conversions, array
// length/push/pop, range generation, and math helpers — grounded on the
// teacher's RegisterBuiltins (print/println/typeOf/toString/len/push/pop),
// generalised to LLL's single-number domain and extended with math-backed
// numeric helpers in the same closure-over-output-buffer style.
func coreRegistry(output *runtime.OutputBuffer) runtime.Registry {
	return runtime.Registry{
		"print":   printFn(output),
		"println": printFn(output),

		"type": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("type() expects 1 argument, got %d", len(args))
			}
			return runtime.StringVal(args[0].TypeName()), nil
		},

		"to_string": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("to_string() expects 1 argument, got %d", len(args))
			}
			return runtime.StringVal(args[0].String()), nil
		},

		"to_int": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("to_int() expects 1 argument, got %d", len(args))
			}
			f, err := toNumber(args[0])
			if err != nil {
				return nil, fmt.Errorf("to_int() %s", err)
			}
			return runtime.NumberVal(math.Trunc(f)), nil
		},

		"to_float": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("to_float() expects 1 argument, got %d", len(args))
			}
			f, err := toNumber(args[0])
			if err != nil {
				return nil, fmt.Errorf("to_float() %s", err)
			}
			return runtime.NumberVal(f), nil
		},

		"len": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("len() expects 1 argument, got %d", len(args))
			}
			switch v := args[0].(type) {
			case runtime.StringVal:
				return runtime.NumberVal(len(string(v))), nil
			case *runtime.ArrayVal:
				return runtime.NumberVal(len(v.Elements)), nil
			default:
				return nil, fmt.Errorf("len() not supported for type '%s'", args[0].TypeName())
			}
		},

		"push": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("push() expects 2 arguments, got %d", len(args))
			}
			arr, ok := args[0].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("push() first argument must be an array, got '%s'", args[0].TypeName())
			}
			arr.Elements = append(arr.Elements, args[1])
			return runtime.NumberVal(len(arr.Elements)), nil
		},

		"pop": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("pop() expects 1 argument, got %d", len(args))
			}
			arr, ok := args[0].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("pop() first argument must be an array, got '%s'", args[0].TypeName())
			}
			if len(arr.Elements) == 0 {
				return nil, fmt.Errorf("pop() on empty array")
			}
			last := arr.Elements[len(arr.Elements)-1]
			arr.Elements = arr.Elements[:len(arr.Elements)-1]
			return last, nil
		},

		"range": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("range() expects 1 argument, got %d", len(args))
			}
			n, err := toNumber(args[0])
			if err != nil {
				return nil, fmt.Errorf("range() %s", err)
			}
			count := int(n)
			if count < 0 {
				return nil, fmt.Errorf("range() argument must be non-negative")
			}
			elements := make([]runtime.Value, count)
			for i := 0; i < count; i++ {
				elements[i] = runtime.NumberVal(i)
			}
			return &runtime.ArrayVal{Elements: elements}, nil
		},

		"abs":   mathUnary(math.Abs),
		"floor": mathUnary(math.Floor),
		"ceil":  mathUnary(math.Ceil),
		"round": mathUnary(math.Round),
		"sqrt":  mathUnary(math.Sqrt),

		"min": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("min() expects 2 arguments, got %d", len(args))
			}
			a, err := toNumber(args[0])
			if err != nil {
				return nil, fmt.Errorf("min() %s", err)
			}
			b, err := toNumber(args[1])
			if err != nil {
				return nil, fmt.Errorf("min() %s", err)
			}
			return runtime.NumberVal(math.Min(a, b)), nil
		},

		"max": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("max() expects 2 arguments, got %d", len(args))
			}
			a, err := toNumber(args[0])
			if err != nil {
				return nil, fmt.Errorf("max() %s", err)
			}
			b, err := toNumber(args[1])
			if err != nil {
				return nil, fmt.Errorf("max() %s", err)
			}
			return runtime.NumberVal(math.Max(a, b)), nil
		},
	}
}

func printFn(output *runtime.OutputBuffer) runtime.BuiltinFunc {
	return func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
		output.WriteLine(runtime.ValuesString(args, " "))
		return runtime.NilVal{}, nil
	}
}

func mathUnary(f func(float64) float64) runtime.BuiltinFunc {
	return func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expects 1 argument, got %d", len(args))
		}
		n, err := toNumber(args[0])
		if err != nil {
			return nil, err
		}
		return runtime.NumberVal(f(n)), nil
	}
}

// toNumber extracts a float64 from a NumberVal, or parses a StringVal.
func toNumber(v runtime.Value) (float64, error) {
	switch val := v.(type) {
	case runtime.NumberVal:
		return float64(val), nil
	case runtime.StringVal:
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert '%s' to a number", string(val))
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected a number, got '%s'", v.TypeName())
	}
}
