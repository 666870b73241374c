package stdlib

import (
	"fmt"
	"strings"

	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

// stringsRegistry exposes string.go's teacher methods (split, trim,
// indexOf, toUpperCase/toLowerCase, replace, includes, substring) as free
// functions, since LLL has no method-call syntax — grounded on the
// teacher's callStringMethod dispatch.
func stringsRegistry() runtime.Registry {
	return runtime.Registry{
		"split": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			s, sep, err := twoStrings("split", args)
			if err != nil {
				return nil, err
			}
			parts := strings.Split(s, sep)
			elements := make([]runtime.Value, len(parts))
			for i, p := range parts {
				elements[i] = runtime.StringVal(p)
			}
			return &runtime.ArrayVal{Elements: elements}, nil
		},

		"join": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("join() expects 2 arguments, got %d", len(args))
			}
			arr, ok := args[0].(*runtime.ArrayVal)
			if !ok {
				return nil, fmt.Errorf("join() first argument must be an array, got '%s'", args[0].TypeName())
			}
			sep, ok := args[1].(runtime.StringVal)
			if !ok {
				return nil, fmt.Errorf("join() separator must be a string")
			}
			parts := make([]string, len(arr.Elements))
			for i, elem := range arr.Elements {
				parts[i] = elem.String()
			}
			return runtime.StringVal(strings.Join(parts, string(sep))), nil
		},

		"trim": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			s, err := oneString("trim", args)
			if err != nil {
				return nil, err
			}
			return runtime.StringVal(strings.TrimSpace(s)), nil
		},

		"upper": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			s, err := oneString("upper", args)
			if err != nil {
				return nil, err
			}
			return runtime.StringVal(strings.ToUpper(s)), nil
		},

		"lower": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			s, err := oneString("lower", args)
			if err != nil {
				return nil, err
			}
			return runtime.StringVal(strings.ToLower(s)), nil
		},

		"contains": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			s, sub, err := twoStrings("contains", args)
			if err != nil {
				return nil, err
			}
			return runtime.BoolVal(strings.Contains(s, sub)), nil
		},

		"replace": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("replace() expects 3 arguments, got %d", len(args))
			}
			s, ok := args[0].(runtime.StringVal)
			if !ok {
				return nil, fmt.Errorf("replace() first argument must be a string")
			}
			old, ok := args[1].(runtime.StringVal)
			if !ok {
				return nil, fmt.Errorf("replace() second argument must be a string")
			}
			newStr, ok := args[2].(runtime.StringVal)
			if !ok {
				return nil, fmt.Errorf("replace() third argument must be a string")
			}
			return runtime.StringVal(strings.ReplaceAll(string(s), string(old), string(newStr))), nil
		},

		"index_of": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			s, sub, err := twoStrings("index_of", args)
			if err != nil {
				return nil, err
			}
			return runtime.NumberVal(strings.Index(s, sub)), nil
		},

		"substring": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("substring() expects 3 arguments, got %d", len(args))
			}
			s, ok := args[0].(runtime.StringVal)
			if !ok {
				return nil, fmt.Errorf("substring() first argument must be a string")
			}
			start, err := toNumber(args[1])
			if err != nil {
				return nil, fmt.Errorf("substring() start must be a number")
			}
			end, err := toNumber(args[2])
			if err != nil {
				return nil, fmt.Errorf("substring() end must be a number")
			}
			str := string(s)
			si, ei := int(start), int(end)
			if si < 0 {
				si = 0
			}
			if ei > len(str) {
				ei = len(str)
			}
			if si > ei {
				si, ei = ei, si
			}
			return runtime.StringVal(str[si:ei]), nil
		},
	}
}

func oneString(name string, args []runtime.Value) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s() expects 1 argument, got %d", name, len(args))
	}
	s, ok := args[0].(runtime.StringVal)
	if !ok {
		return "", fmt.Errorf("%s() argument must be a string, got '%s'", name, args[0].TypeName())
	}
	return string(s), nil
}

func twoStrings(name string, args []runtime.Value) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("%s() expects 2 arguments, got %d", name, len(args))
	}
	a, ok := args[0].(runtime.StringVal)
	if !ok {
		return "", "", fmt.Errorf("%s() first argument must be a string, got '%s'", name, args[0].TypeName())
	}
	b, ok := args[1].(runtime.StringVal)
	if !ok {
		return "", "", fmt.Errorf("%s() second argument must be a string, got '%s'", name, args[1].TypeName())
	}
	return string(a), string(b), nil
}
