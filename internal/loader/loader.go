// Package loader resolves and executes lux import statements, merging each
// imported module's exported bindings into the program's shared global
// environment. It sits above internal/runtime the same way internal/stdlib
// does: runtime calls back into it through a plain function value rather
// than importing it directly.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Luxbin-labs/luxbin-lang/internal/lexer"
	"github.com/Luxbin-labs/luxbin-lang/internal/parser"
	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

// Loader lexes, parses, and evaluates imported files on demand, caching
// each module's resulting environment by resolved absolute path and
// guarding against circular imports with a currently-loading set.
type Loader struct {
	global     *runtime.Environment
	output     *runtime.OutputBuffer
	stepBudget int
	cache      map[string]*runtime.Environment
	loading    map[string]bool
}

// New constructs a Loader bound to the program's global environment and
// output buffer. stepBudget is forwarded to every imported module's
// evaluator so a pathological import can't bypass the step limit.
func New(global *runtime.Environment, output *runtime.OutputBuffer, stepBudget int) *Loader {
	return &Loader{
		global:     global,
		output:     output,
		stepBudget: stepBudget,
		cache:      make(map[string]*runtime.Environment),
		loading:    make(map[string]bool),
	}
}

// Import resolves path relative to fromFile's directory, loads and caches
// the module if needed, and merges its exports into the global environment.
// It is the function value wired into runtime.WithImportFn.
func (l *Loader) Import(path, fromFile string) error {
	resolved, err := l.resolve(path, fromFile)
	if err != nil {
		return err
	}

	if l.loading[resolved] {
		return fmt.Errorf("circular import detected: %s", resolved)
	}
	if env, ok := l.cache[resolved]; ok {
		mergeExports(l.global, env)
		return nil
	}

	l.loading[resolved] = true
	defer delete(l.loading, resolved)

	env, err := l.evaluate(resolved)
	if err != nil {
		return err
	}
	l.cache[resolved] = env
	mergeExports(l.global, env)
	return nil
}

func (l *Loader) resolve(path, fromFile string) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".lux"
	}
	dir := filepath.Dir(fromFile)
	joined := filepath.Join(dir, path)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("cannot resolve import path %q: %s", path, err)
	}
	return abs, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read module %q: %s", path, err)
	}
	return string(data), nil
}

func (l *Loader) evaluate(resolved string) (*runtime.Environment, error) {
	source, err := readSource(resolved)
	if err != nil {
		return nil, err
	}

	lx := lexer.New(source, resolved)
	tokens, lexErrs := lx.Tokenize()
	if len(lexErrs) > 0 {
		return nil, fmt.Errorf("%s: %s", resolved, lexErrs[0])
	}

	p := parser.New(tokens)
	file, parseErrs := p.ParseFile()
	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("%s: %s", resolved, parseErrs[0])
	}

	moduleEnv := runtime.NewEnvironment(l.global)
	eval := runtime.NewEvaluator(
		l.output,
		runtime.WithGlobalEnv(moduleEnv),
		runtime.WithStepBudget(l.stepBudget),
		runtime.WithImportFn(l.Import),
	)
	if err := eval.Run(resolved, file); err != nil {
		return nil, err
	}
	return moduleEnv, nil
}

// mergeExports copies every function, builtin, and constant binding owned
// directly by module into global, never overwriting a binding global
// already has. Plain non-constant data bindings are not exported.
func mergeExports(global, module *runtime.Environment) {
	for _, name := range module.OwnNames() {
		if global.Has(name) {
			continue
		}
		value, isConst, ok := module.OwnEntry(name)
		if !ok {
			continue
		}
		switch value.(type) {
		case *runtime.FunctionVal, *runtime.BuiltinVal:
			global.Define(name, value, true)
		default:
			if isConst {
				global.Define(name, value, true)
			}
		}
	}
}
