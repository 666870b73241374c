// Package stdlib assembles the concrete built-in registry the evaluator's
// core (internal/runtime) is agnostic to. Each other file in this package
// builds one Registry covering a single concern (only coreRegistry takes the
// output buffer); New merges all of them into the one Registry the CLI
// installs into the global environment.
package stdlib

import "github.com/Luxbin-labs/luxbin-lang/internal/runtime"

// New assembles the full built-in registry bound to output.
func New(output *runtime.OutputBuffer) runtime.Registry {
	reg := runtime.Registry{}
	merge := func(part runtime.Registry) {
		for name, fn := range part {
			reg[name] = fn
		}
	}
	merge(coreRegistry(output))
	merge(stringsRegistry())
	merge(arraysRegistry())
	merge(ioRegistry())
	merge(netRegistry())
	merge(osRegistry())
	merge(quantumRegistry())
	return reg
}
