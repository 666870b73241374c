package stdlib

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
)

const httpClientTimeout = 10 * time.Second

// netRegistry covers the two network-facing builtins §9's open question
// asks for: a synchronous, bounded-timeout HTTP GET and a sleep. Neither
// spawns a child process or goroutine — both block the calling script.
func netRegistry() runtime.Registry {
	client := &http.Client{Timeout: httpClientTimeout}

	return runtime.Registry{
		"http_get": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			url, err := oneString("http_get", args)
			if err != nil {
				return nil, err
			}
			resp, err := client.Get(url)
			if err != nil {
				return nil, fmt.Errorf("http_get() %s", err)
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("http_get() %s", err)
			}
			if resp.StatusCode >= 400 {
				return nil, fmt.Errorf("http_get() received status %d", resp.StatusCode)
			}
			return runtime.StringVal(body), nil
		},

		"sleep": func(args []runtime.Value, _ *runtime.Environment) (runtime.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("sleep() expects 1 argument, got %d", len(args))
			}
			ms, err := toNumber(args[0])
			if err != nil {
				return nil, fmt.Errorf("sleep() expects 1 numeric argument")
			}
			if ms < 0 {
				return nil, fmt.Errorf("sleep() argument must be non-negative")
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return runtime.NilVal{}, nil
		},
	}
}
