package types

import (
	"os"
	"sort"
	"strings"
)

// Environment is an explicit environment-variable mapping passed into and
// returned from each bootstrap step. Steps mutate their own copy rather
// than the process environment, so tests can assert on the returned value.
type Environment map[string]string

// EnvironmentFromOS captures the current process environment.
func EnvironmentFromOS() Environment {
	env := make(Environment)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Clone returns an independent copy of the environment.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Set assigns a variable.
func (e Environment) Set(key, value string) {
	e[key] = value
}

// Lookup returns the value of key and whether it is present.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Scrub removes every variable whose name starts with prefix and returns
// the removed names, sorted.
func (e Environment) Scrub(prefix string) []string {
	var removed []string
	for k := range e {
		if strings.HasPrefix(k, prefix) {
			removed = append(removed, k)
			delete(e, k)
		}
	}
	sort.Strings(removed)
	return removed
}

// PrependPath puts dir at the front of the PATH variable.
func (e Environment) PrependPath(dir string) {
	if current, ok := e["PATH"]; ok && current != "" {
		e["PATH"] = dir + string(os.PathListSeparator) + current
		return
	}
	e["PATH"] = dir
}

// Strings renders the environment as sorted KEY=VALUE pairs suitable for
// exec.Cmd.Env.
func (e Environment) Strings() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
