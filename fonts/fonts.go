// Package fonts keeps a process-wide registry of font data. Drawing
// backends resolve family names through Load; applications register their
// typefaces once at startup.
package fonts

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string][]byte{}
)

// Register stores font data under a family name. Registering the same
// name twice replaces the earlier data.
func Register(name string, data []byte) {
	if name == "" || len(data) == 0 {
		return
	}
	mu.Lock()
	registry[name] = data
	mu.Unlock()
}

// RegisterFile reads a font file and registers it under the given name.
func RegisterFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	Register(name, data)
	return nil
}

// Load returns the registered data for a family name.
func Load(name string) ([]byte, error) {
	mu.RLock()
	data, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("font %q not registered", name)
	}
	return data, nil
}

// Names lists the registered family names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
