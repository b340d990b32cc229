package player

import (
	"fmt"
	"sort"
	"sync"
)

// RendererFactory creates a renderer. Factories are registered via
// Register and called by NewRenderer.
type RendererFactory func(cfg RendererConfig) (Renderer, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]RendererFactory)
)

// Register registers a renderer factory under name. It is typically called
// from init() in renderer packages, following the database/sql driver
// pattern:
//
//	func init() {
//	    player.Register("raster", func(cfg player.RendererConfig) (player.Renderer, error) {
//	        return New(cfg)
//	    })
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory RendererFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("player: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("player: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a renderer from the registry. Intended for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewRenderer creates a renderer by name.
func NewRenderer(name string, cfg RendererConfig) (Renderer, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("player: unknown renderer %q (forgotten import?)", name)
	}
	r, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("player: renderer %q: %w", name, err)
	}
	return r, nil
}

// Renderers returns the sorted names of registered renderers.
func Renderers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a renderer with the given name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
